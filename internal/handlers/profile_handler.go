package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/store"
)

type ProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// splitSkills turns the comma-separated skills field into a trimmed list.
func splitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// UpsertProfile creates the caller's profile or patches the fields they
// supplied.
func (h *Handler) UpsertProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if req.Status == "" {
		msgs = append(msgs, "Status is required")
	}
	if req.Skills == "" {
		msgs = append(msgs, "Skills is required")
	}
	if len(msgs) > 0 {
		validationFailed(c, msgs)
		return
	}

	upd := store.ProfileUpdate{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		Skills:         splitSkills(req.Skills),
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	}

	profile, err := h.Profiles.Upsert(c.Request.Context(), userID, upd)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// MyProfile returns the caller's profile with their display data joined.
func (h *Handler) MyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.Profiles.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AllProfiles lists every profile. Public.
func (h *Handler) AllProfiles(c *gin.Context) {
	profiles, err := h.Profiles.FindAll(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// ProfileByUserID returns one user's profile. Public.
func (h *Handler) ProfileByUserID(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("user_id"))
	if err != nil {
		failWith(c, http.StatusBadRequest, "Profile not found")
		return
	}

	profile, err := h.Profiles.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusBadRequest, "Profile not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's posts, profile and user record.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if err := h.Posts.DeleteByUser(ctx, userID); err != nil {
		serverError(c, err)
		return
	}
	if err := h.Profiles.Delete(ctx, userID); err != nil {
		serverError(c, err)
		return
	}
	if err := h.Users.Delete(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "User Deleted"})
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience prepends a new experience entry to the caller's profile.
func (h *Handler) AddExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if req.Title == "" {
		msgs = append(msgs, "Title is required")
	}
	if req.Company == "" {
		msgs = append(msgs, "Company is required")
	}
	if req.From == "" {
		msgs = append(msgs, "From Date is required")
	}
	if len(msgs) > 0 {
		validationFailed(c, msgs)
		return
	}

	exp := models.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	profile, err := h.Profiles.AddExperience(c.Request.Context(), userID, exp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RemoveExperience deletes the entry with the given sub-id.
func (h *Handler) RemoveExperience(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	expID, err := primitive.ObjectIDFromHex(c.Param("exp_id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Experience not found")
		return
	}

	profile, err := h.Profiles.RemoveExperience(c.Request.Context(), userID, expID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Experience not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation prepends a new education entry to the caller's profile.
func (h *Handler) AddEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if req.School == "" {
		msgs = append(msgs, "School is required")
	}
	if req.Degree == "" {
		msgs = append(msgs, "Degree is required")
	}
	if req.From == "" {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		validationFailed(c, msgs)
		return
	}

	edu := models.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	profile, err := h.Profiles.AddEducation(c.Request.Context(), userID, edu)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusBadRequest, "There is no profile for this user")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RemoveEducation deletes the entry with the given sub-id.
func (h *Handler) RemoveEducation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	eduID, err := primitive.ObjectIDFromHex(c.Param("edu_id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Education not found")
		return
	}

	profile, err := h.Profiles.RemoveEducation(c.Request.Context(), userID, eduID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Education not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GithubRepos proxies the GitHub repository listing for a username.
func (h *Handler) GithubRepos(c *gin.Context) {
	repos, err := h.Github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		failWith(c, http.StatusBadRequest, "No Github profile found")
		return
	}
	c.JSON(http.StatusOK, repos)
}
