package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/store"
	"github.com/devconnect/devconnect-api/internal/utils"
)

var validate = validator.New()

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns a signed token.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if req.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	if !isEmail(req.Email) {
		msgs = append(msgs, "Please enter a valid e-mail address")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "Password should be 6 or more characters")
	}
	if len(msgs) > 0 {
		validationFailed(c, msgs)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Users.FindByEmail(ctx, req.Email); err == nil {
		validationFailed(c, []string{"User already exists"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		serverError(c, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		serverError(c, err)
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Avatar:   utils.GravatarURL(req.Email),
	}
	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			validationFailed(c, []string{"User already exists"})
			return
		}
		serverError(c, err)
		return
	}

	tokenStr, err := h.Tokens.Issue(user.ID.Hex())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenStr})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a signed token. A mismatched
// password short-circuits; no token is ever issued for it.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if !isEmail(req.Email) {
		msgs = append(msgs, "Please enter a valid e-mail address")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		validationFailed(c, msgs)
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			validationFailed(c, []string{"Invalid Credentials"})
			return
		}
		serverError(c, err)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		validationFailed(c, []string{"Invalid Credentials"})
		return
	}

	tokenStr, err := h.Tokens.Issue(user.ID.Hex())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenStr})
}

// CurrentUser returns the authenticated user's record, password omitted.
func (h *Handler) CurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "User not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
