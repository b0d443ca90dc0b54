package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/store"
)

func TestUpsertProfileSplitsSkills(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status": "Developer",
		"skills": "go, rust, c++",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.Profile
	decodeBody(t, w, &profile)
	assert.Equal(t, []string{"go", "rust", "c++"}, profile.Skills)
	assert.Equal(t, "Developer", profile.Status)
}

func TestUpsertProfileValidation(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Status is required", "Skills is required"}, errorMsgs(t, w))
}

func TestUpsertProfilePreservesOmittedFields(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status":  "Developer",
		"skills":  "go",
		"bio":     "building things",
		"twitter": "https://twitter.com/a",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A later update without bio or twitter leaves both untouched.
	w = doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status":  "Senior Developer",
		"skills":  "go, rust",
		"company": "Acme",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.Profile
	decodeBody(t, w, &profile)
	assert.Equal(t, "Senior Developer", profile.Status)
	assert.Equal(t, "Acme", profile.Company)
	assert.Equal(t, "building things", profile.Bio)
	assert.Equal(t, "https://twitter.com/a", profile.Social.Twitter)
}

func TestProfileReadsArePublic(t *testing.T) {
	r, mem, tokens := setupTest(t)
	user, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status": "Developer", "skills": "go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// No token on either read.
	w = doJSON(t, r, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []models.ProfileView
	decodeBody(t, w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "A", views[0].User.Name)

	w = doJSON(t, r, http.MethodGet, "/api/profile/user/"+user.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view models.ProfileView
	decodeBody(t, w, &view)
	assert.Equal(t, user.ID, view.User.ID)
	assert.Equal(t, "Developer", view.Status)
}

func TestProfileByUserIDMissing(t *testing.T) {
	r, _, _ := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/api/profile/user/6507f1f77bcf86cd79943901", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Profile not found")

	w = doJSON(t, r, http.MethodGet, "/api/profile/user/not-an-object-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMyProfileWithoutProfile(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/api/profile/me", tokenStr, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "There is no profile for this user")
}

func TestExperienceLifecycle(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status": "Developer", "skills": "go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/profile/experience", tokenStr, map[string]interface{}{
		"title": "Engineer", "company": "Acme", "from": "2020-01-01",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// A second entry lands in front of the first.
	w = doJSON(t, r, http.MethodPut, "/api/profile/experience", tokenStr, map[string]interface{}{
		"title": "Senior Engineer", "company": "Acme", "from": "2022-01-01", "current": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.Profile
	decodeBody(t, w, &profile)
	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Senior Engineer", profile.Experience[0].Title)
	assert.Equal(t, "Engineer", profile.Experience[1].Title)

	// Remove the newest entry by its sub-id.
	w = doJSON(t, r, http.MethodDelete, "/api/profile/experience/"+profile.Experience[0].ID.Hex(), tokenStr, nil)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &profile)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Engineer", profile.Experience[0].Title)
}

func TestRemoveExperienceUnknownID(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status": "Developer", "skills": "go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/profile/experience/6507f1f77bcf86cd79943901", tokenStr, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Experience not found")
}

func TestExperienceValidation(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPut, "/api/profile/experience", tokenStr, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Title is required", "Company is required", "From Date is required"}, errorMsgs(t, w))
}

func TestEducationLifecycle(t *testing.T) {
	r, mem, tokens := setupTest(t)
	_, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status": "Developer", "skills": "go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/profile/education", tokenStr, map[string]interface{}{
		"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "2014-09-01",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.Profile
	decodeBody(t, w, &profile)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "MIT", profile.Education[0].School)

	w = doJSON(t, r, http.MethodDelete, "/api/profile/education/"+profile.Education[0].ID.Hex(), tokenStr, nil)
	require.Equal(t, http.StatusOK, w.Code)

	decodeBody(t, w, &profile)
	assert.Empty(t, profile.Education)
}

func TestDeleteAccountCascades(t *testing.T) {
	r, mem, tokens := setupTest(t)
	user, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/profile", tokenStr, map[string]string{
		"status": "Developer", "skills": "go",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/posts", tokenStr, map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/profile", tokenStr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User Deleted")

	ctx := context.Background()
	_, err := mem.Users().FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = mem.Profiles().FindByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	posts, err := mem.Posts().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
