package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r, mem, tokens := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	require.NotEmpty(t, body.Token)

	// The returned token identifies the stored user.
	userID, err := tokens.Verify(body.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
	assert.Equal(t, 1, mem.UserCount())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, mem, _ := setupTest(t)

	payload := map[string]string{"name": "A", "email": "a@x.com", "password": "secret1"}
	w := doJSON(t, r, http.MethodPost, "/api/users", "", payload)
	require.Equal(t, http.StatusOK, w.Code)

	// Second attempt stops before creating another account.
	w = doJSON(t, r, http.MethodPost, "/api/users", "", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMsgs(t, w), "User already exists")
	assert.Equal(t, 1, mem.UserCount())
}

func TestRegisterValidation(t *testing.T) {
	r, mem, _ := setupTest(t)

	tests := []struct {
		name     string
		payload  map[string]string
		expected []string
	}{
		{
			name:     "everything missing",
			payload:  map[string]string{},
			expected: []string{"Name is required", "Please enter a valid e-mail address", "Password should be 6 or more characters"},
		},
		{
			name:     "bad email",
			payload:  map[string]string{"name": "A", "email": "not-an-email", "password": "secret1"},
			expected: []string{"Please enter a valid e-mail address"},
		},
		{
			name:     "short password",
			payload:  map[string]string{"name": "A", "email": "a@x.com", "password": "five5"},
			expected: []string{"Password should be 6 or more characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/users", "", tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expected, errorMsgs(t, w))
		})
	}
	assert.Equal(t, 0, mem.UserCount())
}

func TestLogin(t *testing.T) {
	r, _, tokens := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", "", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &body)
	_, err := tokens.Verify(body.Token)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/users", "", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "a@x.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMsgs(t, w), "Invalid Credentials")
	assert.NotContains(t, w.Body.String(), "token")
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMsgs(t, w), "Invalid Credentials")
	assert.NotContains(t, w.Body.String(), "token")
}

func TestCurrentUser(t *testing.T) {
	r, mem, tokens := setupTest(t)
	user, tokenStr := createUser(t, mem, tokens, "A", "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/api/auth", tokenStr, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, user.ID.Hex(), body["id"])
	assert.Equal(t, "A", body["name"])
	// The password hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "notacheckedhash")
}

func TestCurrentUserRequiresAuth(t *testing.T) {
	r, _, _ := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/api/auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
