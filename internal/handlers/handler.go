package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect-api/internal/services"
	"github.com/devconnect/devconnect-api/internal/store"
	"github.com/devconnect/devconnect-api/internal/token"
)

// Handler carries the stores and services the route handlers need.
type Handler struct {
	Users    store.UserStore
	Profiles store.ProfileStore
	Posts    store.PostStore
	Tokens   *token.Service
	Github   *services.GithubService
}

func NewHandler(users store.UserStore, profiles store.ProfileStore, posts store.PostStore, tokens *token.Service, github *services.GithubService) *Handler {
	return &Handler{
		Users:    users,
		Profiles: profiles,
		Posts:    posts,
		Tokens:   tokens,
		Github:   github,
	}
}

// errorItem is one entry of the itemized validation response body.
type errorItem struct {
	Msg string `json:"msg"`
}

// validationFailed writes the {errors:[{msg},...]} shape used for
// malformed input.
func validationFailed(c *gin.Context, msgs []string) {
	items := make([]errorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, errorItem{Msg: m})
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": items})
}

// failWith writes the single-condition {msg} shape.
func failWith(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// serverError logs the detail server-side and returns a generic body.
func serverError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "Server Error")
}

// currentUserID reads the authenticated user id set by the auth
// middleware. Routes calling this are always behind that middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	idHex, exists := c.Get("userID")
	if !exists {
		failWith(c, http.StatusUnauthorized, "No token, authorization denied")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idHex.(string))
	if err != nil {
		serverError(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}
