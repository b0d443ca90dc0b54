package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect-api/internal/models"
	"github.com/devconnect/devconnect-api/internal/store"
)

type PostRequest struct {
	Text string `json:"text"`
}

// CreatePost stores a new post with a snapshot of the author's name and
// avatar.
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		validationFailed(c, []string{"Text is required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		serverError(c, err)
		return
	}

	post := &models.Post{
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   req.Text,
	}
	if err := h.Posts.Create(ctx, post); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetPosts lists all posts newest-first.
func (h *Handler) GetPosts(c *gin.Context) {
	posts, err := h.Posts.FindAll(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post by id.
func (h *Handler) GetPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.Posts.FindByID(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. Only its author may do so.
func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Post not found")
		return
	}

	ctx := c.Request.Context()
	post, err := h.Posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, err)
		return
	}
	if post.UserID != userID {
		failWith(c, http.StatusForbidden, "User not authorized")
		return
	}

	if err := h.Posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// LikePost adds the caller's like. A second like by the same user is
// rejected, keeping at most one like entry per user per post.
func (h *Handler) LikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Post not found")
		return
	}

	likes, err := h.Posts.AddLike(c.Request.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyLiked):
			failWith(c, http.StatusBadRequest, "Post already liked")
		case errors.Is(err, store.ErrNotFound):
			failWith(c, http.StatusNotFound, "Post not found")
		default:
			serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, likes)
}

// UnlikePost removes the caller's like, failing when none exists.
func (h *Handler) UnlikePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Post not found")
		return
	}

	likes, err := h.Posts.RemoveLike(c.Request.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotLiked):
			failWith(c, http.StatusBadRequest, "Post has not yet been liked")
		case errors.Is(err, store.ErrNotFound):
			failWith(c, http.StatusNotFound, "Post not found")
		default:
			serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, likes)
}

// CommentOnPost prepends a comment carrying a snapshot of the caller's
// display data.
func (h *Handler) CommentOnPost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Post not found")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failWith(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		validationFailed(c, []string{"Text is required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		serverError(c, err)
		return
	}

	comment := models.Comment{
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   req.Text,
	}
	comments, err := h.Posts.AddComment(ctx, postID, comment)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment removes exactly the addressed comment, provided the
// caller wrote it.
func (h *Handler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Post not found")
		return
	}
	commentID, err := primitive.ObjectIDFromHex(c.Param("comment_id"))
	if err != nil {
		failWith(c, http.StatusNotFound, "Comment does not exist")
		return
	}

	ctx := c.Request.Context()
	post, err := h.Posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, err)
		return
	}

	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		failWith(c, http.StatusNotFound, "Comment does not exist")
		return
	}
	if target.UserID != userID {
		failWith(c, http.StatusForbidden, "User not authorized")
		return
	}

	comments, err := h.Posts.RemoveComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			failWith(c, http.StatusNotFound, "Comment does not exist")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
