package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-api/internal/middleware"
	"github.com/devconnect/devconnect-api/internal/token"
)

// RegisterRoutes wires every route onto the router. Shared between main
// and the handler tests so both run the same surface.
func RegisterRoutes(r *gin.Engine, h *Handler, tokens *token.Service) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API running")
	})

	auth := middleware.Auth(tokens)

	users := r.Group("/api/users")
	{
		users.POST("", h.Register)
	}

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.GET("", auth, h.CurrentUser)
		authRoutes.POST("", h.Login)
	}

	profile := r.Group("/api/profile")
	{
		profile.GET("", h.AllProfiles)
		profile.GET("/user/:user_id", h.ProfileByUserID)
		profile.GET("/github/:username", h.GithubRepos)
		profile.GET("/me", auth, h.MyProfile)
		profile.POST("", auth, h.UpsertProfile)
		profile.DELETE("", auth, h.DeleteAccount)
		profile.PUT("/experience", auth, h.AddExperience)
		profile.DELETE("/experience/:exp_id", auth, h.RemoveExperience)
		profile.PUT("/education", auth, h.AddEducation)
		profile.DELETE("/education/:edu_id", auth, h.RemoveEducation)
	}

	posts := r.Group("/api/posts")
	posts.Use(auth)
	{
		posts.POST("", h.CreatePost)
		posts.GET("", h.GetPosts)
		posts.GET("/:id", h.GetPost)
		posts.DELETE("/:id", h.DeletePost)
		posts.PUT("/like/:id", h.LikePost)
		posts.PUT("/unlike/:id", h.UnlikePost)
		posts.POST("/comment/:id", h.CommentOnPost)
		// Gin's router cannot hold the static segment "comment" next to
		// the :id wildcard within the same method tree, so comment
		// deletion nests under the post id instead.
		posts.DELETE("/:id/comment/:comment_id", h.DeleteComment)
	}
}
