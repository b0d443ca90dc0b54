// Package store holds the persistence layer. Handlers depend on the
// interfaces here; the Mongo implementations live alongside, and an
// in-memory implementation backs the handler tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnect/devconnect-api/internal/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("already exists")
	ErrAlreadyLiked = errors.New("already liked")
	ErrNotLiked     = errors.New("not liked")
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProfileUpdate names the profile fields a user may change. Empty fields
// are left untouched in the stored document.
type ProfileUpdate struct {
	Company        string
	Website        string
	Location       string
	Status         string
	Bio            string
	Skills         []string
	GithubUsername string
	Youtube        string
	Twitter        string
	Facebook       string
	Linkedin       string
	Instagram      string
}

type ProfileStore interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.Profile, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.ProfileView, error)
	FindAll(ctx context.Context) ([]models.ProfileView, error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
	AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) (*models.Profile, error)
	AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*models.Profile, error)
}

type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error)
}
