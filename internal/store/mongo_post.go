package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/devconnect-api/internal/models"
)

type MongoPostStore struct {
	coll *mongo.Collection
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{coll: db.Collection("posts")}
}

func (s *MongoPostStore) Create(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := s.coll.InsertOne(ctx, post)
	return err
}

func (s *MongoPostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = make([]models.Post, 0)
	}
	return posts, nil
}

func (s *MongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"user": userID})
	return err
}

// AddLike prepends a like entry unless the user already has one. The
// filter guards the at-most-one-like-per-user invariant atomically.
func (s *MongoPostStore) AddLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	update := bson.M{"$push": bson.M{
		"likes": bson.M{"$each": bson.A{models.Like{UserID: userID}}, "$position": 0},
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes.user": bson.M{"$ne": userID}},
		update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		// Either the post is gone or the like already exists.
		if _, findErr := s.FindByID(ctx, postID); findErr != nil {
			return nil, findErr
		}
		return nil, ErrAlreadyLiked
	}
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *MongoPostStore) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) ([]models.Like, error) {
	update := bson.M{"$pull": bson.M{"likes": bson.M{"user": userID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes.user": userID},
		update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		if _, findErr := s.FindByID(ctx, postID); findErr != nil {
			return nil, findErr
		}
		return nil, ErrNotLiked
	}
	if err != nil {
		return nil, err
	}
	return post.Likes, nil
}

func (s *MongoPostStore) AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) ([]models.Comment, error) {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	update := bson.M{"$push": bson.M{
		"comments": bson.M{"$each": bson.A{comment}, "$position": 0},
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// RemoveComment pulls the comment with the given id, never a comment
// that merely shares the author.
func (s *MongoPostStore) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) ([]models.Comment, error) {
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return post.Comments, nil
}
