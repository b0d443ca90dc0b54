package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/devconnect-api/internal/models"
)

type MongoProfileStore struct {
	coll *mongo.Collection
}

func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{coll: db.Collection("profiles")}
}

// Upsert creates the profile on first write and patches it afterwards.
// Only fields supplied in upd are written; omitted fields keep their
// stored values.
func (s *MongoProfileStore) Upsert(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*models.Profile, error) {
	set := bson.M{}
	if upd.Company != "" {
		set["company"] = upd.Company
	}
	if upd.Website != "" {
		set["website"] = upd.Website
	}
	if upd.Location != "" {
		set["location"] = upd.Location
	}
	if upd.Status != "" {
		set["status"] = upd.Status
	}
	if upd.Bio != "" {
		set["bio"] = upd.Bio
	}
	if upd.Skills != nil {
		set["skills"] = upd.Skills
	}
	if upd.GithubUsername != "" {
		set["githubusername"] = upd.GithubUsername
	}
	if upd.Youtube != "" {
		set["social.youtube"] = upd.Youtube
	}
	if upd.Twitter != "" {
		set["social.twitter"] = upd.Twitter
	}
	if upd.Facebook != "" {
		set["social.facebook"] = upd.Facebook
	}
	if upd.Linkedin != "" {
		set["social.linkedin"] = upd.Linkedin
	}
	if upd.Instagram != "" {
		set["social.instagram"] = upd.Instagram
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"user":       userID,
			"experience": []models.Experience{},
			"education":  []models.Education{},
		},
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// lookupUser joins the owning user's name and avatar onto each profile,
// the Mongo counterpart of populating the user reference.
var lookupUser = []bson.M{
	{"$lookup": bson.M{
		"from":         "users",
		"localField":   "user",
		"foreignField": "_id",
		"as":           "userInfo",
	}},
	{"$unwind": "$userInfo"},
	{"$project": bson.M{"userInfo.password": 0, "userInfo.email": 0}},
}

func (s *MongoProfileStore) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.ProfileView, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"user": userID}}}, lookupUser...)
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []models.ProfileView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	return &views[0], nil
}

func (s *MongoProfileStore) FindAll(ctx context.Context) ([]models.ProfileView, error) {
	cursor, err := s.coll.Aggregate(ctx, lookupUser)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []models.ProfileView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	if views == nil {
		views = make([]models.ProfileView, 0)
	}
	return views, nil
}

func (s *MongoProfileStore) Delete(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

func (s *MongoProfileStore) AddExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	exp.ID = primitive.NewObjectID()
	return s.prepend(ctx, userID, "experience", exp)
}

func (s *MongoProfileStore) RemoveExperience(ctx context.Context, userID, expID primitive.ObjectID) (*models.Profile, error) {
	return s.pull(ctx, userID, "experience", expID)
}

func (s *MongoProfileStore) AddEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	edu.ID = primitive.NewObjectID()
	return s.prepend(ctx, userID, "education", edu)
}

func (s *MongoProfileStore) RemoveEducation(ctx context.Context, userID, eduID primitive.ObjectID) (*models.Profile, error) {
	return s.pull(ctx, userID, "education", eduID)
}

func (s *MongoProfileStore) prepend(ctx context.Context, userID primitive.ObjectID, field string, entry interface{}) (*models.Profile, error) {
	update := bson.M{"$push": bson.M{
		field: bson.M{"$each": bson.A{entry}, "$position": 0},
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var profile models.Profile
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *MongoProfileStore) pull(ctx context.Context, userID primitive.ObjectID, field string, entryID primitive.ObjectID) (*models.Profile, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$pull": bson.M{field: bson.M{"_id": entryID}}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return nil, ErrNotFound
	}

	var profile models.Profile
	if err := s.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
