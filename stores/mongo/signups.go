package mongo

import (
	"context"
	"stashspace/core"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	businessCollection = "business_signups"
	providerCollection = "provider_signups"
)

type signupStore struct {
	client     *mongo.Client
	businesses *mongo.Collection
	providers  *mongo.Collection
}

// NewSignupStore builds the store around a lazily connecting client. Server
// reachability is the connection supervisor's problem; only a malformed URI
// fails here.
func NewSignupStore(ctx context.Context, uri, database string) (core.SignupStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	db := client.Database(database)
	return &signupStore{
		client:     client,
		businesses: db.Collection(businessCollection),
		providers:  db.Collection(providerCollection),
	}, nil
}

func (s *signupStore) CreateBusiness(ctx context.Context, signup *core.BusinessSignup) (string, error) {
	// BSON datetimes carry millisecond precision. Truncate before storing
	// so list calls read back the timestamp the caller saw.
	now := time.Now().UTC().Truncate(time.Millisecond)
	if err := core.Prepare(signup, primitive.NewObjectID().Hex(), now); err != nil {
		return "", err
	}
	log := logrus.WithFields(logrus.Fields{
		"signup_id": signup.ID,
		"user_type": signup.UserType,
	})

	if _, err := s.businesses.InsertOne(ctx, signup); err != nil {
		log.WithField("error", err).Error("Failed to create business signup")
		return "", err
	}
	log.Info("Business signup created successfully")
	return signup.ID, nil
}

func (s *signupStore) CreateProvider(ctx context.Context, signup *core.ProviderSignup) (string, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if err := core.Prepare(signup, primitive.NewObjectID().Hex(), now); err != nil {
		return "", err
	}
	log := logrus.WithFields(logrus.Fields{
		"signup_id": signup.ID,
		"user_type": signup.UserType,
	})

	if _, err := s.providers.InsertOne(ctx, signup); err != nil {
		log.WithField("error", err).Error("Failed to create provider signup")
		return "", err
	}
	log.Info("Provider signup created successfully")
	return signup.ID, nil
}

func (s *signupStore) ListBusinesses(ctx context.Context) ([]core.BusinessSignup, error) {
	cursor, err := s.businesses.Find(ctx, bson.D{}, newestFirst())
	if err != nil {
		logrus.WithField("error", err).Error("Failed to list business signups")
		return nil, err
	}
	out := []core.BusinessSignup{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *signupStore) ListProviders(ctx context.Context) ([]core.ProviderSignup, error) {
	cursor, err := s.providers.Find(ctx, bson.D{}, newestFirst())
	if err != nil {
		logrus.WithField("error", err).Error("Failed to list provider signups")
		return nil, err
	}
	out := []core.ProviderSignup{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// newestFirst sorts by timestamp with _id as tiebreak. ObjectIDs generated
// by one process carry an incrementing counter, so same-millisecond writes
// still come back in insertion order.
func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: -1},
		{Key: "_id", Value: -1},
	})
}

func (s *signupStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *signupStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
