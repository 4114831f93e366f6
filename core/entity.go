package core

import (
	"context"
	"time"
)

// UserType discriminates the two signup collections.
type UserType string

const (
	UserTypeBusiness UserType = "business"
	UserTypeProvider UserType = "provider"
)

type (
	// BusinessSignup is a storage-seeking business waiting to be onboarded.
	BusinessSignup struct {
		ID           string    `json:"id" bson:"_id,omitempty"`
		BusinessName string    `json:"businessName" bson:"businessName"`
		Email        string    `json:"email" bson:"email"`
		Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
		Website      string    `json:"website,omitempty" bson:"website,omitempty"`
		OrderVolume  string    `json:"orderVolume,omitempty" bson:"orderVolume,omitempty"`
		Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
		UserType     string    `json:"userType" bson:"userType"`
		Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	}

	// ProviderSignup is a space owner offering storage capacity.
	ProviderSignup struct {
		ID           string    `json:"id" bson:"_id,omitempty"`
		Name         string    `json:"name" bson:"name"`
		Email        string    `json:"email" bson:"email"`
		Phone        string    `json:"phone" bson:"phone"`
		Address      string    `json:"address" bson:"address"`
		SpaceSize    *float64  `json:"spaceSize" bson:"spaceSize"`
		SpaceType    string    `json:"spaceType" bson:"spaceType"`
		Availability string    `json:"availability" bson:"availability"`
		UserType     string    `json:"userType" bson:"userType"`
		Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	}

	// SignupStore persists both signup collections. List calls return
	// records newest first.
	SignupStore interface {
		CreateBusiness(ctx context.Context, signup *BusinessSignup) (string, error)
		CreateProvider(ctx context.Context, signup *ProviderSignup) (string, error)
		ListBusinesses(ctx context.Context) ([]BusinessSignup, error)
		ListProviders(ctx context.Context) ([]ProviderSignup, error)
		Ping(ctx context.Context) error
		Close(ctx context.Context) error
	}
)
