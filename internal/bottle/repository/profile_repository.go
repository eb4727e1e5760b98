package repository

import (
	"context"
	"errors"
	"time"

	"drift_chronicles_service/internal/bottle/domain"
	errprocess "drift_chronicles_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository definition user profile documents
type ProfileRepository interface {
	// EnsureProfile create the profile with zeroed stats if absent
	EnsureProfile(ctx context.Context, uid, email string, anonymous bool) error
	// Get point read
	Get(ctx context.Context, uid string) (*domain.UserProfile, error)
}

type profileRepository struct {
	coll *mongo.Collection
}

// NewMongoProfileRepository create a ProfileRepository
func NewMongoProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{
		coll: db.Collection("users"),
	}
}

// EnsureProfile upsert with $setOnInsert so an existing profile and its
// counters are never overwritten.
func (r *profileRepository) EnsureProfile(ctx context.Context, uid, email string, anonymous bool) error {
	if email == "" {
		email = "Anonymous"
	}
	profile := domain.UserProfile{
		UID:         uid,
		Email:       email,
		IsAnonymous: anonymous,
		CreatedAt:   time.Now().UTC(),
		Stats:       domain.UserStats{},
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$setOnInsert": profile},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to ensure profile", err)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.New(errprocess.KindNotFound, "user profile not found")
	}
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to read profile", err)
	}
	return &profile, nil
}
