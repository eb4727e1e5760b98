package repository

import (
	"context"
	"errors"
	"time"

	"drift_chronicles_service/internal/bottle/domain"
	"drift_chronicles_service/pkg/database"
	errprocess "drift_chronicles_service/pkg/err"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BottleRepository definition bottle pool access
type BottleRepository interface {
	// Cast validate content and create a DRIFTING bottle, incrementing the
	// creator's thrown counter in the same batch
	Cast(ctx context.Context, content, creatorID string) (string, error)
	// FetchCandidates up to limit DRIFTING bottles, no ordering guarantee
	FetchCandidates(ctx context.Context, limit int64) ([]domain.Bottle, error)
	// FetchClaimed up to limit CLAIMED bottles, for the orphan sweep
	FetchClaimed(ctx context.Context, limit int64) ([]domain.Bottle, error)
	// MarkReturned add viewerID to the bottle's viewed set, idempotent
	MarkReturned(ctx context.Context, bottleID, viewerID string) error
	// Claim atomically move DRIFTING -> CLAIMED, exactly one concurrent winner
	Claim(ctx context.Context, bottleID, claimerID string) (*domain.Bottle, error)
	// Get point read
	Get(ctx context.Context, bottleID string) (*domain.Bottle, error)
}

type bottleRepository struct {
	db      *database.MongoDB
	bottles *mongo.Collection
	users   *mongo.Collection
}

// NewMongoBottleRepository create a BottleRepository
func NewMongoBottleRepository(db *database.MongoDB) BottleRepository {
	return &bottleRepository{
		db:      db,
		bottles: db.Database.Collection("bottles"),
		users:   db.Database.Collection("users"),
	}
}

// Cast insert the bottle and bump the creator's thrown counter in one
// transaction, so a bottle-without-counter state is never observable.
func (r *bottleRepository) Cast(ctx context.Context, content, creatorID string) (string, error) {
	normalized, err := domain.NormalizeContent(content)
	if err != nil {
		return "", err
	}

	bottle := domain.Bottle{
		ID:        uuid.New().String(),
		Content:   normalized,
		CreatorID: creatorID,
		Status:    domain.StatusDrifting,
		ViewedBy:  []string{},
		CreatedAt: time.Now().UTC(),
	}

	_, err = r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.bottles.InsertOne(sc, bottle); err != nil {
			return nil, err
		}
		if _, err := r.users.UpdateOne(sc,
			bson.M{"_id": creatorID},
			bson.M{"$inc": bson.M{"stats.bottles_thrown": 1}},
		); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return "", errprocess.Wrap(errprocess.KindStorage, "failed to cast bottle", err)
	}

	return bottle.ID, nil
}

func (r *bottleRepository) FetchCandidates(ctx context.Context, limit int64) ([]domain.Bottle, error) {
	return r.fetchByStatus(ctx, domain.StatusDrifting, limit)
}

func (r *bottleRepository) FetchClaimed(ctx context.Context, limit int64) ([]domain.Bottle, error) {
	return r.fetchByStatus(ctx, domain.StatusClaimed, limit)
}

func (r *bottleRepository) fetchByStatus(ctx context.Context, status domain.BottleStatus, limit int64) ([]domain.Bottle, error) {
	opts := options.Find().SetLimit(limit)
	cur, err := r.bottles.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to query bottles", err)
	}

	var bottles []domain.Bottle
	if err := cur.All(ctx, &bottles); err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to decode bottles", err)
	}
	return bottles, nil
}

// MarkReturned set-union semantics via $addToSet, repeat calls are no-ops
func (r *bottleRepository) MarkReturned(ctx context.Context, bottleID, viewerID string) error {
	res, err := r.bottles.UpdateOne(ctx,
		bson.M{"_id": bottleID},
		bson.M{"$addToSet": bson.M{"viewed_by": viewerID}},
	)
	if err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to return bottle", err)
	}
	if res.MatchedCount == 0 {
		return errprocess.New(errprocess.KindNotFound, "bottle not found")
	}
	return nil
}

// Claim the only correctness-critical race in the system. The status
// predicate in the filter is the compare-and-set: of N concurrent
// claimants exactly one matches, the rest observe AlreadyClaimed.
func (r *bottleRepository) Claim(ctx context.Context, bottleID, claimerID string) (*domain.Bottle, error) {
	var claimed domain.Bottle

	_, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now().UTC()
		err := r.bottles.FindOneAndUpdate(sc,
			bson.M{"_id": bottleID, "status": domain.StatusDrifting},
			bson.M{"$set": bson.M{
				"status":     domain.StatusClaimed,
				"claimed_by": claimerID,
				"claimed_at": now,
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&claimed)

		if errors.Is(err, mongo.ErrNoDocuments) {
			// Missing and already-claimed are different outcomes for the caller.
			var current domain.Bottle
			err2 := r.bottles.FindOne(sc, bson.M{"_id": bottleID}).Decode(&current)
			if errors.Is(err2, mongo.ErrNoDocuments) {
				return nil, errprocess.New(errprocess.KindNotFound, "bottle not found")
			}
			if err2 != nil {
				return nil, errprocess.Wrap(errprocess.KindStorage, "failed to read bottle", err2)
			}
			return nil, errprocess.New(errprocess.KindAlreadyClaimed, "this bottle has already been claimed")
		}
		if err != nil {
			return nil, errprocess.Wrap(errprocess.KindStorage, "failed to claim bottle", err)
		}

		if _, err := r.users.UpdateOne(sc,
			bson.M{"_id": claimerID},
			bson.M{"$inc": bson.M{"stats.bottles_found": 1}},
		); err != nil {
			return nil, errprocess.Wrap(errprocess.KindStorage, "failed to update claimer stats", err)
		}
		return nil, nil
	})
	if err != nil {
		if errprocess.KindOf(err) != "" {
			return nil, err
		}
		return nil, errprocess.Wrap(errprocess.KindStorage, "claim transaction failed", err)
	}

	return &claimed, nil
}

func (r *bottleRepository) Get(ctx context.Context, bottleID string) (*domain.Bottle, error) {
	var bottle domain.Bottle
	err := r.bottles.FindOne(ctx, bson.M{"_id": bottleID}).Decode(&bottle)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.New(errprocess.KindNotFound, "bottle not found")
	}
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to read bottle", err)
	}
	return &bottle, nil
}
