package app

import (
	"context"
	"math/rand"

	"drift_chronicles_service/internal/bottle/domain"
	"drift_chronicles_service/internal/bottle/repository"
	"drift_chronicles_service/pkg"
	"drift_chronicles_service/pkg/logger"
)

// MatchmakingUseCase definition random drawing from the bottle pool
type MatchmakingUseCase interface {
	// PickBottle one uniformly random eligible bottle, nil when the pool
	// has nothing left for this user. An empty pool is not an error.
	PickBottle(ctx context.Context, userID string, excludeIDs []string) (*domain.Bottle, error)
	// PickNext like PickBottle but excludes everything shown this session
	// and records the result as shown
	PickNext(ctx context.Context, userID string) (*domain.Bottle, error)
	// ThrowBack return bottleID to the pool, marking it viewed so the
	// same user is not shown it again across sessions
	ThrowBack(ctx context.Context, userID, bottleID string) error
	// EndSession forget the user's shown set
	EndSession(userID string)
}

type matchmakingUseCase struct {
	bottles repository.BottleRepository
	tracker *SessionTracker
	limit   int64
}

// NewMatchmakingUseCase create a MatchmakingUseCase
func NewMatchmakingUseCase(bottles repository.BottleRepository, tracker *SessionTracker, candidateLimit int64) MatchmakingUseCase {
	if candidateLimit <= 0 {
		candidateLimit = 100
	}
	return &matchmakingUseCase{
		bottles: bottles,
		tracker: tracker,
		limit:   candidateLimit,
	}
}

// PickBottle own bottles and claimed bottles are always filtered out.
// The persistent viewed_by filter applies only on a fresh draw with no
// explicit exclusions, so a user paging through a session can still
// reach bottles they threw back in an earlier one.
func (m *matchmakingUseCase) PickBottle(ctx context.Context, userID string, excludeIDs []string) (*domain.Bottle, error) {
	candidates, err := m.bottles.FetchCandidates(ctx, m.limit)
	if err != nil {
		return nil, err
	}

	excluded := pkg.ToSet(excludeIDs)
	applyViewed := len(excludeIDs) == 0

	var eligible []domain.Bottle
	for _, b := range candidates {
		if !b.IsDrifting() || b.CreatorID == userID {
			continue
		}
		if _, skip := excluded[b.ID]; skip {
			continue
		}
		if applyViewed && pkg.Contains(b.ViewedBy, userID) {
			continue
		}
		eligible = append(eligible, b)
	}

	if len(eligible) == 0 {
		logger.Log.Debug("ocean is empty for user " + userID)
		return nil, nil
	}

	pick := eligible[rand.Intn(len(eligible))]
	return &pick, nil
}

func (m *matchmakingUseCase) PickNext(ctx context.Context, userID string) (*domain.Bottle, error) {
	bottle, err := m.PickBottle(ctx, userID, m.tracker.Seen(userID))
	if err != nil || bottle == nil {
		return bottle, err
	}
	m.tracker.Add(userID, bottle.ID)
	return bottle, nil
}

func (m *matchmakingUseCase) ThrowBack(ctx context.Context, userID, bottleID string) error {
	if err := m.bottles.MarkReturned(ctx, bottleID, userID); err != nil {
		return err
	}
	m.tracker.Add(userID, bottleID)
	return nil
}

func (m *matchmakingUseCase) EndSession(userID string) {
	m.tracker.Reset(userID)
}
