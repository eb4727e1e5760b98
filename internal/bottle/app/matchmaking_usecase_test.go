package app

import (
	"context"
	"testing"

	"drift_chronicles_service/internal/bottle/domain"
	errprocess "drift_chronicles_service/pkg/err"
	"drift_chronicles_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func poolOf(bottles ...domain.Bottle) []domain.Bottle {
	return bottles
}

func TestMatchmakingUseCase_PickBottle_NeverOwnOrClaimed(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockRepo.On("FetchCandidates", ctx, int64(100)).Return(poolOf(
		domain.Bottle{ID: "mine", CreatorID: "user-1", Status: domain.StatusDrifting},
		domain.Bottle{ID: "claimed", CreatorID: "other", Status: domain.StatusClaimed, ClaimedBy: "x"},
		domain.Bottle{ID: "ok", CreatorID: "other", Status: domain.StatusDrifting},
	), nil)

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)

	// the only eligible bottle must win every draw
	for i := 0; i < 20; i++ {
		bottle, err := uc.PickBottle(ctx, "user-1", nil)
		assert.NoError(t, err)
		assert.NotNil(t, bottle)
		assert.Equal(t, "ok", bottle.ID)
	}
	mockRepo.AssertExpectations(t)
}

func TestMatchmakingUseCase_PickBottle_EmptyOceanIsNotAnError(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockRepo.On("FetchCandidates", ctx, int64(100)).Return(poolOf(), nil)

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)
	bottle, err := uc.PickBottle(ctx, "user-1", nil)

	assert.NoError(t, err)
	assert.Nil(t, bottle)
}

func TestMatchmakingUseCase_PickBottle_ViewedFilterOnlyOnFreshDraw(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	pool := poolOf(
		domain.Bottle{ID: "seen-before", CreatorID: "other", Status: domain.StatusDrifting, ViewedBy: []string{"user-1"}},
	)
	mockRepo := new(MockBottleRepository)
	mockRepo.On("FetchCandidates", ctx, int64(100)).Return(pool, nil)

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)

	// fresh draw: viewedBy applies, nothing left
	bottle, err := uc.PickBottle(ctx, "user-1", nil)
	assert.NoError(t, err)
	assert.Nil(t, bottle)

	// explicit exclusions suspend the durable filter
	bottle, err = uc.PickBottle(ctx, "user-1", []string{"unrelated"})
	assert.NoError(t, err)
	assert.NotNil(t, bottle)
	assert.Equal(t, "seen-before", bottle.ID)
}

func TestMatchmakingUseCase_PickBottle_ExcludedIDsNeverSurface(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockRepo.On("FetchCandidates", ctx, int64(100)).Return(poolOf(
		domain.Bottle{ID: "a", CreatorID: "other", Status: domain.StatusDrifting},
		domain.Bottle{ID: "b", CreatorID: "other", Status: domain.StatusDrifting},
	), nil)

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)

	for i := 0; i < 20; i++ {
		bottle, err := uc.PickBottle(ctx, "user-1", []string{"a"})
		assert.NoError(t, err)
		assert.NotNil(t, bottle)
		assert.Equal(t, "b", bottle.ID)
	}
}

func TestMatchmakingUseCase_PickNext_NeverRepeatsWithinSession(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockRepo.On("FetchCandidates", ctx, int64(100)).Return(poolOf(
		domain.Bottle{ID: "a", CreatorID: "other", Status: domain.StatusDrifting},
		domain.Bottle{ID: "b", CreatorID: "other", Status: domain.StatusDrifting},
		domain.Bottle{ID: "c", CreatorID: "other", Status: domain.StatusDrifting},
	), nil)

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		bottle, err := uc.PickNext(ctx, "user-1")
		assert.NoError(t, err)
		assert.NotNil(t, bottle)
		assert.False(t, seen[bottle.ID], "bottle %s surfaced twice in one session", bottle.ID)
		seen[bottle.ID] = true
	}

	// pool exhausted for this session
	bottle, err := uc.PickNext(ctx, "user-1")
	assert.NoError(t, err)
	assert.Nil(t, bottle)
}

func TestMatchmakingUseCase_ThrowBack(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockRepo.On("MarkReturned", ctx, "bottle-1", "user-1").Return(nil)
	mockRepo.On("FetchCandidates", ctx, int64(100)).Return(poolOf(
		domain.Bottle{ID: "bottle-1", CreatorID: "other", Status: domain.StatusDrifting},
	), nil)

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)
	err := uc.ThrowBack(ctx, "user-1", "bottle-1")
	assert.NoError(t, err)

	// a thrown-back bottle stays excluded for the rest of the session
	bottle, err := uc.PickNext(ctx, "user-1")
	assert.NoError(t, err)
	assert.Nil(t, bottle)

	mockRepo.AssertExpectations(t)
}

func TestMatchmakingUseCase_ThrowBack_NotFound(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockRepo.On("MarkReturned", ctx, "ghost", "user-1").
		Return(errprocess.New(errprocess.KindNotFound, "bottle not found"))

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)
	err := uc.ThrowBack(ctx, "user-1", "ghost")

	assert.Error(t, err)
	assert.True(t, errprocess.IsKind(err, errprocess.KindNotFound))
}

func TestMatchmakingUseCase_EndSessionResetsExclusions(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockRepo.On("FetchCandidates", ctx, int64(100)).Return(poolOf(
		domain.Bottle{ID: "a", CreatorID: "other", Status: domain.StatusDrifting},
	), nil)

	uc := NewMatchmakingUseCase(mockRepo, NewSessionTracker(), 100)

	bottle, _ := uc.PickNext(ctx, "user-1")
	assert.NotNil(t, bottle)

	bottle, _ = uc.PickNext(ctx, "user-1")
	assert.Nil(t, bottle)

	uc.EndSession("user-1")

	// fresh session, same bottle may surface again
	bottle, err := uc.PickNext(ctx, "user-1")
	assert.NoError(t, err)
	assert.NotNil(t, bottle)
}
