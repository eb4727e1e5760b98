package app

import (
	"context"
	"testing"

	"drift_chronicles_service/internal/bottle/domain"
	errprocess "drift_chronicles_service/pkg/err"
	"drift_chronicles_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBottleUseCase_Cast(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	userID := uuid.New().String()
	content := "a message that drifts across the ocean"

	mockRepo := new(MockBottleRepository)
	mockProfiles := new(MockProfileRepository)
	mockChats := new(MockChatStarter)
	mockEvents := new(MockEventPublisher)

	mockRepo.On("Cast", ctx, content, userID).Return("bottle-1", nil)
	mockEvents.On("Publish", ctx, EventBottleCast, mock.Anything).Return(nil)

	uc := NewBottleUseCase(mockRepo, mockProfiles, mockChats, mockEvents)
	bottleID, err := uc.Cast(ctx, userID, content)

	assert.NoError(t, err)
	assert.Equal(t, "bottle-1", bottleID)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestBottleUseCase_Cast_InvalidContent(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	userID := uuid.New().String()

	mockRepo := new(MockBottleRepository)
	mockEvents := new(MockEventPublisher)

	mockRepo.On("Cast", ctx, "short", userID).
		Return("", errprocess.New(errprocess.KindValidation, "bottle content must be at least 10 characters"))

	uc := NewBottleUseCase(mockRepo, new(MockProfileRepository), new(MockChatStarter), mockEvents)
	_, err := uc.Cast(ctx, userID, "short")

	assert.Error(t, err)
	assert.True(t, errprocess.IsKind(err, errprocess.KindValidation))
	// rejected casts never produce events
	mockEvents.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBottleUseCase_Claim_OpensChat(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	claimerID := uuid.New().String()
	creatorID := uuid.New().String()

	claimed := &domain.Bottle{
		ID:        "bottle-1",
		Content:   "hello from the other side",
		CreatorID: creatorID,
		Status:    domain.StatusClaimed,
		ClaimedBy: claimerID,
	}

	mockRepo := new(MockBottleRepository)
	mockChats := new(MockChatStarter)
	mockEvents := new(MockEventPublisher)

	mockRepo.On("Claim", ctx, "bottle-1", claimerID).Return(claimed, nil)
	mockChats.On("CreateFromClaim", ctx, "bottle-1", claimed.Content, creatorID, claimerID).
		Return("chat-1", true, nil)
	mockEvents.On("Publish", ctx, EventBottleClaimed, mock.Anything).Return(nil)

	uc := NewBottleUseCase(mockRepo, new(MockProfileRepository), mockChats, mockEvents)
	result, err := uc.Claim(ctx, claimerID, "bottle-1")

	assert.NoError(t, err)
	assert.Equal(t, "chat-1", result.ChatID)
	assert.Equal(t, claimed, result.Bottle)
	mockRepo.AssertExpectations(t)
	mockChats.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestBottleUseCase_Claim_AlreadyClaimed(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	claimerID := uuid.New().String()

	mockRepo := new(MockBottleRepository)
	mockChats := new(MockChatStarter)

	mockRepo.On("Claim", ctx, "bottle-1", claimerID).
		Return(nil, errprocess.New(errprocess.KindAlreadyClaimed, "this bottle has already been claimed"))

	uc := NewBottleUseCase(mockRepo, new(MockProfileRepository), mockChats, new(MockEventPublisher))
	_, err := uc.Claim(ctx, claimerID, "bottle-1")

	assert.Error(t, err)
	assert.True(t, errprocess.IsKind(err, errprocess.KindAlreadyClaimed))
	// a lost race never opens a chat
	mockChats.AssertNotCalled(t, "CreateFromClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBottleUseCase_Claim_ChatCreationFails(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()
	claimerID := uuid.New().String()

	claimed := &domain.Bottle{
		ID:        "bottle-1",
		Content:   "hello from the other side",
		CreatorID: "creator",
		Status:    domain.StatusClaimed,
		ClaimedBy: claimerID,
	}

	mockRepo := new(MockBottleRepository)
	mockChats := new(MockChatStarter)

	mockRepo.On("Claim", ctx, "bottle-1", claimerID).Return(claimed, nil)
	mockChats.On("CreateFromClaim", ctx, "bottle-1", claimed.Content, "creator", claimerID).
		Return("", false, errprocess.New(errprocess.KindStorage, "failed to create chat from claim"))

	uc := NewBottleUseCase(mockRepo, new(MockProfileRepository), mockChats, new(MockEventPublisher))
	_, err := uc.Claim(ctx, claimerID, "bottle-1")

	// the claim stays committed, the error surfaces, the sweep repairs later
	assert.Error(t, err)
	assert.True(t, errprocess.IsKind(err, errprocess.KindStorage))
}

func TestOrphanReconciler_Sweep(t *testing.T) {
	logger.SetNewNop()
	ctx := context.Background()

	mockRepo := new(MockBottleRepository)
	mockChats := new(MockChatStarter)

	mockRepo.On("FetchClaimed", ctx, int64(500)).Return([]domain.Bottle{
		{ID: "healthy", Content: "already has a chat", CreatorID: "a", ClaimedBy: "b"},
		{ID: "orphan", Content: "claim without a chat", CreatorID: "c", ClaimedBy: "d"},
	}, nil)
	mockChats.On("CreateFromClaim", ctx, "healthy", "already has a chat", "a", "b").Return("chat-1", false, nil)
	mockChats.On("CreateFromClaim", ctx, "orphan", "claim without a chat", "c", "d").Return("chat-2", true, nil)

	r := NewOrphanReconciler(mockRepo, mockChats, 0, 0)
	r.Sweep(ctx)

	mockRepo.AssertExpectations(t)
	mockChats.AssertExpectations(t)
}
