package app

import (
	"context"

	"drift_chronicles_service/internal/bottle/domain"

	"github.com/stretchr/testify/mock"
)

// MockBottleRepository Mock BottleRepository
type MockBottleRepository struct {
	mock.Mock
}

// Cast mock cast bottle
func (m *MockBottleRepository) Cast(ctx context.Context, content, creatorID string) (string, error) {
	args := m.Called(ctx, content, creatorID)
	return args.String(0), args.Error(1)
}

// FetchCandidates mock fetch drifting bottles
func (m *MockBottleRepository) FetchCandidates(ctx context.Context, limit int64) ([]domain.Bottle, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Bottle), args.Error(1)
	}
	return nil, args.Error(1)
}

// FetchClaimed mock fetch claimed bottles
func (m *MockBottleRepository) FetchClaimed(ctx context.Context, limit int64) ([]domain.Bottle, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Bottle), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkReturned mock mark bottle viewed
func (m *MockBottleRepository) MarkReturned(ctx context.Context, bottleID, viewerID string) error {
	args := m.Called(ctx, bottleID, viewerID)
	return args.Error(0)
}

// Claim mock claim bottle
func (m *MockBottleRepository) Claim(ctx context.Context, bottleID, claimerID string) (*domain.Bottle, error) {
	args := m.Called(ctx, bottleID, claimerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Bottle), args.Error(1)
	}
	return nil, args.Error(1)
}

// Get mock point read
func (m *MockBottleRepository) Get(ctx context.Context, bottleID string) (*domain.Bottle, error) {
	args := m.Called(ctx, bottleID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Bottle), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProfileRepository Mock ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// EnsureProfile mock ensure profile
func (m *MockProfileRepository) EnsureProfile(ctx context.Context, uid, email string, anonymous bool) error {
	args := m.Called(ctx, uid, email, anonymous)
	return args.Error(0)
}

// Get mock read profile
func (m *MockProfileRepository) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockChatStarter Mock ChatStarter
type MockChatStarter struct {
	mock.Mock
}

// CreateFromClaim mock open chat from claim
func (m *MockChatStarter) CreateFromClaim(ctx context.Context, bottleID, bottleContent, creatorID, claimerID string) (string, bool, error) {
	args := m.Called(ctx, bottleID, bottleContent, creatorID, claimerID)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockEventPublisher Mock EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// Publish mock publish lifecycle event
func (m *MockEventPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}
