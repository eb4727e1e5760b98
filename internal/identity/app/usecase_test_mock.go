package app

import (
	"context"
	"time"

	"drift_chronicles_service/internal/identity/domain"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository Mock AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

// CreateAccount mock create account
func (m *MockAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// FindByAccount mock find account
func (m *MockAccountRepository) FindByAccount(ctx context.Context, query *domain.AccountQuery) (*domain.Account, error) {
	args := m.Called(ctx, query)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockProfileInitializer Mock ProfileInitializer
type MockProfileInitializer struct {
	mock.Mock
}

// EnsureProfile mock ensure profile
func (m *MockProfileInitializer) EnsureProfile(ctx context.Context, uid, email string, anonymous bool) error {
	args := m.Called(ctx, uid, email, anonymous)
	return args.Error(0)
}

// MockSessionEnder Mock SessionEnder
type MockSessionEnder struct {
	mock.Mock
}

// EndSession mock drop browsing state
func (m *MockSessionEnder) EndSession(userID string) {
	m.Called(userID)
}

// MockSessionRepository Mock RedisRepository[domain.Session]
type MockSessionRepository struct {
	mock.Mock
}

// Set mock store session
func (m *MockSessionRepository) Set(ctx context.Context, key string, value domain.Session, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Get mock read session
func (m *MockSessionRepository) Get(ctx context.Context, key string) (domain.Session, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Session), args.Error(1)
}

// Del mock delete session
func (m *MockSessionRepository) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// GetTTL mock session ttl
func (m *MockSessionRepository) GetTTL(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

// ExtendTTL mock extend session ttl
func (m *MockSessionRepository) ExtendTTL(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}
