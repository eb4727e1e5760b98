package app

import (
	"context"

	"drift_chronicles_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockChatRepository Mock ChatRepository
type MockChatRepository struct {
	mock.Mock
}

// CreateFromClaim mock open chat from claim
func (m *MockChatRepository) CreateFromClaim(ctx context.Context, bottleID, bottleContent, creatorID, claimerID string) (string, bool, error) {
	args := m.Called(ctx, bottleID, bottleContent, creatorID, claimerID)
	return args.String(0), args.Bool(1), args.Error(2)
}

// FindByID mock point read
func (m *MockChatRepository) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByParticipant mock list active chats
func (m *MockChatRepository) FindByParticipant(ctx context.Context, userID string) ([]domain.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Chat), args.Error(1)
	}
	return nil, args.Error(1)
}

// AppendMessage mock append reply
func (m *MockChatRepository) AppendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error) {
	args := m.Called(ctx, chatID, senderID, content)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead mock zero unread counter
func (m *MockChatRepository) MarkRead(ctx context.Context, chatID, userID string) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

// Release mock deactivate chat
func (m *MockChatRepository) Release(ctx context.Context, chatID, userID string) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// ListByChat mock full transcript
func (m *MockMessageRepository) ListByChat(ctx context.Context, chatID string) ([]domain.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMessageBroker Mock MessageBroker
type MockMessageBroker struct {
	mock.Mock

	handlers []func([]byte)
}

// Publish mock notify subscribers
func (m *MockMessageBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	args := m.Called(ctx, channel, payload)
	for _, h := range m.handlers {
		h(payload)
	}
	return args.Error(0)
}

// Subscribe mock register handler
func (m *MockMessageBroker) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error {
	args := m.Called(ctx, channel)
	if args.Error(0) == nil {
		m.handlers = append(m.handlers, handler)
	}
	return args.Error(0)
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
