package app

import (
	"context"
	"strings"
	"sync"

	"drift_chronicles_service/internal/chat/domain"
	"drift_chronicles_service/internal/chat/repository"
	errprocess "drift_chronicles_service/pkg/err"
	"drift_chronicles_service/pkg/logger"
)

// EventChatReleased lifecycle event published when a chat is released
const EventChatReleased = "chat_released"

// EventPublisher consumer-side contract for the lifecycle event stream
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// ChatUseCase definition private chat operations
type ChatUseCase interface {
	// ListChats active chats of userID, most recent first
	ListChats(ctx context.Context, userID string) ([]domain.Chat, error)
	// GetChat the chat if userID participates in it
	GetChat(ctx context.Context, chatID, userID string) (*domain.Chat, error)
	// ListMessages full transcript if userID participates
	ListMessages(ctx context.Context, chatID, userID string) ([]domain.Message, error)
	// SendMessage append a reply and notify subscribers
	SendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error)
	// MarkRead best-effort, failures are logged and swallowed
	MarkRead(ctx context.Context, chatID, userID string)
	// Release end the chat, idempotent
	Release(ctx context.Context, chatID, userID string) error
	// SubscribeMessages push the full ordered transcript now and after
	// every change until cancel is called
	SubscribeMessages(ctx context.Context, chatID, userID string, onUpdate func([]domain.Message)) (cancel func(), err error)
}

type chatUseCase struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
	broker   repository.MessageBroker
	events   EventPublisher
}

// NewChatUseCase create a ChatUseCase
func NewChatUseCase(chats repository.ChatRepository, messages repository.MessageRepository, broker repository.MessageBroker, events EventPublisher) ChatUseCase {
	return &chatUseCase{
		chats:    chats,
		messages: messages,
		broker:   broker,
		events:   events,
	}
}

func chatChannel(chatID string) string {
	return "chat:messages:" + chatID
}

func (u *chatUseCase) ListChats(ctx context.Context, userID string) ([]domain.Chat, error) {
	return u.chats.FindByParticipant(ctx, userID)
}

func (u *chatUseCase) GetChat(ctx context.Context, chatID, userID string) (*domain.Chat, error) {
	chat, err := u.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errprocess.New(errprocess.KindPermission, "user is not a participant of this chat")
	}
	return chat, nil
}

func (u *chatUseCase) ListMessages(ctx context.Context, chatID, userID string) ([]domain.Message, error) {
	if _, err := u.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}
	return u.messages.ListByChat(ctx, chatID)
}

func (u *chatUseCase) SendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, errprocess.New(errprocess.KindValidation, "message content is empty")
	}

	msg, err := u.chats.AppendMessage(ctx, chatID, senderID, trimmed)
	if err != nil {
		return nil, err
	}

	if err := u.broker.Publish(ctx, chatChannel(chatID), []byte(msg.ID)); err != nil {
		logger.Log.Errorf("publish chat update failed", err)
	}
	return msg, nil
}

// MarkRead a stale unread badge is not worth failing the request over
func (u *chatUseCase) MarkRead(ctx context.Context, chatID, userID string) {
	if err := u.chats.MarkRead(ctx, chatID, userID); err != nil {
		logger.Log.Errorf("mark read failed for chat "+chatID, err)
	}
}

func (u *chatUseCase) Release(ctx context.Context, chatID, userID string) error {
	if err := u.chats.Release(ctx, chatID, userID); err != nil {
		return err
	}

	if err := u.events.Publish(ctx, EventChatReleased, map[string]string{
		"chat_id": chatID,
		"user_id": userID,
	}); err != nil {
		logger.Log.Errorf("publish chat_released event failed", err)
	}
	if err := u.broker.Publish(ctx, chatChannel(chatID), []byte("released")); err != nil {
		logger.Log.Errorf("publish chat update failed", err)
	}
	return nil
}

// SubscribeMessages each notification triggers a full transcript re-read,
// so subscribers always see a consistent ordered view regardless of which
// change fired. The initial snapshot is delivered before returning.
func (u *chatUseCase) SubscribeMessages(ctx context.Context, chatID, userID string, onUpdate func([]domain.Message)) (func(), error) {
	if _, err := u.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	subCtx, stop := context.WithCancel(ctx)

	push := func() {
		msgs, err := u.messages.ListByChat(subCtx, chatID)
		if err != nil {
			if subCtx.Err() == nil {
				logger.Log.Errorf("subscription transcript read failed for chat "+chatID, err)
			}
			return
		}
		onUpdate(msgs)
	}

	if err := u.broker.Subscribe(subCtx, chatChannel(chatID), func([]byte) {
		push()
	}); err != nil {
		stop()
		return nil, err
	}

	push()

	var once sync.Once
	cancel := func() {
		once.Do(stop)
	}
	return cancel, nil
}
