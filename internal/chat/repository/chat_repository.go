package repository

import (
	"context"
	"errors"
	"time"

	"drift_chronicles_service/internal/chat/domain"
	"drift_chronicles_service/pkg/database"
	errprocess "drift_chronicles_service/pkg/err"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository definition chat documents and their denormalized state
type ChatRepository interface {
	// CreateFromClaim open the chat for a claimed bottle with its seed
	// message. Idempotent per bottle: a second call returns the existing
	// chat id with created=false.
	CreateFromClaim(ctx context.Context, bottleID, bottleContent, creatorID, claimerID string) (chatID string, created bool, err error)
	// FindByID point read
	FindByID(ctx context.Context, chatID string) (*domain.Chat, error)
	// FindByParticipant active chats for userID, most recent message first
	FindByParticipant(ctx context.Context, userID string) ([]domain.Chat, error)
	// AppendMessage insert a reply and update the chat's denormalized
	// fields, rejecting released chats
	AppendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error)
	// MarkRead zero userID's unread counter and stamp last_read_at
	MarkRead(ctx context.Context, chatID, userID string) error
	// Release deactivate the chat, idempotent
	Release(ctx context.Context, chatID, userID string) error
}

type chatRepository struct {
	db       *database.MongoDB
	chats    *mongo.Collection
	messages *mongo.Collection
}

// NewMongoChatRepository create a ChatRepository
func NewMongoChatRepository(db *database.MongoDB) ChatRepository {
	return &chatRepository{
		db:       db,
		chats:    db.Database.Collection("chats"),
		messages: db.Database.Collection("messages"),
	}
}

// CreateFromClaim chat and seed message are written in one transaction so
// a chat is never observable without its bottle message. The bottle_id
// lookup first makes retries after a partial claim converge on the same
// chat instead of minting a second one.
func (r *chatRepository) CreateFromClaim(ctx context.Context, bottleID, bottleContent, creatorID, claimerID string) (string, bool, error) {
	type outcome struct {
		chatID  string
		created bool
	}

	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var existing domain.Chat
		err := r.chats.FindOne(sc, bson.M{"bottle_id": bottleID}).Decode(&existing)
		if err == nil {
			return outcome{chatID: existing.ID}, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		now := time.Now().UTC()
		chat := domain.Chat{
			ID:            uuid.New().String(),
			Participants:  []string{creatorID, claimerID},
			CreatorID:     creatorID,
			ClaimerID:     claimerID,
			BottleID:      bottleID,
			BottleContent: bottleContent,
			LastMessage:   bottleContent,
			LastMessageAt: now,
			CreatedAt:     now,
			IsActive:      true,
			UnreadCount:   map[string]int{creatorID: 0, claimerID: 0},
			LastReadAt:    map[string]time.Time{},
		}
		seed := domain.Message{
			ID:        uuid.New().String(),
			ChatID:    chat.ID,
			SenderID:  creatorID,
			Content:   bottleContent,
			Type:      domain.MessageTypeBottle,
			CreatedAt: now,
		}

		if _, err := r.chats.InsertOne(sc, chat); err != nil {
			return nil, err
		}
		if _, err := r.messages.InsertOne(sc, seed); err != nil {
			return nil, err
		}
		return outcome{chatID: chat.ID, created: true}, nil
	})
	if err != nil {
		return "", false, errprocess.Wrap(errprocess.KindStorage, "failed to create chat from claim", err)
	}

	out := res.(outcome)
	return out.chatID, out.created, nil
}

func (r *chatRepository) FindByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.chats.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errprocess.New(errprocess.KindNotFound, "chat not found")
	}
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to read chat", err)
	}
	return &chat, nil
}

func (r *chatRepository) FindByParticipant(ctx context.Context, userID string) ([]domain.Chat, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cur, err := r.chats.Find(ctx, bson.M{
		"participants": userID,
		"is_active":    true,
	}, opts)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to query chats", err)
	}

	var chats []domain.Chat
	if err := cur.All(ctx, &chats); err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to decode chats", err)
	}
	return chats, nil
}

// AppendMessage the unread increment targets only the recipient. The
// is_active predicate in the chat update keeps a concurrent release from
// accepting a message into a dead chat.
func (r *chatRepository) AppendMessage(ctx context.Context, chatID, senderID, content string) (*domain.Message, error) {
	res, err := r.db.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var chat domain.Chat
		err := r.chats.FindOne(sc, bson.M{"_id": chatID}).Decode(&chat)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errprocess.New(errprocess.KindNotFound, "chat not found")
		}
		if err != nil {
			return nil, err
		}
		if !chat.IsActive {
			return nil, errprocess.New(errprocess.KindPermission, "chat has been released")
		}
		if !chat.HasParticipant(senderID) {
			return nil, errprocess.New(errprocess.KindPermission, "sender is not a participant of this chat")
		}

		// Per-chat timestamps stay strictly monotonic even if the wall
		// clock stalls between sends.
		createdAt := time.Now().UTC()
		if !createdAt.After(chat.LastMessageAt) {
			createdAt = chat.LastMessageAt.Add(time.Millisecond)
		}

		msg := domain.Message{
			ID:        uuid.New().String(),
			ChatID:    chatID,
			SenderID:  senderID,
			Content:   content,
			Type:      domain.MessageTypeReply,
			CreatedAt: createdAt,
		}
		if _, err := r.messages.InsertOne(sc, msg); err != nil {
			return nil, err
		}

		recipient := chat.OtherParticipant(senderID)
		update := r.chats.FindOneAndUpdate(sc,
			bson.M{"_id": chatID, "is_active": true},
			bson.M{
				"$set": bson.M{
					"last_message":    content,
					"last_message_at": createdAt,
				},
				"$inc": bson.M{"unread_count." + recipient: 1},
			},
		)
		if errors.Is(update.Err(), mongo.ErrNoDocuments) {
			return nil, errprocess.New(errprocess.KindPermission, "chat has been released")
		}
		if update.Err() != nil {
			return nil, update.Err()
		}
		return &msg, nil
	})
	if err != nil {
		if errprocess.KindOf(err) != "" {
			return nil, err
		}
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to append message", err)
	}
	return res.(*domain.Message), nil
}

// MarkRead resets the reader's unread counter. Released chats match
// nothing, their counters stay frozen.
func (r *chatRepository) MarkRead(ctx context.Context, chatID, userID string) error {
	res, err := r.chats.UpdateOne(ctx,
		bson.M{"_id": chatID, "is_active": true},
		bson.M{"$set": bson.M{
			"unread_count." + userID: 0,
			"last_read_at." + userID: time.Now().UTC(),
		}},
	)
	if err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to mark chat read", err)
	}
	if res.MatchedCount == 0 {
		return errprocess.New(errprocess.KindNotFound, "chat not found")
	}
	return nil
}

// Release flips is_active once. A second release matches zero documents
// and still returns nil, callers cannot distinguish the repeat.
func (r *chatRepository) Release(ctx context.Context, chatID, userID string) error {
	var chat domain.Chat
	err := r.chats.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errprocess.New(errprocess.KindNotFound, "chat not found")
	}
	if err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to read chat", err)
	}
	if !chat.HasParticipant(userID) {
		return errprocess.New(errprocess.KindPermission, "user is not a participant of this chat")
	}

	_, err = r.chats.UpdateOne(ctx,
		bson.M{"_id": chatID, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":   false,
			"released_at": time.Now().UTC(),
			"released_by": userID,
		}},
	)
	if err != nil {
		return errprocess.Wrap(errprocess.KindStorage, "failed to release chat", err)
	}
	return nil
}
