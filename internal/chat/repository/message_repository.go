package repository

import (
	"context"

	"drift_chronicles_service/internal/chat/domain"
	errprocess "drift_chronicles_service/pkg/err"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository definition chat transcripts
type MessageRepository interface {
	// ListByChat full transcript ordered oldest first
	ListByChat(ctx context.Context, chatID string) ([]domain.Message, error)
}

type messageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepository{
		coll: db.Collection("messages"),
	}
}

func (r *messageRepository) ListByChat(ctx context.Context, chatID string) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to query messages", err)
	}

	var messages []domain.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, errprocess.Wrap(errprocess.KindStorage, "failed to decode messages", err)
	}
	return messages, nil
}
