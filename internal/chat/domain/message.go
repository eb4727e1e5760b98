package domain

import "time"

// MessageType origin of a chat message
type MessageType string

const (
	// MessageTypeBottle the seed message carrying the original bottle text,
	// exactly one per chat
	MessageTypeBottle MessageType = "bottle"
	// MessageTypeReply a normal message sent inside the chat
	MessageTypeReply MessageType = "reply"
)

// Message one chat message, ordered by CreatedAt within its chat
type Message struct {
	ID        string      `bson:"_id" json:"id"`
	ChatID    string      `bson:"chat_id" json:"chat_id"`
	SenderID  string      `bson:"sender_id" json:"sender_id"`
	Content   string      `bson:"content" json:"content"`
	Type      MessageType `bson:"type" json:"type"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
}
