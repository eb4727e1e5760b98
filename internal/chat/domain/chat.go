package domain

import "time"

// Chat a private two-party conversation opened by a successful claim,
// 1:1 with the bottle that spawned it.
type Chat struct {
	ID            string               `bson:"_id" json:"id"`
	Participants  []string             `bson:"participants" json:"participants"`
	CreatorID     string               `bson:"creator_id" json:"creator_id"`
	ClaimerID     string               `bson:"claimer_id" json:"claimer_id"`
	BottleID      string               `bson:"bottle_id" json:"bottle_id"`
	BottleContent string               `bson:"bottle_content" json:"bottle_content"`
	LastMessage   string               `bson:"last_message" json:"last_message"`
	LastMessageAt time.Time            `bson:"last_message_at" json:"last_message_at"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	IsActive      bool                 `bson:"is_active" json:"is_active"`
	UnreadCount   map[string]int       `bson:"unread_count,omitempty" json:"unread_count,omitempty"`
	LastReadAt    map[string]time.Time `bson:"last_read_at,omitempty" json:"last_read_at,omitempty"`
	ReleasedAt    *time.Time           `bson:"released_at,omitempty" json:"released_at,omitempty"`
	ReleasedBy    string               `bson:"released_by,omitempty" json:"released_by,omitempty"`
}

// OtherParticipant the participant that is not userID, empty if userID
// is not in the chat.
func (c *Chat) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// HasParticipant check userID belongs to the chat
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
