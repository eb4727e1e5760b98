package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	errprocess "drift_chronicles_service/pkg/err"
)

// BottleStatus lifecycle state of a bottle
type BottleStatus string

const (
	// StatusDrifting bottle is in the pool, anyone may draw it
	StatusDrifting BottleStatus = "DRIFTING"
	// StatusClaimed bottle was kept, terminal state
	StatusClaimed BottleStatus = "CLAIMED"
)

// Content length bounds, enforced at cast time only
const (
	MinContentLen = 10
	MaxContentLen = 500
)

// Bottle a message adrift in the shared pool. Never deleted: it drifts
// forever or ends up permanently claimed.
type Bottle struct {
	ID        string       `bson:"_id" json:"id"`
	Content   string       `bson:"content" json:"content"`
	CreatorID string       `bson:"creator_id" json:"creator_id"`
	Status    BottleStatus `bson:"status" json:"status"`
	ViewedBy  []string     `bson:"viewed_by,omitempty" json:"viewed_by,omitempty"`
	ClaimedBy string       `bson:"claimed_by,omitempty" json:"claimed_by,omitempty"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	ClaimedAt *time.Time   `bson:"claimed_at,omitempty" json:"claimed_at,omitempty"`
}

// IsDrifting check the bottle can still be drawn
func (b *Bottle) IsDrifting() bool {
	return b.Status == StatusDrifting && b.ClaimedBy == ""
}

// NormalizeContent trim and validate cast content. Bounds count
// characters, not bytes, so multi-byte scripts get the same limits.
func NormalizeContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(content)
	if length < MinContentLen {
		return "", errprocess.Newf(errprocess.KindValidation,
			"message must be at least %d characters", MinContentLen)
	}
	if length > MaxContentLen {
		return "", errprocess.Newf(errprocess.KindValidation,
			"message must be at most %d characters", MaxContentLen)
	}
	return content, nil
}
