package domain

import "time"

// UserStats lifetime counters shown on the chronicles screen
type UserStats struct {
	BottlesThrown int `bson:"bottles_thrown" json:"bottles_thrown"`
	BottlesFound  int `bson:"bottles_found" json:"bottles_found"`
	BottlesKept   int `bson:"bottles_kept" json:"bottles_kept"`
}

// UserProfile per-subject profile document
type UserProfile struct {
	UID         string    `bson:"_id" json:"uid"`
	Email       string    `bson:"email" json:"email"`
	IsAnonymous bool      `bson:"is_anonymous" json:"is_anonymous"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	Stats       UserStats `bson:"stats" json:"stats"`
}
