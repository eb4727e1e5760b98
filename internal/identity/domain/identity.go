package domain

import "time"

// Account a credentialed identity stored in PostgreSQL. Anonymous
// identities exist only as sessions and profiles, never as accounts.
type Account struct {
	ID        int64
	SubjectID string
	Email     string
	Password  string
	CreatedAt time.Time
}

// AccountQuery lookup parameters, nil fields are ignored
type AccountQuery struct {
	ID        *int64
	SubjectID *string
	Email     *string
}

// Session a live identity session cached in Redis with TTL
type Session struct {
	Token        string    `json:"token"`
	SubjectID    string    `json:"subject_id"`
	Mode         string    `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiredAt    time.Time `json:"expired_at"`
}
