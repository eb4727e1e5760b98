package app

import (
	"sync"

	"drift_chronicles_service/pkg"
)

// SessionTracker remembers which bottles a user has already been shown
// during the current browsing session. Purely in-memory and per-process,
// the set dies with the session and is never persisted.
type SessionTracker struct {
	mu   sync.Mutex
	seen map[string][]string
}

// NewSessionTracker create a SessionTracker
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{seen: make(map[string][]string)}
}

// Seen snapshot of the ids shown to userID this session, in view order
func (t *SessionTracker) Seen(userID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := t.seen[userID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Add record bottleID as shown to userID, duplicates ignored
func (t *SessionTracker) Add(userID, bottleID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if pkg.Contains(t.seen[userID], bottleID) {
		return
	}
	t.seen[userID] = append(t.seen[userID], bottleID)
}

// Reset drop userID's session state
func (t *SessionTracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.seen, userID)
}
