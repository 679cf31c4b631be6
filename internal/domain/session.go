package domain

import (
	"sync"
	"time"
)

// ReorderSession is one loaded document in the sort pages tool.
// The embedded mutex serialises operations on Order.
type ReorderSession struct {
	sync.Mutex

	ID        string
	Filename  string
	Source    []byte
	PageCount int
	Order     *PageOrder
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session outlived its TTL
func (s *ReorderSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// BuiltDocument is a document assembled in a session's final order
type BuiltDocument struct {
	Filename string
	Data     []byte
	Pages    int
}

// SessionState is the client-facing snapshot of a session
type SessionState struct {
	SessionID    string     `json:"session_id"`
	Filename     string     `json:"filename"`
	PageCount    int        `json:"page_count"`
	Order        []int      `json:"order"`
	Reversed     bool       `json:"reversed"`
	ReverseLabel string     `json:"reverse_label"`
	State        string     `json:"state"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Snapshot captures the session state. Callers hold the session lock.
func (s *ReorderSession) Snapshot() *SessionState {
	state := &SessionState{
		SessionID:    s.ID,
		Filename:     s.Filename,
		PageCount:    s.Order.PageCount(),
		Order:        s.Order.FinalOrder(),
		Reversed:     s.Order.Reversed(),
		ReverseLabel: s.Order.ReverseLabel(),
		State:        s.Order.State().String(),
	}
	if !s.ExpiresAt.IsZero() {
		expires := s.ExpiresAt
		state.ExpiresAt = &expires
	}
	return state
}
