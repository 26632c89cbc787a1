// server/domain/ports.go
package domain

import "context"

type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// ThoughtStore scopes every operation by owner; a thought owned by another
// user is reported as ErrNotFound.
type ThoughtStore interface {
	ListThoughts(ctx context.Context, userID string) ([]*Thought, error)
	CreateThought(ctx context.Context, t *Thought) error
	UpdateThought(ctx context.Context, userID, id string, patch ThoughtPatch) (*Thought, error)
	DeleteThought(ctx context.Context, userID, id string) (*Thought, error)
}

type HistoryStore interface {
	ListHistory(ctx context.Context, userID string) ([]*HistoryEntry, error)
	AppendHistory(ctx context.Context, entries []*HistoryEntry) error
}

type WellnessStore interface {
	CreateSession(ctx context.Context, s *WellnessSession) error
	ListSessions(ctx context.Context, userID string, kind SessionKind, limit int) ([]*WellnessSession, error)
}

type StatsStore interface {
	Stats(ctx context.Context, userID string) (*Stats, error)
}

// Store is everything the server needs from persistence.
type Store interface {
	UserStore
	ThoughtStore
	HistoryStore
	WellnessStore
	StatsStore
	Ping(ctx context.Context) error
	Close() error
}
