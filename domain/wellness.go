// server/domain/wellness.go
package domain

import "time"

type SessionKind string

const (
	KindBreathing  SessionKind = "breathing"
	KindMeditation SessionKind = "meditation"
)

func (k SessionKind) Valid() bool {
	return k == KindBreathing || k == KindMeditation
}

// WellnessSession is a completed breathing or meditation session. Duration is
// whole minutes as reported by the client.
type WellnessSession struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Kind      SessionKind `json:"kind"`
	Duration  int         `json:"duration"`
	Completed bool        `json:"completed"`
	CreatedAt time.Time   `json:"createdAt"`
}
