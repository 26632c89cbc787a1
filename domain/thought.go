// server/domain/thought.go
package domain

import "time"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

type Color string

const (
	ColorGreen Color = "green"
	ColorRed   Color = "red"
	ColorBlue  Color = "blue"
)

// ColorFor maps a sentiment to the bubble color shown in the playground.
func ColorFor(s Sentiment) Color {
	switch s {
	case SentimentPositive:
		return ColorGreen
	case SentimentNegative:
		return ColorRed
	default:
		return ColorBlue
	}
}

type Thought struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Text        string    `json:"text"`
	X           float64   `json:"x"`
	Y           float64   `json:"y"`
	Color       Color     `json:"color"`
	Sentiment   Sentiment `json:"sentiment"`
	IsProcessed bool      `json:"isProcessed"`
	Solution    *string   `json:"solution"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Normalize forces processed thoughts to read as positive/green.
func (t *Thought) Normalize() {
	if t.IsProcessed {
		t.Color = ColorGreen
		t.Sentiment = SentimentPositive
	}
}

// ThoughtPatch carries the optional fields of an update. Nil means untouched.
type ThoughtPatch struct {
	X           *float64
	Y           *float64
	IsProcessed *bool
	Solution    *string
	Color       *Color
	Sentiment   *Sentiment
}

// HistoryEntry is an archived (problem, solution) pair. Entries are never edited.
type HistoryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Problem   string    `json:"problem"`
	Solution  string    `json:"solution"`
	CreatedAt time.Time `json:"createdAt"`
}
