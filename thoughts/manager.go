// server/thoughts/manager.go
package thoughts

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"github.com/ViniZap4/calmrush-server/domain"
	"github.com/ViniZap4/calmrush-server/sentiment"
)

const (
	EventCreated = "thought_created"
	EventUpdated = "thought_updated"
	EventDeleted = "thought_deleted"
)

var ErrMissingID = errors.New("thought id is required")

// Notifier receives lifecycle events after they are persisted.
type Notifier interface {
	Publish(userID, event string, t *domain.Thought)
}

type Manager struct {
	thoughts domain.ThoughtStore
	history  domain.HistoryStore
	notifier Notifier
	position func() (x, y float64)
}

func NewManager(thoughts domain.ThoughtStore, history domain.HistoryStore, notifier Notifier) *Manager {
	return &Manager{
		thoughts: thoughts,
		history:  history,
		notifier: notifier,
		position: randomPosition,
	}
}

// randomPosition places a new bubble somewhere on a typical screen.
func randomPosition() (float64, float64) {
	return rand.Float64()*1000 + 100, rand.Float64()*600 + 100
}

func (m *Manager) publish(userID, event string, t *domain.Thought) {
	if m.notifier != nil {
		m.notifier.Publish(userID, event, t)
	}
}

// List returns the user's thoughts newest first, processed ones as positive/green.
func (m *Manager) List(ctx context.Context, userID string) ([]*domain.Thought, error) {
	list, err := m.thoughts.ListThoughts(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, t := range list {
		t.Normalize()
	}
	return list, nil
}

// Create classifies text and stores it as a new, unprocessed thought.
func (m *Manager) Create(ctx context.Context, userID, text string) (*domain.Thought, sentiment.Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, sentiment.Result{}, domain.ErrEmptyText
	}

	res := sentiment.Analyze(text)
	x, y := m.position()

	t := &domain.Thought{
		UserID:    userID,
		Text:      text,
		X:         x,
		Y:         y,
		Color:     domain.ColorFor(res.Sentiment),
		Sentiment: res.Sentiment,
	}
	if err := m.thoughts.CreateThought(ctx, t); err != nil {
		return nil, res, err
	}

	m.publish(userID, EventCreated, t)
	return t, res, nil
}

type Update struct {
	ID          string
	X           *float64
	Y           *float64
	IsProcessed *bool
	Solution    *string
}

// Update applies the patch to one of the user's thoughts. Marking a thought
// processed also stores it as positive/green.
func (m *Manager) Update(ctx context.Context, userID string, u Update) (*domain.Thought, error) {
	if u.ID == "" {
		return nil, ErrMissingID
	}

	patch := domain.ThoughtPatch{
		X:           u.X,
		Y:           u.Y,
		IsProcessed: u.IsProcessed,
		Solution:    u.Solution,
	}
	if u.IsProcessed != nil && *u.IsProcessed {
		green, positive := domain.ColorGreen, domain.SentimentPositive
		patch.Color = &green
		patch.Sentiment = &positive
	}

	t, err := m.thoughts.UpdateThought(ctx, userID, u.ID, patch)
	if err != nil {
		return nil, err
	}

	m.publish(userID, EventUpdated, t)
	return t, nil
}

func (m *Manager) Delete(ctx context.Context, userID, id string) (*domain.Thought, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	t, err := m.thoughts.DeleteThought(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	m.publish(userID, EventDeleted, t)
	return t, nil
}

func (m *Manager) History(ctx context.Context, userID string) ([]*domain.HistoryEntry, error) {
	return m.history.ListHistory(ctx, userID)
}

type Solution struct {
	Problem  string
	Solution string
}

// Archive appends resolved (problem, solution) pairs to the user's history.
func (m *Manager) Archive(ctx context.Context, userID string, solutions []Solution) ([]*domain.HistoryEntry, error) {
	entries := make([]*domain.HistoryEntry, 0, len(solutions))
	for _, s := range solutions {
		entries = append(entries, &domain.HistoryEntry{
			UserID:   userID,
			Problem:  s.Problem,
			Solution: s.Solution,
		})
	}
	if err := m.history.AppendHistory(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
