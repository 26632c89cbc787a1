package thoughts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/calmrush-server/domain"
	"github.com/ViniZap4/calmrush-server/store/sqlite"
)

type event struct {
	userID, name, thoughtID string
}

type recorder struct {
	events []event
}

func (r *recorder) Publish(userID, name string, t *domain.Thought) {
	r.events = append(r.events, event{userID, name, t.ID})
}

func setup(t *testing.T) (*Manager, *recorder, *domain.User, *domain.User) {
	t.Helper()

	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	alice := &domain.User{Name: "Alice", Email: "alice@example.com"}
	bob := &domain.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, s.CreateUser(ctx, alice))
	require.NoError(t, s.CreateUser(ctx, bob))

	rec := &recorder{}
	m := NewManager(s, s, rec)
	m.position = func() (float64, float64) { return 150, 250 }
	return m, rec, alice, bob
}

func TestCreateClassifies(t *testing.T) {
	m, rec, alice, _ := setup(t)
	ctx := context.Background()

	th, res, err := m.Create(ctx, alice.ID, "  I am terrible and sad  ")
	require.NoError(t, err)
	assert.Equal(t, "I am terrible and sad", th.Text)
	assert.Equal(t, domain.SentimentNegative, th.Sentiment)
	assert.Equal(t, domain.ColorRed, th.Color)
	assert.Equal(t, 150.0, th.X)
	assert.Equal(t, 250.0, th.Y)
	assert.False(t, th.IsProcessed)
	assert.Equal(t, []string{"terrible", "sad"}, res.Keywords)

	th, _, err = m.Create(ctx, alice.ID, "what a wonderful day")
	require.NoError(t, err)
	assert.Equal(t, domain.ColorGreen, th.Color)

	th, _, err = m.Create(ctx, alice.ID, "meeting at noon")
	require.NoError(t, err)
	assert.Equal(t, domain.ColorBlue, th.Color)
	assert.Equal(t, domain.SentimentNeutral, th.Sentiment)

	require.Len(t, rec.events, 3)
	assert.Equal(t, EventCreated, rec.events[0].name)
	assert.Equal(t, alice.ID, rec.events[0].userID)
}

func TestCreateRejectsBlank(t *testing.T) {
	m, rec, alice, _ := setup(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, _, err := m.Create(context.Background(), alice.ID, text)
		assert.ErrorIs(t, err, domain.ErrEmptyText)
	}
	assert.Empty(t, rec.events)
}

func TestRandomPositionBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		x, y := randomPosition()
		assert.GreaterOrEqual(t, x, 100.0)
		assert.Less(t, x, 1100.0)
		assert.GreaterOrEqual(t, y, 100.0)
		assert.Less(t, y, 700.0)
	}
}

func TestResolveForcesPositive(t *testing.T) {
	m, rec, alice, _ := setup(t)
	ctx := context.Background()

	th, _, err := m.Create(ctx, alice.ID, "I am terrible and sad")
	require.NoError(t, err)

	processed, solution := true, "go for a walk"
	updated, err := m.Update(ctx, alice.ID, Update{ID: th.ID, IsProcessed: &processed, Solution: &solution})
	require.NoError(t, err)
	assert.Equal(t, domain.ColorGreen, updated.Color)
	assert.Equal(t, domain.SentimentPositive, updated.Sentiment)
	require.NotNil(t, updated.Solution)
	assert.Equal(t, solution, *updated.Solution)

	list, err := m.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.ColorGreen, list[0].Color)
	assert.True(t, list[0].IsProcessed)

	assert.Equal(t, EventUpdated, rec.events[len(rec.events)-1].name)
}

func TestUnprocessingKeepsColor(t *testing.T) {
	m, _, alice, _ := setup(t)
	ctx := context.Background()

	th, _, err := m.Create(ctx, alice.ID, "so sad")
	require.NoError(t, err)

	notProcessed := false
	updated, err := m.Update(ctx, alice.ID, Update{ID: th.ID, IsProcessed: &notProcessed})
	require.NoError(t, err)
	assert.Equal(t, domain.ColorRed, updated.Color)
}

func TestUpdateAndDeleteAreScoped(t *testing.T) {
	m, rec, alice, bob := setup(t)
	ctx := context.Background()

	th, _, err := m.Create(ctx, alice.ID, "anxious about work")
	require.NoError(t, err)
	before := len(rec.events)

	processed := true
	_, err = m.Update(ctx, bob.ID, Update{ID: th.ID, IsProcessed: &processed})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = m.Delete(ctx, bob.ID, th.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, rec.events, before)

	list, err := m.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsProcessed)

	deleted, err := m.Delete(ctx, alice.ID, th.ID)
	require.NoError(t, err)
	assert.Equal(t, th.ID, deleted.ID)
}

func TestMissingID(t *testing.T) {
	m, _, alice, _ := setup(t)

	_, err := m.Update(context.Background(), alice.ID, Update{})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = m.Delete(context.Background(), alice.ID, "")
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestArchive(t *testing.T) {
	m, _, alice, _ := setup(t)
	ctx := context.Background()

	entries, err := m.Archive(ctx, alice.ID, []Solution{
		{Problem: "stuck", Solution: "ask for help"},
		{Problem: "tired", Solution: "sleep early"},
	})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.NotEmpty(t, entries[0].ID)

	history, err := m.History(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "tired", history[0].Problem)
}
