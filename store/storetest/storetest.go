// server/store/storetest/storetest.go

// Package storetest holds the behaviour every domain.Store backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/calmrush-server/domain"
)

// Run exercises a fresh store returned by open for each subtest.
func Run(t *testing.T, open func(t *testing.T) domain.Store) {
	tests := map[string]func(t *testing.T, s domain.Store){
		"users":             testUsers,
		"thought lifecycle": testThoughtLifecycle,
		"thought isolation": testThoughtIsolation,
		"history":           testHistory,
		"wellness":          testWellness,
		"stats":             testStats,
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t))
		})
	}
}

func mustUser(t *testing.T, s domain.Store, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "User " + email, Email: email, PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func testUsers(t *testing.T, s domain.Store) {
	ctx := context.Background()

	u := mustUser(t, s, "ada@example.com")
	assert.NotEmpty(t, u.ID)

	got, err := s.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = s.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	err = s.CreateUser(ctx, &domain.User{Name: "dup", Email: "ada@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	external := &domain.User{Name: "Ext", Email: "ext@example.com"}
	require.NoError(t, s.CreateUser(ctx, external))
	got, err = s.GetUserByID(ctx, external.ID)
	require.NoError(t, err)
	assert.False(t, got.HasPassword())

	_, err = s.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testThoughtLifecycle(t *testing.T, s domain.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "lifecycle@example.com")

	base := time.Now().UTC().Add(-time.Hour)
	first := &domain.Thought{UserID: u.ID, Text: "first", X: 10, Y: 20, Color: domain.ColorRed, Sentiment: domain.SentimentNegative, CreatedAt: base}
	second := &domain.Thought{UserID: u.ID, Text: "second", Color: domain.ColorBlue, Sentiment: domain.SentimentNeutral, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, s.CreateThought(ctx, first))
	require.NoError(t, s.CreateThought(ctx, second))

	list, err := s.ListThoughts(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text)
	assert.Equal(t, "first", list[1].Text)
	assert.Nil(t, list[1].Solution)

	x := 42.5
	updated, err := s.UpdateThought(ctx, u.ID, first.ID, domain.ThoughtPatch{X: &x})
	require.NoError(t, err)
	assert.Equal(t, 42.5, updated.X)
	assert.Equal(t, 20.0, updated.Y)
	assert.Equal(t, domain.ColorRed, updated.Color)

	processed, solution := true, "talk to a friend"
	green, positive := domain.ColorGreen, domain.SentimentPositive
	updated, err = s.UpdateThought(ctx, u.ID, first.ID, domain.ThoughtPatch{
		IsProcessed: &processed, Solution: &solution, Color: &green, Sentiment: &positive,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsProcessed)
	require.NotNil(t, updated.Solution)
	assert.Equal(t, solution, *updated.Solution)
	assert.Equal(t, domain.ColorGreen, updated.Color)
	assert.Equal(t, domain.SentimentPositive, updated.Sentiment)

	deleted, err := s.DeleteThought(ctx, u.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", deleted.Text)

	_, err = s.DeleteThought(ctx, u.ID, second.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err = s.ListThoughts(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testThoughtIsolation(t *testing.T, s domain.Store) {
	ctx := context.Background()
	owner := mustUser(t, s, "owner@example.com")
	other := mustUser(t, s, "other@example.com")

	th := &domain.Thought{UserID: owner.ID, Text: "mine", X: 1, Y: 1, Color: domain.ColorRed, Sentiment: domain.SentimentNegative}
	require.NoError(t, s.CreateThought(ctx, th))

	processed := true
	_, err := s.UpdateThought(ctx, other.ID, th.ID, domain.ThoughtPatch{IsProcessed: &processed})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.DeleteThought(ctx, other.ID, th.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := s.ListThoughts(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsProcessed)
	assert.Equal(t, domain.ColorRed, list[0].Color)

	list, err = s.ListThoughts(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testHistory(t *testing.T, s domain.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "history@example.com")

	require.NoError(t, s.AppendHistory(ctx, []*domain.HistoryEntry{
		{UserID: u.ID, Problem: "p1", Solution: "s1"},
		{UserID: u.ID, Problem: "p2", Solution: "s2"},
		{UserID: u.ID, Problem: "p3", Solution: "s3"},
	}))
	require.NoError(t, s.AppendHistory(ctx, nil))

	first, err := s.ListHistory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, first, 3)
	// Same timestamp: insertion order breaks the tie, newest first.
	assert.Equal(t, "p3", first[0].Problem)
	assert.Equal(t, "p1", first[2].Problem)

	second, err := s.ListHistory(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other := mustUser(t, s, "history-other@example.com")
	none, err := s.ListHistory(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testWellness(t *testing.T, s domain.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "wellness@example.com")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		require.NoError(t, s.CreateSession(ctx, &domain.WellnessSession{
			UserID: u.ID, Kind: domain.KindBreathing, Duration: i + 1, Completed: true,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, s.CreateSession(ctx, &domain.WellnessSession{
		UserID: u.ID, Kind: domain.KindMeditation, Duration: 20, Completed: true,
	}))

	breathing, err := s.ListSessions(ctx, u.ID, domain.KindBreathing, 10)
	require.NoError(t, err)
	require.Len(t, breathing, 10)
	assert.Equal(t, 12, breathing[0].Duration)
	assert.Equal(t, domain.KindBreathing, breathing[0].Kind)
	assert.True(t, breathing[0].Completed)

	meditation, err := s.ListSessions(ctx, u.ID, domain.KindMeditation, 10)
	require.NoError(t, err)
	require.Len(t, meditation, 1)
	assert.Equal(t, 20, meditation[0].Duration)

	// Sessions sharing a timestamp come back newest insert first.
	tie := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	for _, d := range []int{31, 32, 33} {
		require.NoError(t, s.CreateSession(ctx, &domain.WellnessSession{
			UserID: u.ID, Kind: domain.KindMeditation, Duration: d, Completed: true, CreatedAt: tie,
		}))
	}
	meditation, err = s.ListSessions(ctx, u.ID, domain.KindMeditation, 3)
	require.NoError(t, err)
	require.Len(t, meditation, 3)
	assert.Equal(t, []int{33, 32, 31}, []int{meditation[0].Duration, meditation[1].Duration, meditation[2].Duration})
}

func testStats(t *testing.T, s domain.Store) {
	ctx := context.Background()
	u := mustUser(t, s, "stats@example.com")

	require.NoError(t, s.CreateThought(ctx, &domain.Thought{UserID: u.ID, Text: "a", Color: domain.ColorBlue, Sentiment: domain.SentimentNeutral}))
	require.NoError(t, s.CreateThought(ctx, &domain.Thought{UserID: u.ID, Text: "b", Color: domain.ColorGreen, Sentiment: domain.SentimentPositive, IsProcessed: true}))
	require.NoError(t, s.AppendHistory(ctx, []*domain.HistoryEntry{{UserID: u.ID, Problem: "b", Solution: "done"}}))
	require.NoError(t, s.CreateSession(ctx, &domain.WellnessSession{UserID: u.ID, Kind: domain.KindMeditation, Duration: 5, Completed: true}))
	require.NoError(t, s.CreateSession(ctx, &domain.WellnessSession{UserID: u.ID, Kind: domain.KindBreathing, Duration: 3, Completed: true}))
	require.NoError(t, s.CreateSession(ctx, &domain.WellnessSession{UserID: u.ID, Kind: domain.KindBreathing, Duration: 4, Completed: true}))

	st, err := s.Stats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalThoughts)
	assert.Equal(t, 1, st.ResolvedThoughts)
	assert.Equal(t, 1, st.ThoughtHistoryCount)
	assert.Equal(t, 1, st.MeditationSessions)
	assert.Equal(t, 2, st.BreathingSessions)
	assert.Equal(t, u.Email, st.User.Email)
	assert.Equal(t, u.Name, st.User.Name)

	_, err = s.Stats(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
