package wellness

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/calmrush-server/domain"
	"github.com/ViniZap4/calmrush-server/store/sqlite"
)

func TestRecordAndList(t *testing.T) {
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	u := &domain.User{Name: "Zen", Email: "zen@example.com"}
	require.NoError(t, s.CreateUser(ctx, u))

	svc := NewService(s)

	ws, err := svc.Record(ctx, u.ID, domain.KindMeditation, 4.6)
	require.NoError(t, err)
	assert.Equal(t, 5, ws.Duration)
	assert.True(t, ws.Completed)
	assert.Equal(t, domain.KindMeditation, ws.Kind)

	for _, bad := range []float64{0, -3, math.NaN()} {
		_, err := svc.Record(ctx, u.ID, domain.KindBreathing, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	}

	for i := 0; i < RecentLimit+2; i++ {
		_, err := svc.Record(ctx, u.ID, domain.KindBreathing, 1)
		require.NoError(t, err)
	}

	breathing, err := svc.List(ctx, u.ID, domain.KindBreathing)
	require.NoError(t, err)
	assert.Len(t, breathing, RecentLimit)

	meditation, err := svc.List(ctx, u.ID, domain.KindMeditation)
	require.NoError(t, err)
	assert.Len(t, meditation, 1)
}
