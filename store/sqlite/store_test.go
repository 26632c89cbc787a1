package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/calmrush-server/domain"
	"github.com/ViniZap4/calmrush-server/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) domain.Store {
		s, err := New(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}
