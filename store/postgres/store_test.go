package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ViniZap4/calmrush-server/domain"
	"github.com/ViniZap4/calmrush-server/store/storetest"
)

// Needs a disposable database; every subtest starts from an empty schema.
func TestStore(t *testing.T) {
	url := os.Getenv("CALMRUSH_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CALMRUSH_TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) domain.Store {
		_ = Migrate(url, Down)
		require.NoError(t, Migrate(url, Up))

		s, err := New(context.Background(), url)
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}
