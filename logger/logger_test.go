package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calmrush.log")

	l := Setup(Options{Level: "debug", Format: "json", File: path})
	l.Info().Str("component", "test").Msg("hello")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestSetupFallsBackToInfo(t *testing.T) {
	Setup(Options{Level: "nonsense"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
