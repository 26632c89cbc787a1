package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Sounds, 8)
	assert.Len(t, c.Themes, 4)
	assert.Len(t, c.BreathingPatterns, 6)
	assert.Len(t, c.Chimes, 6)

	assert.Equal(t, "Dr. Weil's famous relaxation technique", c.BreathingPatterns[4].Description)
	assert.Equal(t, "#4f46e5", c.Themes[0].Colors.Primary)
	assert.Equal(t, "432Hz", c.Chimes[0].Frequency)
	assert.Equal(t, []string{"rain", "forest", "peaceful", "meditation"}, c.Sounds[0].Tags)
}

func TestTotalDurationIsSumOfPhases(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	want := map[string]int{
		"box-breathing":      16,
		"calming-breath":     19,
		"energizing-breath":  4,
		"triangle-breathing": 12,
		"4-7-8-breathing":    19,
		"alternate-nostril":  14,
	}
	for _, p := range c.BreathingPatterns {
		assert.Equal(t, want[p.ID], p.TotalDuration, p.ID)
	}
}

func TestParseRejectsBadPatterns(t *testing.T) {
	_, err := Parse([]byte("breathing_patterns:\n  - id: x\n    pattern: []\n"))
	assert.ErrorContains(t, err, "no phases")

	_, err = Parse([]byte("breathing_patterns:\n  - id: x\n    pattern:\n      - {state: sigh, duration: 3}\n"))
	assert.ErrorContains(t, err, "unknown phase")

	_, err = Parse([]byte("breathing_patterns:\n  - id: x\n    pattern:\n      - {state: hold, duration: 0}\n"))
	assert.ErrorContains(t, err, "positive duration")

	_, err = Parse([]byte("sounds: [unclosed"))
	assert.Error(t, err)
}
