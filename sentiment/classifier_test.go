package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ViniZap4/calmrush-server/domain"
)

func TestAnalyzeAmplifierRaisesScore(t *testing.T) {
	plain := Analyze("I am happy")
	strong := Analyze("I am very happy")

	assert.Equal(t, domain.SentimentPositive, strong.Sentiment)
	assert.Equal(t, domain.SentimentPositive, plain.Sentiment)
	assert.Greater(t, strong.Score, plain.Score)
	assert.Equal(t, 2.0, strong.Score)
	assert.InDelta(t, 0.5, strong.Confidence, 1e-9)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		sentiment domain.Sentiment
		score     float64
		keywords  []string
	}{
		{"negative pair", "I am terrible and sad", domain.SentimentNegative, -2, []string{"terrible", "sad"}},
		{"punctuation stripped", "Happy!!! So... GOOD.", domain.SentimentPositive, 3, []string{"happy", "good"}},
		{"dampened single word", "maybe sad", domain.SentimentNegative, -1.5, []string{"sad"}},
		{"balanced", "happy but sad", domain.SentimentNeutral, 0, []string{"happy", "sad"}},
		{"no hits", "the weather today", domain.SentimentNeutral, 0, []string{}},
		{"multi word dampener never matches", "kind of sad", domain.SentimentNegative, -1, []string{"sad"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			assert.Equal(t, tt.sentiment, got.Sentiment)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.keywords, got.Keywords)
		})
	}
}

func TestAnalyzeConfidence(t *testing.T) {
	assert.Zero(t, Analyze("").Confidence)
	assert.Zero(t, Analyze("nothing here").Confidence)
	// Amplified hits can exceed the token count; confidence is capped.
	assert.Equal(t, 1.0, Analyze("very happy").Confidence)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"dont", "stop", "me_now"}, Tokenize("  Don't\tstop, me_now! "))
	assert.Empty(t, Tokenize("?!"))
}
