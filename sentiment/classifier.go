// server/sentiment/classifier.go
package sentiment

import (
	"regexp"
	"strings"

	"github.com/ViniZap4/calmrush-server/domain"
)

var punctuation = regexp.MustCompile(`[^\w\s]`)

var positiveWords = set(
	"happy", "excited", "great", "amazing", "wonderful", "love", "good", "fantastic", "awesome", "brilliant",
	"excellent", "perfect", "beautiful", "delighted", "thrilled", "joyful", "cheerful", "optimistic", "hopeful",
	"grateful", "blessed", "lucky", "fortunate", "successful", "proud", "confident", "motivated", "inspired",
	"peaceful", "calm", "relaxed", "content", "satisfied", "pleased", "impressed", "surprised", "wow", "yes",
)

var negativeWords = set(
	"sad", "angry", "frustrated", "worried", "anxious", "stressed", "terrible", "awful", "hate", "disappointed",
	"upset", "mad", "furious", "annoyed", "irritated", "depressed", "lonely", "scared", "afraid", "nervous",
	"overwhelmed", "exhausted", "tired", "sick", "hurt", "pain", "suffering", "miserable", "hopeless", "helpless",
	"confused", "lost", "stuck", "trapped", "failing", "losing", "broken", "damaged", "ruined", "destroyed",
	"regret", "guilt", "shame", "embarrassed", "ashamed", "rejected", "abandoned", "betrayed", "no",
)

var amplifiers = set("very", "extremely", "incredibly", "absolutely", "completely", "totally", "really", "so", "super", "ultra")

// Multi-word dampeners never match a single token; they are kept so the
// vocabulary stays the one the client shows.
var dampeners = set("slightly", "a bit", "somewhat", "kind of", "sort of", "maybe", "perhaps", "possibly")

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func has(m map[string]struct{}, w string) bool {
	_, ok := m[w]
	return ok
}

type Result struct {
	Sentiment  domain.Sentiment `json:"sentiment"`
	Score      float64          `json:"score"`
	Confidence float64          `json:"confidence"`
	Keywords   []string         `json:"keywords"`
}

// Tokenize lower-cases text, drops punctuation and splits on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(punctuation.ReplaceAllString(strings.ToLower(text), ""))
}

// Analyze scores text against the fixed vocabularies. A sentiment word always
// counts 1; when the previous token is an amplifier it counts 1 more, when it
// is a dampener 0.5 more.
func Analyze(text string) Result {
	words := Tokenize(text)

	var pos, neg float64
	keywords := []string{}

	for i, w := range words {
		isPos := has(positiveWords, w)
		isNeg := has(negativeWords, w)

		if isPos {
			pos++
			keywords = append(keywords, w)
		}
		if isNeg {
			neg++
			keywords = append(keywords, w)
		}

		if i == 0 {
			continue
		}
		prev := words[i-1]
		switch {
		case has(amplifiers, prev):
			if isPos {
				pos++
			}
			if isNeg {
				neg++
			}
		case has(dampeners, prev):
			if isPos {
				pos += 0.5
			}
			if isNeg {
				neg += 0.5
			}
		}
	}

	total := pos + neg
	net := pos - neg

	confidence := 0.0
	if total > 0 {
		confidence = min(total/float64(len(words)), 1)
	}

	s := domain.SentimentNeutral
	switch {
	case net > 0.5:
		s = domain.SentimentPositive
	case net < -0.5:
		s = domain.SentimentNegative
	}

	return Result{Sentiment: s, Score: net, Confidence: confidence, Keywords: keywords}
}
