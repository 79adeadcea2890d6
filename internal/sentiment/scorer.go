// Package sentiment scores short texts against a fixed word lexicon and
// aggregates the per-text results into summaries and narrative sentences.
//
// Everything in this package is pure and deterministic; it is safe to call
// from any number of goroutines.
package sentiment

import (
	"math"
	"regexp"
	"strings"
)

// Label is the coarse polarity class derived from a score.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// AllLabels lists the labels in tie-break order.
var AllLabels = []Label{Positive, Neutral, Negative}

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05

	increaseFactor = 1.5
	decreaseFactor = 0.7
)

// LabelForScore maps a score onto its label using the fixed thresholds.
func LabelForScore(score float64) Label {
	switch {
	case score >= positiveThreshold:
		return Positive
	case score <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// Emotions is a distribution over the five emotion categories.
type Emotions struct {
	Joy      float64 `json:"joy"`
	Sadness  float64 `json:"sadness"`
	Anger    float64 `json:"anger"`
	Surprise float64 `json:"surprise"`
	Fear     float64 `json:"fear"`
}

// Get returns the weight of one emotion.
func (e Emotions) Get(emotion Emotion) float64 {
	switch emotion {
	case Joy:
		return e.Joy
	case Sadness:
		return e.Sadness
	case Anger:
		return e.Anger
	case Surprise:
		return e.Surprise
	case Fear:
		return e.Fear
	}
	return 0
}

func (e *Emotions) set(emotion Emotion, v float64) {
	switch emotion {
	case Joy:
		e.Joy = v
	case Sadness:
		e.Sadness = v
	case Anger:
		e.Anger = v
	case Surprise:
		e.Surprise = v
	case Fear:
		e.Fear = v
	}
}

// Total returns the sum of all five weights.
func (e Emotions) Total() float64 {
	return e.Joy + e.Sadness + e.Anger + e.Surprise + e.Fear
}

// Result is the analysis of a single text.
//
// Emotion and Intensity are optional so that results built from partial
// upstream data (a post that only carries a score and label) can be
// summarized alongside analyzed ones. Analyze always sets both.
type Result struct {
	Score     float64   `json:"score"`
	Label     Label     `json:"label"`
	Emotion   *Emotions `json:"emotion,omitempty"`
	Intensity *float64  `json:"intensity,omitempty"`
}

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Tokenize lowercases text and splits it on runs of non-word characters.
// Empty tokens are dropped.
func Tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Analyze scores one text.
func Analyze(text string) Result {
	tokens := Tokenize(text)

	var positive, negative int
	for _, tok := range tokens {
		if positiveWords.has(tok) {
			positive++
		}
		if negativeWords.has(tok) {
			negative++
		}
	}

	var score float64
	if total := positive + negative; total > 0 {
		score = float64(positive-negative) / float64(total)
	}

	emotions := countEmotions(tokens)
	intensity := scaleIntensity(math.Abs(score), tokens)

	return Result{
		Score:     score,
		Label:     LabelForScore(score),
		Emotion:   &emotions,
		Intensity: &intensity,
	}
}

// countEmotions counts matches per category independently and normalises the
// counts into a distribution. With no matches every weight stays 0.
func countEmotions(tokens []string) Emotions {
	var e Emotions
	for _, tok := range tokens {
		for _, emotion := range AllEmotions {
			if emotionWords[emotion].has(tok) {
				e.set(emotion, e.Get(emotion)+1)
			}
		}
	}

	total := e.Total()
	if total == 0 {
		return e
	}
	for _, emotion := range AllEmotions {
		e.set(emotion, e.Get(emotion)/total)
	}
	return e
}

// scaleIntensity applies every modifier found before the final token,
// wherever it sits relative to the sentiment words.
func scaleIntensity(intensity float64, tokens []string) float64 {
	for i, tok := range tokens {
		if i == len(tokens)-1 {
			break
		}
		switch {
		case increaseModifiers.has(tok):
			intensity = math.Min(1, intensity*increaseFactor)
		case decreaseModifiers.has(tok):
			intensity = math.Max(0, intensity*decreaseFactor)
		}
	}
	return intensity
}
