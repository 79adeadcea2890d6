package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNarrativeNil(t *testing.T) {
	assert.Equal(t, "No sentiment data available.", Narrative(nil))
}

func TestNarrativeTemplate(t *testing.T) {
	s := Summarize(analyzeAll(
		"I love this amazing day",
		"The sky is blue",
		"This is terrible and awful",
	))

	want := "Your overall sentiment today was moderately neutral. " +
		"33% of your interactions were positive, 33% were neutral, and 33% were negative. " +
		"The dominant emotion expressed was happiness and contentment."
	assert.Equal(t, want, Narrative(s))
}

func TestNarrativeStronglyVeryPositive(t *testing.T) {
	s := Summarize(analyzeAll("so happy", "great day", "wonderful friends, delighted"))

	want := "Your overall sentiment today was strongly very positive. " +
		"100% of your interactions were positive, 0% were neutral, and 0% were negative. " +
		"The dominant emotion expressed was happiness and contentment."
	assert.Equal(t, want, Narrative(s))
}

func TestNarrativeUnknownEmotion(t *testing.T) {
	s := &Summary{
		AverageScore:         -0.7,
		SentimentPercentages: map[Label]float64{Negative: 1},
		DominantEmotion:      "boredom",
		AverageIntensity:     0.1,
	}
	want := "Your overall sentiment today was mildly very negative. " +
		"0% of your interactions were positive, 0% were neutral, and 100% were negative. " +
		"The dominant emotion expressed was mixed emotions."
	assert.Equal(t, want, Narrative(s))
}

func TestBand(t *testing.T) {
	tests := []struct {
		score  float64
		cuts   BandCuts
		expect string
	}{
		{0.5, NarrativeCuts, "very positive"},
		{0.49, NarrativeCuts, "positive"},
		{0.2, NarrativeCuts, "positive"},
		{0.15, NarrativeCuts, "neutral"},
		{-0.2, NarrativeCuts, "neutral"},
		{-0.21, NarrativeCuts, "negative"},
		{-0.5, NarrativeCuts, "negative"},
		{-0.51, NarrativeCuts, "very negative"},
		{0.15, DailyCuts, "positive"},
		{-0.15, DailyCuts, "negative"},
		{0.05, DailyCuts, "neutral"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, Band(tt.score, tt.cuts), "score %v", tt.score)
	}
}

func TestIntensityBand(t *testing.T) {
	assert.Equal(t, "strongly", IntensityBand(0.7))
	assert.Equal(t, "moderately", IntensityBand(0.69))
	assert.Equal(t, "moderately", IntensityBand(0.4))
	assert.Equal(t, "mildly", IntensityBand(0.39))
	assert.Equal(t, "mildly", IntensityBand(0))
}

func TestEmotionPhrase(t *testing.T) {
	assert.Equal(t, "sadness or disappointment", EmotionPhrase(Sadness))
	assert.Equal(t, "frustration or anger", EmotionPhrase(Anger))
	assert.Equal(t, "surprise or astonishment", EmotionPhrase(Surprise))
	assert.Equal(t, "concern or anxiety", EmotionPhrase(Fear))
	assert.Equal(t, "mixed emotions", EmotionPhrase(""))
}

func TestPercentRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 13, Percent(0.125))
	assert.Equal(t, 33, Percent(1.0/3))
	assert.Equal(t, 67, Percent(2.0/3))
	assert.Equal(t, 100, Percent(1))
	assert.Equal(t, 0, Percent(0))
}
