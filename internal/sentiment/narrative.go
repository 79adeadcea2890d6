package sentiment

import (
	"fmt"
	"math"
)

// NoDataNarrative is returned when there is nothing to narrate.
const NoDataNarrative = "No sentiment data available."

// BandCuts holds the lower bounds of the four upper qualitative bands.
// Scores below Negative fall into the "very negative" band.
type BandCuts struct {
	VeryPositive float64
	Positive     float64
	Neutral      float64
	Negative     float64
}

var (
	// NarrativeCuts are used by Narrative.
	NarrativeCuts = BandCuts{VeryPositive: 0.5, Positive: 0.2, Neutral: -0.2, Negative: -0.5}
	// DailyCuts are used by the daily recap, which draws a narrower neutral band.
	DailyCuts = BandCuts{VeryPositive: 0.5, Positive: 0.1, Neutral: -0.1, Negative: -0.5}
)

// Band maps a score to one of five qualitative descriptions.
func Band(score float64, cuts BandCuts) string {
	switch {
	case score >= cuts.VeryPositive:
		return "very positive"
	case score >= cuts.Positive:
		return "positive"
	case score >= cuts.Neutral:
		return "neutral"
	case score >= cuts.Negative:
		return "negative"
	default:
		return "very negative"
	}
}

// IntensityBand maps an average intensity to an adverb.
func IntensityBand(intensity float64) string {
	switch {
	case intensity >= 0.7:
		return "strongly"
	case intensity >= 0.4:
		return "moderately"
	default:
		return "mildly"
	}
}

var emotionPhrases = map[Emotion]string{
	Joy:      "happiness and contentment",
	Sadness:  "sadness or disappointment",
	Anger:    "frustration or anger",
	Surprise: "surprise or astonishment",
	Fear:     "concern or anxiety",
}

// EmotionPhrase describes an emotion for narrative text.
func EmotionPhrase(e Emotion) string {
	if phrase, ok := emotionPhrases[e]; ok {
		return phrase
	}
	return "mixed emotions"
}

// Narrative renders a summary as one paragraph.
func Narrative(s *Summary) string {
	if s == nil {
		return NoDataNarrative
	}

	return fmt.Sprintf(
		"Your overall sentiment today was %s %s. %d%% of your interactions were positive, %d%% were neutral, and %d%% were negative. The dominant emotion expressed was %s.",
		IntensityBand(s.AverageIntensity),
		Band(s.AverageScore, NarrativeCuts),
		Percent(s.SentimentPercentages[Positive]),
		Percent(s.SentimentPercentages[Neutral]),
		Percent(s.SentimentPercentages[Negative]),
		EmotionPhrase(s.DominantEmotion),
	)
}

// Percent converts a fraction into a whole percentage, rounding halves up.
func Percent(fraction float64) int {
	return int(math.Floor(fraction*100 + 0.5))
}
