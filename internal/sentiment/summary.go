package sentiment

// Summary aggregates a non-empty sequence of results.
type Summary struct {
	AverageScore         float64           `json:"averageScore"`
	SentimentCounts      map[Label]int     `json:"sentimentCounts"`
	SentimentPercentages map[Label]float64 `json:"sentimentPercentages"`
	DominantSentiment    Label             `json:"dominantSentiment"`
	AggregateEmotions    Emotions          `json:"aggregateEmotions"`
	DominantEmotion      Emotion           `json:"dominantEmotion"`
	AverageIntensity     float64           `json:"averageIntensity"`
}

// Summarize aggregates results. It returns nil for an empty input.
//
// Emotion weights are averaged over the results that carry an emotion map,
// and intensity over the results that carry an intensity. When no result
// carries an intensity the average is 0.
func Summarize(results []Result) *Summary {
	if len(results) == 0 {
		return nil
	}

	var (
		scoreSum      float64
		emotionSum    Emotions
		withEmotion   int
		intensitySum  float64
		withIntensity int
	)
	counts := make(map[Label]int, len(AllLabels))
	for _, l := range AllLabels {
		counts[l] = 0
	}

	for _, r := range results {
		scoreSum += r.Score
		if _, known := counts[r.Label]; known {
			counts[r.Label]++
		}
		if r.Emotion != nil {
			withEmotion++
			for _, e := range AllEmotions {
				emotionSum.set(e, emotionSum.Get(e)+r.Emotion.Get(e))
			}
		}
		if r.Intensity != nil {
			withIntensity++
			intensitySum += *r.Intensity
		}
	}

	total := float64(len(results))
	percentages := make(map[Label]float64, len(AllLabels))
	for _, l := range AllLabels {
		percentages[l] = float64(counts[l]) / total
	}

	if withEmotion > 0 {
		for _, e := range AllEmotions {
			emotionSum.set(e, emotionSum.Get(e)/float64(withEmotion))
		}
	}

	var avgIntensity float64
	if withIntensity > 0 {
		avgIntensity = intensitySum / float64(withIntensity)
	}

	return &Summary{
		AverageScore:         scoreSum / total,
		SentimentCounts:      counts,
		SentimentPercentages: percentages,
		DominantSentiment:    dominantLabel(counts),
		AggregateEmotions:    emotionSum,
		DominantEmotion:      dominantEmotion(emotionSum),
		AverageIntensity:     avgIntensity,
	}
}

// dominantLabel picks the highest count; earlier labels win ties.
func dominantLabel(counts map[Label]int) Label {
	best := AllLabels[0]
	for _, l := range AllLabels[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best
}

// dominantEmotion picks the highest weight; earlier emotions win ties.
func dominantEmotion(e Emotions) Emotion {
	best := AllEmotions[0]
	for _, em := range AllEmotions[1:] {
		if e.Get(em) > e.Get(best) {
			best = em
		}
	}
	return best
}
