package lifedata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

func TestProcess_PhysicalWeek(t *testing.T) {
	got := Process(nil, nil, sampleWeek(), TimeRange{}).Physical

	assert.Equal(t, 69318, got.TotalSteps)
	assert.Equal(t, 9903, got.AverageDailySteps)
	assert.Equal(t, 2000*7+100*21, got.CaloriesBurned)
	assert.Equal(t, 30*7+5*21, got.ActiveMinutes)
	// 52.4 / 7 = 7.485..., shown as 7.5 but banded on the raw value.
	assert.Equal(t, 7.5, got.SleepHours)
	assert.Equal(t, SleepFair, got.SleepQuality)
}

func TestProcess_PhysicalEmpty(t *testing.T) {
	got := Process(nil, nil, nil, TimeRange{}).Physical

	assert.Zero(t, got.TotalSteps)
	assert.Zero(t, got.AverageDailySteps)
	assert.Zero(t, got.SleepHours)
	assert.Equal(t, SleepPoor, got.SleepQuality)
}

func TestSleepQuality(t *testing.T) {
	tests := []struct {
		hours float64
		want  SleepQuality
	}{
		{8, SleepGood},
		{7.5, SleepGood},
		{7.49, SleepFair},
		{6, SleepFair},
		{5.9, SleepPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sleepQuality(tt.hours), "hours=%v", tt.hours)
	}
}

func TestProcess_SleepHoursRounding(t *testing.T) {
	tests := []struct {
		name  string
		sleep []float64
		want  float64
	}{
		// The mean is 6.0499999999999998, just below the tie.
		{"below tie", []float64{6.1, 6.0}, 6.0},
		// 7.25 is exact, so the tie goes up.
		{"exact tie", []float64{7.5, 7.0}, 7.3},
		{"whole", []float64{8, 8}, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := make([]ActivityDay, len(tt.sleep))
			for i, h := range tt.sleep {
				days[i] = ActivityDay{Sleep: h}
			}

			got := Process(nil, nil, days, TimeRange{}).Physical

			assert.Equal(t, tt.want, got.SleepHours)
		})
	}
}

func TestRoundTenths(t *testing.T) {
	assert.Equal(t, 6.0, roundTenths((6.1+6.0)/2))
	assert.Equal(t, 7.3, roundTenths(7.25))
	assert.Equal(t, 7.5, roundTenths(52.4/7))
	assert.Equal(t, 0.1, roundTenths(0.05))
	assert.Equal(t, -7.3, roundTenths(-7.25))
	assert.Equal(t, 0.0, roundTenths(0))
}

func TestProcess_Social(t *testing.T) {
	got := Process(samplePosts(), nil, nil, TimeRange{}).Social

	assert.Equal(t, 5, got.TotalInteractions)
	// Every platform appears once, so the first one seen wins.
	assert.Equal(t, "twitter", got.MostActiveChannel)
	assert.Equal(t, []Contact{
		{Name: "John Doe", Interactions: 4},
		{Name: "Project Team", Interactions: 1},
	}, got.TopContacts)

	require.NotNil(t, got.MostEngagingPost)
	assert.Equal(t, "5", got.MostEngagingPost.ID)
}

func TestProcess_SocialTies(t *testing.T) {
	posts := []SocialPost{
		{ID: "a", Platform: Facebook, Author: Author{Name: "Ana"}, Metrics: &Engagement{Likes: 10}},
		{ID: "b", Platform: Twitter, Author: Author{Name: "Ben"}, Metrics: &Engagement{Comments: 5}},
		{ID: "c", Platform: Twitter, Author: Author{Name: "Cy"}},
		{ID: "d", Platform: Facebook, Author: Author{Name: "Dee"}},
		{ID: "e", Platform: Email, Author: Author{Name: "Ben"}},
	}

	got := Process(posts, nil, nil, TimeRange{}).Social

	assert.Equal(t, "facebook", got.MostActiveChannel)
	require.NotNil(t, got.MostEngagingPost)
	assert.Equal(t, "a", got.MostEngagingPost.ID)
	assert.Equal(t, []Contact{
		{Name: "Ben", Interactions: 2},
		{Name: "Ana", Interactions: 1},
		{Name: "Cy", Interactions: 1},
	}, got.TopContacts)
}

func TestProcess_NoEngagement(t *testing.T) {
	posts := []SocialPost{
		{ID: "a", Platform: Email, Author: Author{Name: "Ana"}},
		{ID: "b", Platform: Email, Author: Author{Name: "Ana"}, Metrics: &Engagement{}},
	}

	got := Process(posts, nil, nil, TimeRange{}).Social

	assert.Nil(t, got.MostEngagingPost)
}

func TestProcess_SocialEmpty(t *testing.T) {
	got := Process(nil, nil, nil, TimeRange{}).Social

	assert.Zero(t, got.TotalInteractions)
	assert.Empty(t, got.MostActiveChannel)
	assert.Empty(t, got.TopContacts)
	assert.Nil(t, got.MostEngagingPost)
}

func TestProcess_Location(t *testing.T) {
	got := Process(nil, sampleLocations(), nil, TimeRange{}).Location

	assert.Equal(t, 7, got.TotalLocations)
	assert.Equal(t, map[string]int{
		"park":   45,
		"food":   80,
		"school": 480, // "1.5 hours" reads as 5 hours
		"home":   60,  // the last visit adds nothing
	}, got.TimeSpentByLocationType)
	assert.Equal(t, "school", got.MostVisitedLocationType)
	assert.Equal(t, 9, got.HomeTimePercent)
}

func TestProcess_LocationEmpty(t *testing.T) {
	got := Process(nil, nil, nil, TimeRange{}).Location

	assert.Zero(t, got.TotalLocations)
	assert.Empty(t, got.TimeSpentByLocationType)
	assert.Empty(t, got.MostVisitedLocationType)
	assert.Zero(t, got.HomeTimePercent)
}

func TestProcess_LocationAllHome(t *testing.T) {
	locs := []LocationVisit{
		{Name: "Flat", Type: Home, Duration: "2 hours"},
		{Name: "Flat", Type: Home, Duration: "30 minutes"},
	}

	got := Process(nil, locs, nil, TimeRange{}).Location

	assert.Equal(t, 100, got.HomeTimePercent)
	assert.Equal(t, "home", got.MostVisitedLocationType)
}

func TestProcess_Sentiment(t *testing.T) {
	got := Process(samplePosts(), sampleLocations(), nil, TimeRange{}).Sentiment

	assert.Equal(t, map[string]float64{
		"twitter":   0.8,
		"facebook":  -0.6,
		"linkedin":  0.7,
		"email":     0.1,
		"instagram": 0.9,
	}, got.ByPlatform)

	assert.InDelta(t, 0.8, got.ByLocation["park"], 1e-9)
	assert.InDelta(t, 1.5, got.ByLocation["food"], 1e-9)
	assert.NotContains(t, got.ByLocation, "school")

	assert.InDelta(t, 4.2/8, got.OverallScore, 1e-9)
	assert.Equal(t, TimeOfDaySentiment, got.ByTimeOfDay)

	assert.Equal(t,
		"Your overall sentiment today was strongly positive. 60% of your interactions were positive, "+
			"20% were neutral, and 20% were negative. The dominant emotion expressed was happiness and contentment.",
		got.Summary)
}

func TestProcess_SentimentMeanMode(t *testing.T) {
	agg := Aggregator{LocationSentiment: MeanLocationSentiment}

	got := agg.Process(nil, sampleLocations(), nil, TimeRange{}).Sentiment

	assert.InDelta(t, 0.75, got.ByLocation["food"], 1e-9)
	assert.InDelta(t, 0.8, got.ByLocation["park"], 1e-9)
}

func TestProcess_SentimentMissingScores(t *testing.T) {
	posts := []SocialPost{
		{Platform: Twitter, Author: Author{Name: "a"}, Sentiment: &PostSentiment{Score: 0.6, Label: sentiment.Positive}},
		{Platform: Twitter, Author: Author{Name: "b"}},
	}

	got := Process(posts, nil, nil, TimeRange{}).Sentiment

	assert.InDelta(t, 0.3, got.ByPlatform["twitter"], 1e-9)
	assert.InDelta(t, 0.3, got.OverallScore, 1e-9)
	assert.Equal(t, sentiment.NoDataNarrative, got.Summary)
}

func TestProcess_SentimentEmpty(t *testing.T) {
	got := Process(nil, nil, nil, TimeRange{}).Sentiment

	assert.Zero(t, got.OverallScore)
	assert.Empty(t, got.ByPlatform)
	assert.Empty(t, got.ByLocation)
	assert.Equal(t, sentiment.NoDataNarrative, got.Summary)
}

func TestProcess_EchoesPeriodAndIsRepeatable(t *testing.T) {
	tr := TimeRange{
		Start: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 10, 18, 23, 59, 59, 0, time.UTC),
	}
	posts, locs, week := samplePosts(), sampleLocations(), sampleWeek()

	first := Process(posts, locs, week, tr)
	second := Process(posts, locs, week, tr)

	assert.Equal(t, tr, first.Period)
	assert.Equal(t, first, second)
}

func TestParseLocationSentimentMode(t *testing.T) {
	m, err := ParseLocationSentimentMode("")
	require.NoError(t, err)
	assert.Equal(t, SumLocationSentiment, m)

	m, err = ParseLocationSentimentMode("mean")
	require.NoError(t, err)
	assert.Equal(t, MeanLocationSentiment, m)

	_, err = ParseLocationSentimentMode("median")
	assert.Error(t, err)
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"food": 80, "home": 60, "park": 80, "gym": 10}

	assert.Equal(t, []string{"food", "park", "home", "gym"}, SortedKeys(m))
}
