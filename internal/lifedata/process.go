package lifedata

import (
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

const topContactLimit = 3

// LocationSentimentMode selects how location sentiment scores are combined
// per location type.
type LocationSentimentMode int

const (
	// SumLocationSentiment adds up the scores of every visit of a type. It is
	// the established behaviour even though platform figures are averages.
	SumLocationSentiment LocationSentimentMode = iota
	// MeanLocationSentiment averages the scores per type.
	MeanLocationSentiment
)

// ParseLocationSentimentMode reads "sum" or "mean". Empty means sum.
func ParseLocationSentimentMode(s string) (LocationSentimentMode, error) {
	switch s {
	case "", "sum":
		return SumLocationSentiment, nil
	case "mean":
		return MeanLocationSentiment, nil
	}
	return 0, fmt.Errorf("unknown location sentiment mode %q", s)
}

// TimeOfDaySentiment holds the time-of-day figures reported for every
// aggregation. They are not derived from timestamps.
var TimeOfDaySentiment = map[string]float64{
	"morning":   0.6,
	"afternoon": 0.2,
	"evening":   0.7,
}

// Aggregator turns raw records into ProcessedLifeData. The zero value uses
// the default strategies.
type Aggregator struct {
	LocationSentiment LocationSentimentMode
}

// Process aggregates with the default strategies.
func Process(posts []SocialPost, locations []LocationVisit, activities []ActivityDay, tr TimeRange) ProcessedLifeData {
	return Aggregator{}.Process(posts, locations, activities, tr)
}

// Process builds all four sub-reports. The time range is echoed on the
// result; callers are expected to pass records that already fall inside it.
func (a Aggregator) Process(posts []SocialPost, locations []LocationVisit, activities []ActivityDay, tr TimeRange) ProcessedLifeData {
	return ProcessedLifeData{
		Period:    tr,
		Social:    socialReport(posts),
		Location:  locationReport(locations),
		Physical:  physicalReport(activities),
		Sentiment: a.sentimentReport(posts, locations),
	}
}

func socialReport(posts []SocialPost) SocialReport {
	platforms := newTally[int]()
	contacts := newTally[int]()

	var (
		best      *SocialPost
		bestScore int
	)
	for i := range posts {
		p := &posts[i]
		platforms.add(string(p.Platform), 1)
		contacts.add(p.Author.Name, 1)

		if score := p.Metrics.Score(); score > bestScore {
			bestScore = score
			best = p
		}
	}

	var mostEngaging *SocialPost
	if best != nil {
		cp := *best
		mostEngaging = &cp
	}

	ranked := contacts.ranked()
	if len(ranked) > topContactLimit {
		ranked = ranked[:topContactLimit]
	}
	top := make([]Contact, 0, len(ranked))
	for _, name := range ranked {
		top = append(top, Contact{Name: name, Interactions: contacts.values[name]})
	}

	return SocialReport{
		TotalInteractions: len(posts),
		MostActiveChannel: platforms.top(),
		TopContacts:       top,
		MostEngagingPost:  mostEngaging,
	}
}

func locationReport(locations []LocationVisit) LocationReport {
	minutes := newTally[int]()
	for i, m := range StayMinutes(locations) {
		minutes.add(string(locations[i].Type), m)
	}

	var homePercent int
	if total := minutes.total(); total > 0 {
		homePercent = roundHalfUp(float64(minutes.values[string(Home)]) / float64(total) * 100)
	}

	return LocationReport{
		TotalLocations:          len(locations),
		TimeSpentByLocationType: minutes.asMap(),
		MostVisitedLocationType: minutes.top(),
		HomeTimePercent:         homePercent,
	}
}

func physicalReport(days []ActivityDay) PhysicalReport {
	var r PhysicalReport
	var sleep float64
	for _, d := range days {
		r.TotalSteps += d.Steps
		r.ActiveMinutes += d.ActiveMinutes
		r.CaloriesBurned += d.Calories
		sleep += d.Sleep
	}

	n := len(days)
	if n == 0 {
		n = 1
	}
	r.AverageDailySteps = roundHalfUp(float64(r.TotalSteps) / float64(n))

	avgSleep := sleep / float64(n)
	r.SleepHours = roundTenths(avgSleep)
	r.SleepQuality = sleepQuality(avgSleep)
	return r
}

func sleepQuality(hours float64) SleepQuality {
	switch {
	case hours >= 7.5:
		return SleepGood
	case hours >= 6:
		return SleepFair
	default:
		return SleepPoor
	}
}

func (a Aggregator) sentimentReport(posts []SocialPost, locations []LocationVisit) SentimentReport {
	platformSums := newTally[float64]()
	platformCounts := newTally[int]()
	var all []float64

	for _, p := range posts {
		score := postScore(p)
		platformSums.add(string(p.Platform), score)
		platformCounts.add(string(p.Platform), 1)
		all = append(all, score)
	}

	byPlatform := make(map[string]float64, platformSums.len())
	for _, k := range platformSums.keys {
		if n := platformCounts.values[k]; n > 0 {
			byPlatform[k] = platformSums.values[k] / float64(n)
		}
	}

	locationSums := newTally[float64]()
	locationCounts := newTally[int]()
	for _, loc := range locations {
		if loc.SentimentScore == nil {
			continue
		}
		locationSums.add(string(loc.Type), *loc.SentimentScore)
		locationCounts.add(string(loc.Type), 1)
		all = append(all, *loc.SentimentScore)
	}

	byLocation := locationSums.asMap()
	if a.LocationSentiment == MeanLocationSentiment {
		for k, sum := range byLocation {
			byLocation[k] = sum / float64(locationCounts.values[k])
		}
	}

	var overall float64
	if len(all) > 0 {
		overall = mean(all)
	}

	byTime := make(map[string]float64, len(TimeOfDaySentiment))
	for k, v := range TimeOfDaySentiment {
		byTime[k] = v
	}

	return SentimentReport{
		OverallScore: overall,
		ByPlatform:   byPlatform,
		ByLocation:   byLocation,
		ByTimeOfDay:  byTime,
		Summary:      contentNarrative(posts),
	}
}

// postScore treats a post without an attached sentiment as neutral.
func postScore(p SocialPost) float64 {
	if p.Sentiment == nil {
		return 0
	}
	return p.Sentiment.Score
}

// contentNarrative analyzes every post that has content and narrates the
// resulting summary.
func contentNarrative(posts []SocialPost) string {
	var results []sentiment.Result
	for _, p := range posts {
		if p.Content == "" {
			continue
		}
		results = append(results, sentiment.Analyze(p.Content))
	}
	if len(results) == 0 {
		return sentiment.NoDataNarrative
	}
	return sentiment.Narrative(sentiment.Summarize(results))
}

// SortedKeys returns map keys ordered by descending value, then by name.
func SortedKeys[V number](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// roundTenths rounds the exact binary value of x to one decimal, ties away
// from zero: 6.0499999999999998 gives 6.0 and 7.25 gives 7.3.
func roundTenths(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v := new(big.Float).SetPrec(128).SetFloat64(math.Abs(x))
	v.Mul(v, big.NewFloat(10))
	v.Add(v, big.NewFloat(0.5))
	n, _ := v.Int(nil)
	tenths, _ := new(big.Float).SetInt(n).Float64()
	return math.Copysign(tenths/10, x)
}
