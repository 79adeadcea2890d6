package lifedata

// Correlator derives insights that relate one signal category to another.
type Correlator interface {
	Correlate(posts []SocialPost, locations []LocationVisit, activities []ActivityDay) []Insight
}

// FixedCorrelator reports a fixed set of insights whatever the input. It
// holds the place of a data-driven implementation.
type FixedCorrelator struct{}

var fixedInsights = []Insight{
	{
		Title:       "Location & Mood",
		Description: "Your sentiment is more positive when you visit park locations.",
		Score:       0.85,
	},
	{
		Title:       "Exercise & Mood",
		Description: "Days with over 10,000 steps show 35% higher positive sentiment scores.",
		Score:       0.72,
	},
	{
		Title:       "Sleep & Wellbeing",
		Description: "Your mood is more positive on days following 7+ hours of sleep.",
		Score:       0.68,
	},
	{
		Title:       "Social & Physical Activity",
		Description: "You tend to be more physically active on days with higher social engagement.",
		Score:       0.53,
	},
}

// Correlate returns a fresh copy of the fixed insights.
func (FixedCorrelator) Correlate([]SocialPost, []LocationVisit, []ActivityDay) []Insight {
	out := make([]Insight, len(fixedInsights))
	copy(out, fixedInsights)
	return out
}

// DefaultCorrelator is used by GenerateCorrelations.
var DefaultCorrelator Correlator = FixedCorrelator{}

// GenerateCorrelations runs the default correlator.
func GenerateCorrelations(posts []SocialPost, locations []LocationVisit, activities []ActivityDay) []Insight {
	return DefaultCorrelator.Correlate(posts, locations, activities)
}
