// Package compose turns the stored records of a period into a Markdown
// report and the JSON the dashboard draws from.
package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/lifedata"
	"github.com/TobiSchelling/lifelens/internal/metrics"
	"github.com/TobiSchelling/lifelens/internal/places"
	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

const (
	recentPostLimit = 5
	excerptLength   = 80
)

// InsufficientData is the day recap when a day has no posts or no activity.
const InsufficientData = "Insufficient data to generate a summary."

// Records is everything stored for one period.
type Records struct {
	Posts      []lifedata.SocialPost
	Locations  []lifedata.LocationVisit
	Activities []lifedata.ActivityDay
}

// Composer builds and stores reports.
type Composer struct {
	db          *database.DB
	aggregator  lifedata.Aggregator
	correlator  lifedata.Correlator
	placeRadius float64
	metrics     *metrics.Collector
	logger      *zap.Logger
	now         func() time.Time
}

// NewComposer creates a report composer.
func NewComposer(db *database.DB, aggregator lifedata.Aggregator, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		db:          db,
		aggregator:  aggregator,
		correlator:  lifedata.DefaultCorrelator,
		placeRadius: places.DefaultRadius,
		logger:      logger,
		now:         time.Now,
	}
}

// WithPlaceRadius sets the distance in metres within which visits are
// grouped into one place.
func (c *Composer) WithPlaceRadius(metres float64) *Composer {
	if metres > 0 {
		c.placeRadius = metres
	}
	return c
}

// WithMetrics counts composed reports on m.
func (c *Composer) WithMetrics(m *metrics.Collector) *Composer {
	c.metrics = m
	return c
}

// LoadRecords reads a period's posts, visits and activity days.
func (c *Composer) LoadRecords(periodID string) (*Records, error) {
	posts, err := c.db.GetPostsForPeriod(periodID)
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}
	locs, err := c.db.GetLocationsForPeriod(periodID)
	if err != nil {
		return nil, fmt.Errorf("loading locations: %w", err)
	}
	days, err := c.db.GetActivitiesForPeriod(periodID)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	return &Records{
		Posts:      database.SocialPosts(posts),
		Locations:  database.LocationVisits(locs),
		Activities: database.ActivityDays(days),
	}, nil
}

// Process aggregates the records of a period.
func (c *Composer) Process(periodID string) (*lifedata.ProcessedLifeData, *Records, error) {
	start, end, err := database.PeriodBounds(periodID)
	if err != nil {
		return nil, nil, err
	}
	recs, err := c.LoadRecords(periodID)
	if err != nil {
		return nil, nil, err
	}
	data := c.aggregator.Process(recs.Posts, recs.Locations, recs.Activities,
		lifedata.TimeRange{Start: start, End: end})
	return &data, recs, nil
}

// Insights correlates the records of a period.
func (c *Composer) Insights(periodID string) ([]lifedata.Insight, error) {
	recs, err := c.LoadRecords(periodID)
	if err != nil {
		return nil, err
	}
	return c.correlator.Correlate(recs.Posts, recs.Locations, recs.Activities), nil
}

// DailyRecap writes the recap of the day the period id names, using the
// period's latest activity day. Without posts or activity there is nothing
// to recap and InsufficientData is returned.
func (c *Composer) DailyRecap(periodID string, date time.Time) (string, error) {
	data, recs, err := c.Process(periodID)
	if err != nil {
		return "", err
	}
	if len(recs.Posts) == 0 || len(recs.Activities) == 0 {
		return InsufficientData, nil
	}
	day := &recs.Activities[len(recs.Activities)-1]
	return strings.TrimSpace(lifedata.DailySummary(date, recs.Posts, recs.Locations, day, &data.Sentiment)), nil
}

// Places groups the visits of a period into places.
func (c *Composer) Places(periodID string) ([]places.Place, error) {
	locs, err := c.db.GetLocationsForPeriod(periodID)
	if err != nil {
		return nil, fmt.Errorf("loading locations: %w", err)
	}
	return places.Group(database.LocationVisits(locs), c.placeRadius), nil
}

// ComposeReport aggregates a period, renders the report and stores it.
func (c *Composer) ComposeReport(ctx context.Context, periodID string) (*database.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, recs, err := c.Process(periodID)
	if err != nil {
		return nil, err
	}
	insights := c.correlator.Correlate(recs.Posts, recs.Locations, recs.Activities)

	var lastDay *lifedata.ActivityDay
	if n := len(recs.Activities); n > 0 {
		lastDay = &recs.Activities[n-1]
	}
	recap := lifedata.DailySummary(data.Period.End, recs.Posts, recs.Locations, lastDay, &data.Sentiment)

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding report data: %w", err)
	}

	report := database.Report{
		PeriodID:      periodID,
		BodyMarkdown:  c.render(periodID, data, recs, recap, insights),
		DataJSON:      string(payload),
		PostCount:     len(recs.Posts),
		LocationCount: len(recs.Locations),
		ActivityCount: len(recs.Activities),
	}
	if _, err := c.db.InsertReport(report); err != nil {
		return nil, fmt.Errorf("storing report: %w", err)
	}
	if c.metrics != nil {
		c.metrics.ReportsComposed.Inc()
	}

	c.logger.Info("report composed",
		zap.String("period", periodID),
		zap.Int("posts", report.PostCount),
		zap.Int("locations", report.LocationCount),
		zap.Int("activities", report.ActivityCount))
	return c.db.GetReport(periodID)
}

func (c *Composer) render(periodID string, d *lifedata.ProcessedLifeData, recs *Records, recap string, insights []lifedata.Insight) string {
	sections := []string{
		fmt.Sprintf("# Life report: %s", database.FormatPeriodDisplay(periodID)),
		"## Summary\n\n" + strings.TrimSpace(recap),
		c.socialSection(d.Social, recs.Posts),
		placesSection(d.Location, places.Group(recs.Locations, c.placeRadius)),
		activitySection(d.Physical, len(recs.Activities)),
		moodSection(d.Sentiment),
		insightsSection(insights),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (c *Composer) socialSection(s lifedata.SocialReport, posts []lifedata.SocialPost) string {
	var b strings.Builder
	b.WriteString("## Social\n\n")
	if s.TotalInteractions == 0 {
		b.WriteString("No posts were recorded.")
		return b.String()
	}

	fmt.Fprintf(&b, "- **Interactions:** %d\n", s.TotalInteractions)
	fmt.Fprintf(&b, "- **Most active channel:** %s\n", s.MostActiveChannel)
	if len(s.TopContacts) > 0 {
		contacts := make([]string, len(s.TopContacts))
		for i, ct := range s.TopContacts {
			contacts[i] = fmt.Sprintf("%s (%d)", ct.Name, ct.Interactions)
		}
		fmt.Fprintf(&b, "- **Top contacts:** %s\n", strings.Join(contacts, ", "))
	}
	if p := s.MostEngagingPost; p != nil {
		fmt.Fprintf(&b, "- **Most engaging post:** %q on %s (%d engagement points)\n",
			excerpt(p.Content), p.Platform, p.Metrics.Score())
	}

	b.WriteString("\n### Recent posts\n\n")
	start := len(posts) - recentPostLimit
	if start < 0 {
		start = 0
	}
	for i := len(posts) - 1; i >= start; i-- {
		p := posts[i]
		line := fmt.Sprintf("- *%s* %s", p.Platform, p.Author.Name)
		if when := c.displayTime(p.Timestamp); when != "" {
			line += ", " + when
		}
		text := excerpt(p.Content)
		if text == "" && p.Link != "" {
			text = fmt.Sprintf("<%s>", p.Link)
		}
		fmt.Fprintf(&b, "%s: %s\n", line, text)
	}
	return strings.TrimRight(b.String(), "\n")
}

// displayTime renders RFC 3339 timestamps relative to now and passes other
// text through.
func (c *Composer) displayTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return humanize.RelTime(t, c.now(), "ago", "from now")
}

func placesSection(l lifedata.LocationReport, spots []places.Place) string {
	var b strings.Builder
	b.WriteString("## Places\n\n")
	if l.TotalLocations == 0 {
		b.WriteString("No location data was recorded.")
		return b.String()
	}

	fmt.Fprintf(&b, "- **Visits:** %d\n", l.TotalLocations)
	fmt.Fprintf(&b, "- **Most time at:** %s\n", l.MostVisitedLocationType)
	fmt.Fprintf(&b, "- **Time at home:** %d%%\n", l.HomeTimePercent)
	b.WriteString("\n| Place type | Time |\n|---|---|\n")
	for _, k := range lifedata.SortedKeys(l.TimeSpentByLocationType) {
		fmt.Fprintf(&b, "| %s | %s |\n", k, formatMinutes(l.TimeSpentByLocationType[k]))
	}

	var repeat []places.Place
	for _, p := range spots {
		if p.Visits > 1 {
			repeat = append(repeat, p)
		}
	}
	if len(repeat) > 0 {
		b.WriteString("\n### Places you returned to\n\n")
		for _, p := range repeat {
			fmt.Fprintf(&b, "- %s (%s): %d visits, %s", p.Name, p.Type, p.Visits, formatMinutes(p.Minutes))
			if p.Sentiment != nil {
				fmt.Fprintf(&b, ", mood %.2f", *p.Sentiment)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func activitySection(p lifedata.PhysicalReport, days int) string {
	var b strings.Builder
	b.WriteString("## Activity\n\n")
	if days == 0 {
		b.WriteString("No activity data was recorded.")
		return b.String()
	}

	fmt.Fprintf(&b, "- **Steps:** %s total, %s per day\n",
		humanize.Comma(int64(p.TotalSteps)), humanize.Comma(int64(p.AverageDailySteps)))
	fmt.Fprintf(&b, "- **Active minutes:** %s\n", humanize.Comma(int64(p.ActiveMinutes)))
	fmt.Fprintf(&b, "- **Calories burned:** %s\n", humanize.Comma(int64(p.CaloriesBurned)))
	fmt.Fprintf(&b, "- **Sleep:** %s hours per night (%s)", humanize.Ftoa(p.SleepHours), p.SleepQuality)
	return b.String()
}

func moodSection(s lifedata.SentimentReport) string {
	var b strings.Builder
	b.WriteString("## Mood\n\n")
	b.WriteString(s.Summary)
	fmt.Fprintf(&b, "\n\n- **Overall score:** %.2f (%s)\n", s.OverallScore, sentiment.Band(s.OverallScore, sentiment.NarrativeCuts))

	if len(s.ByPlatform) > 0 {
		b.WriteString("\n| Platform | Score |\n|---|---|\n")
		for _, k := range lifedata.SortedKeys(s.ByPlatform) {
			fmt.Fprintf(&b, "| %s | %.2f |\n", k, s.ByPlatform[k])
		}
	}
	if len(s.ByLocation) > 0 {
		b.WriteString("\n| Place type | Score |\n|---|---|\n")
		for _, k := range lifedata.SortedKeys(s.ByLocation) {
			fmt.Fprintf(&b, "| %s | %.2f |\n", k, s.ByLocation[k])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func insightsSection(insights []lifedata.Insight) string {
	var b strings.Builder
	b.WriteString("## Insights\n")
	for _, in := range insights {
		fmt.Fprintf(&b, "\n- **%s** (%.2f): %s", in.Title, in.Score, in.Description)
	}
	return b.String()
}

func formatMinutes(m int) string {
	h, rest := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, rest)
	}
}

func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= excerptLength {
		return s
	}
	return strings.TrimSpace(string(r[:excerptLength])) + "..."
}
