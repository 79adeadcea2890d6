// Package lifedata combines social posts, location visits and daily activity
// into the dashboard's sub-reports, day recaps and correlation insights.
package lifedata

import (
	"time"

	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

// Platform identifies where a social post came from.
type Platform string

const (
	Twitter   Platform = "twitter"
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	LinkedIn  Platform = "linkedin"
	Email     Platform = "email"
)

// LocationType classifies a visited place. The set is open; these are the
// types the dashboard knows how to draw.
type LocationType string

const (
	Home     LocationType = "home"
	Work     LocationType = "work"
	School   LocationType = "school"
	Food     LocationType = "food"
	Park     LocationType = "park"
	Transit  LocationType = "transit"
	Hospital LocationType = "hospital"
	Shopping LocationType = "shopping"
	Gym      LocationType = "gym"
	Other    LocationType = "other"
)

// Author is the identity behind a post.
type Author struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Handle string `json:"handle,omitempty" yaml:"handle,omitempty"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}

// Engagement holds the reaction counters of a post.
type Engagement struct {
	Likes    int `json:"likes" yaml:"likes" validate:"min=0"`
	Comments int `json:"comments" yaml:"comments" validate:"min=0"`
	Shares   int `json:"shares" yaml:"shares" validate:"min=0"`
}

// Score weighs the counters: comments count double and shares triple.
func (e *Engagement) Score() int {
	if e == nil {
		return 0
	}
	return e.Likes + 2*e.Comments + 3*e.Shares
}

// PostSentiment is a sentiment attached to a post upstream.
type PostSentiment struct {
	Score float64         `json:"score" yaml:"score" validate:"min=-1,max=1"`
	Label sentiment.Label `json:"label" yaml:"label" validate:"oneof=positive neutral negative"`
}

// ScorePost analyzes text and returns the sentiment to attach to its post.
func ScorePost(text string) *PostSentiment {
	r := sentiment.Analyze(text)
	return &PostSentiment{Score: r.Score, Label: r.Label}
}

// SocialPost is one post, message or email.
type SocialPost struct {
	ID        string         `json:"id" yaml:"id"`
	Platform  Platform       `json:"platform" yaml:"platform" validate:"oneof=twitter facebook instagram linkedin email"`
	Author    Author         `json:"author" yaml:"author"`
	Content   string         `json:"content" yaml:"content"`
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	Metrics   *Engagement    `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Sentiment *PostSentiment `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Link      string         `json:"link,omitempty" yaml:"link,omitempty" validate:"omitempty,url"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat" validate:"latitude"`
	Lng float64 `json:"lng" yaml:"lng" validate:"longitude"`
}

// VisitEmotion is how the user felt at a place.
type VisitEmotion struct {
	Primary   string  `json:"primary" yaml:"primary" validate:"required"`
	Intensity float64 `json:"intensity" yaml:"intensity" validate:"min=0,max=1"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// LocationVisit is one stop on the day's timeline. Duration is free text
// such as "45 minutes" or "2 hours 10 minutes".
type LocationVisit struct {
	ID             string        `json:"id" yaml:"id"`
	Name           string        `json:"name" yaml:"name" validate:"required"`
	Type           LocationType  `json:"type" yaml:"type" validate:"required"`
	Address        string        `json:"address,omitempty" yaml:"address,omitempty"`
	Time           string        `json:"time,omitempty" yaml:"time,omitempty"`
	Duration       string        `json:"duration,omitempty" yaml:"duration,omitempty"`
	Coordinates    Coordinates   `json:"coordinates" yaml:"coordinates"`
	Emotion        *VisitEmotion `json:"emotion,omitempty" yaml:"emotion,omitempty"`
	SentimentScore *float64      `json:"sentimentScore,omitempty" yaml:"sentimentScore,omitempty" validate:"omitempty,min=-1,max=1"`
}

// ActivityDay is one day of wearable metrics.
type ActivityDay struct {
	Date          string  `json:"date" yaml:"date" validate:"required"`
	Steps         int     `json:"steps" yaml:"steps" validate:"min=0"`
	Calories      int     `json:"calories" yaml:"calories" validate:"min=0"`
	Sleep         float64 `json:"sleep" yaml:"sleep" validate:"min=0,max=24"`
	ActiveMinutes int     `json:"activeMinutes" yaml:"activeMinutes" validate:"min=0"`
}

// Dataset is the import format: everything recorded for one period.
type Dataset struct {
	Posts      []SocialPost    `json:"posts" yaml:"posts" validate:"dive"`
	Locations  []LocationVisit `json:"locations" yaml:"locations" validate:"dive"`
	Activities []ActivityDay   `json:"activities" yaml:"activities" validate:"dive"`
}

// TimeRange bounds the records an aggregation was asked about.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contact is a person and how often they appeared.
type Contact struct {
	Name         string `json:"name"`
	Interactions int    `json:"interactions"`
}

// SocialReport summarises posting activity.
type SocialReport struct {
	TotalInteractions int         `json:"totalInteractions"`
	MostActiveChannel string      `json:"mostActiveChannel"`
	TopContacts       []Contact   `json:"topContacts"`
	MostEngagingPost  *SocialPost `json:"mostEngagingPost"`
}

// LocationReport summarises where time was spent.
type LocationReport struct {
	TotalLocations          int            `json:"totalLocations"`
	TimeSpentByLocationType map[string]int `json:"timeSpentByLocationType"`
	MostVisitedLocationType string         `json:"mostVisitedLocationType"`
	HomeTimePercent         int            `json:"homeTimePercent"`
}

// SleepQuality bands the average nightly sleep.
type SleepQuality string

const (
	SleepGood SleepQuality = "good"
	SleepFair SleepQuality = "fair"
	SleepPoor SleepQuality = "poor"
)

// PhysicalReport summarises wearable metrics.
type PhysicalReport struct {
	TotalSteps        int          `json:"totalSteps"`
	AverageDailySteps int          `json:"averageDailySteps"`
	ActiveMinutes     int          `json:"activeMinutes"`
	CaloriesBurned    int          `json:"caloriesBurned"`
	SleepHours        float64      `json:"sleepHours"`
	SleepQuality      SleepQuality `json:"sleepQuality"`
}

// SentimentReport merges sentiment figures across sources.
type SentimentReport struct {
	OverallScore float64            `json:"overallScore"`
	ByPlatform   map[string]float64 `json:"byPlatform"`
	ByLocation   map[string]float64 `json:"byLocation"`
	ByTimeOfDay  map[string]float64 `json:"byTimeOfDay"`
	Summary      string             `json:"summary"`
}

// ProcessedLifeData is the aggregator's output. It is rebuilt from scratch
// on every call.
type ProcessedLifeData struct {
	Period    TimeRange       `json:"period"`
	Social    SocialReport    `json:"socialActivity"`
	Location  LocationReport  `json:"locationActivity"`
	Physical  PhysicalReport  `json:"physicalActivity"`
	Sentiment SentimentReport `json:"sentimentData"`
}

// Insight states a relationship between two signal categories.
type Insight struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}
