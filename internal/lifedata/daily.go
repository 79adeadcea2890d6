package lifedata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

// DailySummary writes a one-paragraph recap of a single day. Activity and
// mood are optional; their clauses fall back to fixed sentences or are left
// empty, and the clause layout is kept even when a clause is empty.
func DailySummary(date time.Time, posts []SocialPost, locations []LocationVisit, activity *ActivityDay, mood *SentimentReport) string {
	social := "No social activity was recorded today."
	if len(posts) > 0 {
		platforms := newOrderedSet()
		for _, p := range posts {
			platforms.add(string(p.Platform))
		}
		social = fmt.Sprintf("You had %d social interactions across %d platforms.", len(posts), len(platforms.items))
	}

	place := "No location data was recorded today."
	if len(locations) > 0 {
		types := newOrderedSet()
		for _, l := range locations {
			types.add(string(l.Type))
		}
		place = fmt.Sprintf("You visited %d locations, including %s.", len(locations), strings.Join(types.items, ", "))
	}

	act := "No activity data was recorded today."
	var sleep string
	if activity != nil {
		act = fmt.Sprintf("You took %s steps, burned %s calories, and were active for %d minutes.",
			humanize.Comma(int64(activity.Steps)),
			humanize.Comma(int64(activity.Calories)),
			activity.ActiveMinutes)
		sleep = fmt.Sprintf("You slept for %s hours.", strconv.FormatFloat(activity.Sleep, 'f', -1, 64))
	}

	var moodLine string
	if mood != nil {
		moodLine = fmt.Sprintf("Your overall mood was %s.", moodBand(mood.OverallScore))
	}

	return fmt.Sprintf("%s, %s: %s %s %s %s %s",
		date.Format("Monday"), date.Format("January 2"),
		social, place, act, sleep, moodLine)
}

// moodBand treats a zero or NaN score as missing.
func moodBand(score float64) string {
	if score == 0 || math.IsNaN(score) {
		return "unavailable"
	}
	return sentiment.Band(score, sentiment.DailyCuts)
}
