package database

import (
	"encoding/json"
	"fmt"

	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// Post is a stored social post. The embedded ID is unique per period; RowID
// is the storage key.
type Post struct {
	lifedata.SocialPost
	RowID          int64
	PeriodID       string
	ContentFetched bool
	CollectedAt    *string
}

// Location is a stored location visit. RowID orders visits of a period in
// the order they were recorded.
type Location struct {
	lifedata.LocationVisit
	RowID    int64
	PeriodID string
}

// Activity is one stored day of activity metrics.
type Activity struct {
	lifedata.ActivityDay
	PeriodID string
}

// Report is a composed report for a period.
type Report struct {
	ID            int64
	PeriodID      string
	BodyMarkdown  string
	DataJSON      string
	PostCount     int
	LocationCount int
	ActivityCount int
	GeneratedAt   *string
}

// Data decodes the stored aggregation.
func (r *Report) Data() (*lifedata.ProcessedLifeData, error) {
	var d lifedata.ProcessedLifeData
	if err := json.Unmarshal([]byte(r.DataJSON), &d); err != nil {
		return nil, fmt.Errorf("decoding report data: %w", err)
	}
	return &d, nil
}

// ImportResult counts what ImportDataset wrote.
type ImportResult struct {
	Posts      int
	Duplicates int
	Locations  int
	Activities int
}

// Stats contains aggregate database statistics.
type Stats struct {
	TotalPosts      int
	PostsWithLinks  int
	FetchedPosts    int
	Locations       int
	ActivityDays    int
	PeriodsWithData int
	Reports         int
}
