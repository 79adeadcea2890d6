package database

import (
	"database/sql"
	"errors"
)

// InsertReport inserts or replaces the report for a period.
func (db *DB) InsertReport(r Report) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT OR REPLACE INTO reports
		(period_id, body_markdown, data_json, post_count, location_count, activity_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.PeriodID, r.BodyMarkdown, r.DataJSON, r.PostCount, r.LocationCount, r.ActivityCount,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const reportColumns = `id, period_id, body_markdown, data_json, post_count, location_count,
	activity_count, generated_at`

// GetReport returns the report for a period, or ErrNotFound.
func (db *DB) GetReport(periodID string) (*Report, error) {
	row := db.conn.QueryRow("SELECT "+reportColumns+" FROM reports WHERE period_id = ?", periodID)

	var r Report
	if err := row.Scan(&r.ID, &r.PeriodID, &r.BodyMarkdown, &r.DataJSON,
		&r.PostCount, &r.LocationCount, &r.ActivityCount, &r.GeneratedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// GetAllReports returns all reports ordered by period_id DESC.
func (db *DB) GetAllReports() ([]Report, error) {
	rows, err := db.conn.Query("SELECT " + reportColumns + " FROM reports ORDER BY period_id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.PeriodID, &r.BodyMarkdown, &r.DataJSON,
			&r.PostCount, &r.LocationCount, &r.ActivityCount, &r.GeneratedAt); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// GetLastRunDate returns the end date of the most recent report.
// Returns empty string if no reports exist.
func (db *DB) GetLastRunDate() (string, error) {
	row := db.conn.QueryRow("SELECT period_id FROM reports ORDER BY period_id DESC LIMIT 1")

	var periodID string
	if err := row.Scan(&periodID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return PeriodEndDate(periodID), nil
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM posts", &s.TotalPosts},
		{"SELECT COUNT(*) FROM posts WHERE link IS NOT NULL AND link != ''", &s.PostsWithLinks},
		{"SELECT COUNT(*) FROM posts WHERE content_fetched = 1", &s.FetchedPosts},
		{"SELECT COUNT(*) FROM locations", &s.Locations},
		{"SELECT COUNT(*) FROM activities", &s.ActivityDays},
		{`SELECT COUNT(*) FROM (
			SELECT period_id FROM posts
			UNION SELECT period_id FROM locations
			UNION SELECT period_id FROM activities)`, &s.PeriodsWithData},
		{"SELECT COUNT(*) FROM reports", &s.Reports},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}
