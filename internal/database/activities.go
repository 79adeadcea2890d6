package database

import (
	"fmt"

	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// UpsertActivity stores a day of activity, replacing an earlier record for
// the same period and date.
func (db *DB) UpsertActivity(periodID string, a lifedata.ActivityDay) error {
	return upsertActivity(db.conn, periodID, a)
}

func upsertActivity(ex execer, periodID string, a lifedata.ActivityDay) error {
	_, err := ex.Exec(
		`INSERT INTO activities (period_id, date, steps, calories, sleep, active_minutes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(period_id, date) DO UPDATE SET
			steps = excluded.steps,
			calories = excluded.calories,
			sleep = excluded.sleep,
			active_minutes = excluded.active_minutes`,
		periodID, a.Date, a.Steps, a.Calories, a.Sleep, a.ActiveMinutes,
	)
	if err != nil {
		return fmt.Errorf("upserting activity %s: %w", a.Date, err)
	}
	return nil
}

// GetActivitiesForPeriod returns the activity days of a period in the
// order they were first stored.
func (db *DB) GetActivitiesForPeriod(periodID string) ([]Activity, error) {
	rows, err := db.conn.Query(
		`SELECT period_id, date, steps, calories, sleep, active_minutes
		FROM activities WHERE period_id = ? ORDER BY rowid`, periodID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.PeriodID, &a.Date, &a.Steps, &a.Calories, &a.Sleep, &a.ActiveMinutes); err != nil {
			return nil, err
		}
		days = append(days, a)
	}
	return days, rows.Err()
}

// ActivityDays strips storage fields.
func ActivityDays(days []Activity) []lifedata.ActivityDay {
	out := make([]lifedata.ActivityDay, len(days))
	for i, d := range days {
		out[i] = d.ActivityDay
	}
	return out
}
