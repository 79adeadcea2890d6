package database

import (
	"database/sql"
	"fmt"

	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// InsertLocation appends a visit to a period and returns its row id.
func (db *DB) InsertLocation(periodID string, v lifedata.LocationVisit) (int64, error) {
	return insertLocation(db.conn, periodID, v)
}

func insertLocation(ex execer, periodID string, v lifedata.LocationVisit) (int64, error) {
	var score sql.NullFloat64
	if v.SentimentScore != nil {
		score = sql.NullFloat64{Float64: *v.SentimentScore, Valid: true}
	}
	var primary, note sql.NullString
	var intensity sql.NullFloat64
	if e := v.Emotion; e != nil {
		primary = sql.NullString{String: e.Primary, Valid: true}
		intensity = sql.NullFloat64{Float64: e.Intensity, Valid: true}
		note = sql.NullString{String: e.Note, Valid: e.Note != ""}
	}

	result, err := ex.Exec(
		`INSERT INTO locations
		(visit_id, period_id, name, type, address, time, duration, lat, lng, sentiment_score,
		 emotion_primary, emotion_intensity, emotion_note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, periodID, v.Name, string(v.Type), v.Address, v.Time, v.Duration,
		v.Coordinates.Lat, v.Coordinates.Lng, score, primary, intensity, note,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting location %q: %w", v.Name, err)
	}
	return result.LastInsertId()
}

// GetLocationsForPeriod returns the visits of a period in the order they
// were recorded. Duration fallbacks depend on that order.
func (db *DB) GetLocationsForPeriod(periodID string) ([]Location, error) {
	rows, err := db.conn.Query(
		`SELECT id, visit_id, period_id, name, type, address, time, duration, lat, lng,
		sentiment_score, emotion_primary, emotion_intensity, emotion_note
		FROM locations WHERE period_id = ? ORDER BY id`, periodID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []Location
	for rows.Next() {
		var (
			l                   Location
			typ                 string
			visitID, address    sql.NullString
			visitTime, duration sql.NullString
			primary, note       sql.NullString
			score, intensity    sql.NullFloat64
		)
		if err := rows.Scan(&l.RowID, &visitID, &l.PeriodID, &l.Name, &typ, &address,
			&visitTime, &duration, &l.Coordinates.Lat, &l.Coordinates.Lng,
			&score, &primary, &intensity, &note); err != nil {
			return nil, err
		}
		l.ID = visitID.String
		l.Type = lifedata.LocationType(typ)
		l.Address = address.String
		l.Time = visitTime.String
		l.Duration = duration.String
		if score.Valid {
			s := score.Float64
			l.SentimentScore = &s
		}
		if primary.Valid {
			l.Emotion = &lifedata.VisitEmotion{
				Primary:   primary.String,
				Intensity: intensity.Float64,
				Note:      note.String,
			}
		}
		locs = append(locs, l)
	}
	return locs, rows.Err()
}

// DeleteLocationsForPeriod removes every visit of a period.
func (db *DB) DeleteLocationsForPeriod(periodID string) error {
	_, err := db.conn.Exec("DELETE FROM locations WHERE period_id = ?", periodID)
	return err
}

// LocationVisits strips storage fields.
func LocationVisits(locs []Location) []lifedata.LocationVisit {
	out := make([]lifedata.LocationVisit, len(locs))
	for i, l := range locs {
		out[i] = l.LocationVisit
	}
	return out
}
