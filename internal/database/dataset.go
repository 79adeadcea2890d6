package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// ImportDataset writes a dataset into a period in one transaction. Posts are
// added unless already present; the period's locations are replaced, since a
// visit has no identity of its own; activity days are upserted by date.
func (db *DB) ImportDataset(periodID string, ds lifedata.Dataset) (*ImportResult, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	res := &ImportResult{}
	for _, sp := range ds.Posts {
		if sp.ID == "" {
			sp.ID = DerivePostID(sp)
		}
		inserted, err := insertPost(tx, Post{SocialPost: sp, PeriodID: periodID})
		if err != nil {
			return nil, err
		}
		if inserted {
			res.Posts++
		} else {
			res.Duplicates++
		}
	}

	if len(ds.Locations) > 0 {
		if _, err := tx.Exec("DELETE FROM locations WHERE period_id = ?", periodID); err != nil {
			return nil, fmt.Errorf("clearing locations: %w", err)
		}
	}
	for _, v := range ds.Locations {
		if _, err := insertLocation(tx, periodID, v); err != nil {
			return nil, err
		}
		res.Locations++
	}

	for _, a := range ds.Activities {
		if err := upsertActivity(tx, periodID, a); err != nil {
			return nil, err
		}
		res.Activities++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	db.logger.Debug("imported dataset",
		zap.String("period", periodID),
		zap.Int("posts", res.Posts),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("locations", res.Locations),
		zap.Int("activities", res.Activities))
	return res, nil
}

// DerivePostID builds a stable id for a post that arrived without one, so
// importing the same file twice does not duplicate it.
func DerivePostID(p lifedata.SocialPost) string {
	key := strings.Join([]string{string(p.Platform), p.Author.Name, p.Timestamp, p.Content}, "\x00")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
