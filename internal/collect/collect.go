// Package collect imports posts from configured RSS and Atom feeds.
package collect

import (
	"context"

	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/config"
	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// Result holds the results of a collection run.
type Result struct {
	TotalFound int
	NewPosts   int
	Duplicates int
	Sources    map[string]int
}

// Collector stores feed entries as posts of a period.
type Collector struct {
	db         *database.DB
	feedParser *FeedParser
	daysBack   int
	logger     *zap.Logger
}

// NewCollector creates a new post collector.
func NewCollector(cfg *config.Config, db *database.DB, daysBack int, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Collector{
		db:       db,
		daysBack: daysBack,
		logger:   logger,
	}

	if len(cfg.Sources.Feeds) > 0 {
		feeds := make([]FeedConfig, len(cfg.Sources.Feeds))
		for i, f := range cfg.Sources.Feeds {
			feeds[i] = FeedConfig{
				URL:      f.URL,
				Name:     f.Name,
				Platform: lifedata.Platform(f.Platform),
				Author:   f.Author,
			}
		}
		c.feedParser = NewFeedParser(feeds, logger)
	}

	return c
}

// Collect collects posts from all configured feeds into periodID. A post
// already stored in any period counts as a duplicate.
func (c *Collector) Collect(ctx context.Context, periodID string) (*Result, error) {
	r := &Result{Sources: make(map[string]int)}
	if c.feedParser == nil {
		c.logger.Info("no feeds configured")
		return r, nil
	}

	entries := c.feedParser.ParseAll(ctx, c.daysBack)
	r.TotalFound = len(entries)

	for _, entry := range entries {
		seen, err := c.db.HasPost(entry.Post.ID)
		if err != nil {
			return r, err
		}
		if seen {
			r.Duplicates++
			continue
		}

		inserted, err := c.db.InsertPost(database.Post{SocialPost: entry.Post, PeriodID: periodID})
		if err != nil {
			return r, err
		}
		if inserted {
			r.NewPosts++
			r.Sources[entry.Source]++
		} else {
			r.Duplicates++
		}
	}

	c.logger.Info("collection complete",
		zap.Int("found", r.TotalFound),
		zap.Int("new", r.NewPosts),
		zap.Int("duplicates", r.Duplicates))
	return r, nil
}
