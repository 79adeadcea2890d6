package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id TEXT NOT NULL,
    platform TEXT NOT NULL,
    author_name TEXT NOT NULL,
    author_handle TEXT,
    author_avatar TEXT,
    content TEXT,
    timestamp TEXT,
    likes INTEGER,
    comments INTEGER,
    shares INTEGER,
    sentiment_score REAL,
    sentiment_label TEXT,
    link TEXT,
    content_fetched INTEGER DEFAULT 0,
    period_id TEXT NOT NULL,
    collected_at TEXT DEFAULT (datetime('now')),
    UNIQUE (post_id, period_id)
);

CREATE TABLE IF NOT EXISTS locations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    visit_id TEXT,
    period_id TEXT NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    address TEXT,
    time TEXT,
    duration TEXT,
    lat REAL NOT NULL DEFAULT 0,
    lng REAL NOT NULL DEFAULT 0,
    sentiment_score REAL
);

CREATE TABLE IF NOT EXISTS activities (
    period_id TEXT NOT NULL,
    date TEXT NOT NULL,
    steps INTEGER DEFAULT 0,
    calories INTEGER DEFAULT 0,
    sleep REAL DEFAULT 0,
    active_minutes INTEGER DEFAULT 0,
    PRIMARY KEY (period_id, date)
);

CREATE TABLE IF NOT EXISTS reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    period_id TEXT UNIQUE NOT NULL,
    body_markdown TEXT NOT NULL,
    data_json TEXT NOT NULL,
    post_count INTEGER DEFAULT 0,
    location_count INTEGER DEFAULT 0,
    activity_count INTEGER DEFAULT 0,
    generated_at TEXT DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_posts_period ON posts(period_id);
CREATE INDEX IF NOT EXISTS idx_posts_post_id ON posts(post_id);
CREATE INDEX IF NOT EXISTS idx_locations_period ON locations(period_id);
CREATE INDEX IF NOT EXISTS idx_reports_period ON reports(period_id);
`)
			return err
		},
	},
	{
		Version:     2,
		Description: "location visit emotions",
		Up: func(tx *sql.Tx) error {
			cols := []struct{ name, ddl string }{
				{"emotion_primary", "ALTER TABLE locations ADD COLUMN emotion_primary TEXT"},
				{"emotion_intensity", "ALTER TABLE locations ADD COLUMN emotion_intensity REAL"},
				{"emotion_note", "ALTER TABLE locations ADD COLUMN emotion_note TEXT"},
			}
			for _, c := range cols {
				exists, err := columnExists(tx, "locations", c.name)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				if _, err := tx.Exec(c.ddl); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
