package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/TobiSchelling/lifelens/internal/lifedata"
	"github.com/TobiSchelling/lifelens/internal/sentiment"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

const postColumns = `id, post_id, platform, author_name, author_handle, author_avatar,
	content, timestamp, likes, comments, shares, sentiment_score, sentiment_label,
	link, content_fetched, period_id, collected_at`

// InsertPost stores a post. It reports false when a post with the same ID
// already exists in the period.
func (db *DB) InsertPost(p Post) (bool, error) {
	return insertPost(db.conn, p)
}

func insertPost(ex execer, p Post) (bool, error) {
	if p.ID == "" {
		return false, errors.New("post has no id")
	}
	if p.PeriodID == "" {
		return false, errors.New("post has no period")
	}

	var likes, comments, shares sql.NullInt64
	if m := p.Metrics; m != nil {
		likes = sql.NullInt64{Int64: int64(m.Likes), Valid: true}
		comments = sql.NullInt64{Int64: int64(m.Comments), Valid: true}
		shares = sql.NullInt64{Int64: int64(m.Shares), Valid: true}
	}
	var score sql.NullFloat64
	var label sql.NullString
	if s := p.Sentiment; s != nil {
		score = sql.NullFloat64{Float64: s.Score, Valid: true}
		label = sql.NullString{String: string(s.Label), Valid: true}
	}

	result, err := ex.Exec(
		`INSERT OR IGNORE INTO posts
		(post_id, platform, author_name, author_handle, author_avatar, content, timestamp,
		 likes, comments, shares, sentiment_score, sentiment_label, link, content_fetched, period_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, string(p.Platform), p.Author.Name, p.Author.Handle, p.Author.Avatar, p.Content, p.Timestamp,
		likes, comments, shares, score, label, p.Link, boolInt(p.ContentFetched), p.PeriodID,
	)
	if err != nil {
		return false, fmt.Errorf("inserting post %s: %w", p.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HasPost reports whether a post with the given ID is stored in any period.
func (db *DB) HasPost(postID string) (bool, error) {
	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM posts WHERE post_id = ?", postID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetPostsForPeriod returns the posts of a period in the order they were stored.
func (db *DB) GetPostsForPeriod(periodID string) ([]Post, error) {
	rows, err := db.conn.Query(
		"SELECT "+postColumns+" FROM posts WHERE period_id = ? ORDER BY id", periodID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// GetPostsNeedingFetch returns posts with a link but no content that haven't
// been fetched yet.
func (db *DB) GetPostsNeedingFetch(periodID *string) ([]Post, error) {
	query := "SELECT " + postColumns + ` FROM posts
		WHERE (content IS NULL OR content = '') AND link IS NOT NULL AND link != ''
		AND content_fetched = 0`
	var args []any
	if periodID != nil {
		query += " AND period_id = ?"
		args = append(args, *periodID)
	}
	query += " ORDER BY id"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// GetPostByRowID returns a single post.
func (db *DB) GetPostByRowID(rowID int64) (*Post, error) {
	rows, err := db.conn.Query("SELECT "+postColumns+" FROM posts WHERE id = ?", rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return &posts[0], nil
}

// UpdatePostContent stores fetched content and the sentiment recomputed
// from it.
func (db *DB) UpdatePostContent(rowID int64, content string, s *lifedata.PostSentiment) error {
	var score sql.NullFloat64
	var label sql.NullString
	if s != nil {
		score = sql.NullFloat64{Float64: s.Score, Valid: true}
		label = sql.NullString{String: string(s.Label), Valid: true}
	}
	_, err := db.conn.Exec(
		`UPDATE posts SET content = ?, sentiment_score = ?, sentiment_label = ?, content_fetched = 1
		WHERE id = ?`,
		content, score, label, rowID,
	)
	return err
}

// MarkPostFetchAttempted marks that we tried to fetch content.
func (db *DB) MarkPostFetchAttempted(rowID int64) error {
	_, err := db.conn.Exec("UPDATE posts SET content_fetched = 1 WHERE id = ?", rowID)
	return err
}

func scanPosts(rows *sql.Rows) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		var (
			p                       Post
			platform                string
			handle, avatar, content sql.NullString
			timestamp, link, label  sql.NullString
			likes, comments, shares sql.NullInt64
			score                   sql.NullFloat64
			fetched                 int
		)
		if err := rows.Scan(&p.RowID, &p.ID, &platform, &p.Author.Name, &handle, &avatar,
			&content, &timestamp, &likes, &comments, &shares, &score, &label,
			&link, &fetched, &p.PeriodID, &p.CollectedAt); err != nil {
			return nil, err
		}
		p.Platform = lifedata.Platform(platform)
		p.Author.Handle = handle.String
		p.Author.Avatar = avatar.String
		p.Content = content.String
		p.Timestamp = timestamp.String
		p.Link = link.String
		p.ContentFetched = fetched != 0
		if likes.Valid || comments.Valid || shares.Valid {
			p.Metrics = &lifedata.Engagement{
				Likes:    int(likes.Int64),
				Comments: int(comments.Int64),
				Shares:   int(shares.Int64),
			}
		}
		if score.Valid {
			p.Sentiment = &lifedata.PostSentiment{
				Score: score.Float64,
				Label: sentiment.Label(label.String),
			}
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// SocialPosts strips storage fields.
func SocialPosts(posts []Post) []lifedata.SocialPost {
	out := make([]lifedata.SocialPost, len(posts))
	for i, p := range posts {
		out[i] = p.SocialPost
	}
	return out
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
