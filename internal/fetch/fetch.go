// Package fetch fills in posts that only carry a link with the readable
// text of the linked page.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// minContentLength is the shortest extracted text worth keeping.
const minContentLength = 100

const maxBodyBytes = 5 << 20

// Result holds the results of a content fetch run.
type Result struct {
	Fetched int
	Failed  int
}

// ContentFetcher fetches page text via HTTP and readability extraction.
type ContentFetcher struct {
	db     *database.DB
	client *http.Client
	logger *zap.Logger
}

// NewContentFetcher creates a new content fetcher.
func NewContentFetcher(db *database.DB, timeout time.Duration, logger *zap.Logger) *ContentFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentFetcher{
		db:     db,
		logger: logger,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// FetchMissingContent fetches content for linked posts that have none and
// rescores them. After an HTTP error status the rest of that domain is
// skipped for this run.
func (f *ContentFetcher) FetchMissingContent(ctx context.Context, periodID *string) (*Result, error) {
	posts, err := f.db.GetPostsNeedingFetch(periodID)
	if err != nil {
		return nil, fmt.Errorf("listing posts needing fetch: %w", err)
	}

	result := &Result{}
	if len(posts) == 0 {
		f.logger.Info("no posts need content fetching")
		return result, nil
	}

	failedDomains := make(map[string]struct{})

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		domain := ""
		if u, err := url.Parse(post.Link); err == nil {
			domain = strings.ToLower(u.Host)
		}

		if _, failed := failedDomains[domain]; failed {
			f.markAttempted(post)
			result.Failed++
			continue
		}

		content, err := f.fetchPageText(ctx, post.Link)
		var statusErr *httpError
		if errors.As(err, &statusErr) {
			f.markAttempted(post)
			result.Failed++
			if domain != "" {
				failedDomains[domain] = struct{}{}
			}
			f.logger.Warn("HTTP error, skipping rest of domain",
				zap.String("url", post.Link),
				zap.String("domain", domain),
				zap.Int("status", statusErr.code))
			continue
		}

		if content == "" {
			f.markAttempted(post)
			result.Failed++
			f.logger.Debug("no extractable content", zap.String("url", post.Link), zap.Error(err))
			continue
		}

		if err := f.db.UpdatePostContent(post.RowID, content, lifedata.ScorePost(content)); err != nil {
			return result, fmt.Errorf("updating post %s: %w", post.ID, err)
		}
		result.Fetched++
		f.logger.Debug("fetched content", zap.String("url", post.Link))
	}

	f.logger.Info("content fetch complete",
		zap.Int("fetched", result.Fetched),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (f *ContentFetcher) markAttempted(post database.Post) {
	if err := f.db.MarkPostFetchAttempted(post.RowID); err != nil {
		f.logger.Warn("marking fetch attempt", zap.String("post", post.ID), zap.Error(err))
	}
}

// fetchPageText returns an *httpError for error statuses. Connection and
// extraction failures yield empty text.
func (f *ContentFetcher) fetchPageText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "lifelens/1.0 (personal dashboard)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &httpError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) > minContentLength {
		return text, nil
	}
	return "", nil
}

type httpError struct {
	code int
}

func (e *httpError) Error() string {
	return http.StatusText(e.code)
}
