package collect

import (
	"context"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

const maxPerFeed = 20

// FeedEntry is a feed item turned into a social post.
type FeedEntry struct {
	Post      lifedata.SocialPost
	Published time.Time // zero when the feed gives no date
	Source    string
}

// FeedConfig represents a single feed configuration.
type FeedConfig struct {
	URL      string
	Name     string
	Platform lifedata.Platform
	Author   string
}

// FeedParser parses RSS/Atom feeds.
type FeedParser struct {
	feeds  []FeedConfig
	parser *gofeed.Parser
	logger *zap.Logger
	now    func() time.Time
}

// NewFeedParser creates a new FeedParser.
func NewFeedParser(feeds []FeedConfig, logger *zap.Logger) *FeedParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedParser{
		feeds:  feeds,
		parser: gofeed.NewParser(),
		logger: logger,
		now:    time.Now,
	}
}

// ParseAll parses all configured feeds and returns entries within daysBack.
// A feed that fails is logged and skipped.
func (fp *FeedParser) ParseAll(ctx context.Context, daysBack int) []FeedEntry {
	cutoff := fp.now().AddDate(0, 0, -daysBack)
	var all []FeedEntry

	for _, fc := range fp.feeds {
		if fc.Name == "" {
			fc.Name = extractSourceName(fc.URL)
		}

		entries, err := fp.parseFeed(ctx, fc, cutoff)
		if err != nil {
			fp.logger.Warn("failed to parse feed", zap.String("url", fc.URL), zap.Error(err))
			continue
		}
		all = append(all, entries...)
		fp.logger.Info("parsed feed",
			zap.String("source", fc.Name),
			zap.Int("entries", len(entries)),
			zap.Int("days_back", daysBack))
	}

	return all
}

func (fp *FeedParser) parseFeed(ctx context.Context, fc FeedConfig, cutoff time.Time) ([]FeedEntry, error) {
	feed, err := fp.parser.ParseURLWithContext(fc.URL, ctx)
	if err != nil {
		return nil, err
	}

	var entries []FeedEntry
	for _, item := range feed.Items {
		if len(entries) >= maxPerFeed {
			break
		}

		entry := parseItem(item, fc)
		if entry == nil {
			continue
		}
		if entry.Published.IsZero() || !entry.Published.Before(cutoff) {
			entries = append(entries, *entry)
		}
	}

	return entries, nil
}

func parseItem(item *gofeed.Item, fc FeedConfig) *FeedEntry {
	link := item.Link
	if link == "" {
		link = item.GUID
	}
	if link == "" {
		return nil
	}

	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}
	content := htmlToText(body, link)
	if content == "" {
		content = strings.TrimSpace(item.Title)
	}

	author := lifedata.Author{Name: fc.Author}
	if item.Author != nil && item.Author.Name != "" {
		author.Name = item.Author.Name
		author.Handle = item.Author.Email
	}
	if item.Image != nil {
		author.Avatar = item.Image.URL
	}

	post := lifedata.SocialPost{
		ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String(),
		Platform: fc.Platform,
		Author:   author,
		Content:  content,
		Link:     link,
	}
	if !published.IsZero() {
		post.Timestamp = published.Format(time.RFC3339)
	}
	if content != "" {
		post.Sentiment = lifedata.ScorePost(content)
	}

	return &FeedEntry{Post: post, Published: published, Source: fc.Name}
}

// htmlToText reduces an item body to plain text. Readability handles full
// documents; short fragments fall back to tag stripping.
func htmlToText(body, pageURL string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if !strings.Contains(body, "<") {
		return strings.Join(strings.Fields(body), " ")
	}

	u, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(body), u)
	if err == nil {
		if text := strings.Join(strings.Fields(article.TextContent), " "); text != "" {
			return text
		}
	}
	return stripHTML(body)
}

func stripHTML(text string) string {
	var result strings.Builder
	inTag := false
	for _, r := range text {
		if r == '<' {
			inTag = true
			result.WriteRune(' ')
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}

	s := result.String()
	s = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	).Replace(s)

	return strings.Join(strings.Fields(s), " ")
}

func extractSourceName(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Hostname() == "" {
		return feedURL
	}
	host := strings.ToLower(u.Hostname())

	for _, prefix := range []string{"www.", "blog.", "blogs.", "rss.", "feeds."} {
		host = strings.TrimPrefix(host, prefix)
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		name := parts[len(parts)-2]
		return strings.ToUpper(name[:1]) + name[1:]
	}
	return strings.ToUpper(host[:1]) + host[1:]
}
