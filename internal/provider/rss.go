package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"coinpulse/internal/domain"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	rssTitleMaxLen   = 200
	rssSnippetMaxLen = 300
	defaultFeedItems = 15
)

// RSSProvider reads a fixed RSS/Atom feed and normalizes its items.
type RSSProvider struct {
	client *http.Client
	tracer trace.Tracer
	now    func() time.Time
}

func NewRSSProvider(tracer trace.Tracer) *RSSProvider {
	return &RSSProvider{
		client: newHTTPClient(20 * time.Second),
		tracer: tracer,
		now:    time.Now,
	}
}

// FetchFeed returns up to maxItems records from feedURL, each labelled with source.
func (p *RSSProvider) FetchFeed(ctx context.Context, feedURL, source string, maxItems int) ([]domain.NewsRecord, error) {
	ctx, span := p.tracer.Start(ctx, "rss.fetch-feed")
	defer span.End()

	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, fmt.Errorf("feed url is required")
	}
	if maxItems <= 0 {
		maxItems = defaultFeedItems
	}
	span.SetAttributes(attribute.String("feed.url", feedURL))

	feed, err := fetchFeed(ctx, p.client, feedURL)
	if err != nil {
		return nil, err
	}
	return feedToRecords(feed, source, maxItems, p.now().UTC()), nil
}

func fetchFeed(ctx context.Context, client *http.Client, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rss fetch error %d: %s", resp.StatusCode, string(body))
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode rss payload: %w", err)
	}
	return feed, nil
}

func feedToRecords(feed *gofeed.Feed, source string, maxItems int, now time.Time) []domain.NewsRecord {
	if feed == nil {
		return nil
	}
	records := make([]domain.NewsRecord, 0, min(maxItems, len(feed.Items)))
	for _, item := range feed.Items {
		if len(records) >= maxItems {
			break
		}
		if item == nil {
			continue
		}
		title := sanitizeText(stripHTML(item.Title), rssTitleMaxLen)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		snippet := sanitizeText(stripHTML(item.Description), rssSnippetMaxLen)
		if snippet == "" {
			snippet = sanitizeText(title, rssSnippetMaxLen)
		}
		publishedAt := now
		if item.PublishedParsed != nil && !item.PublishedParsed.IsZero() {
			publishedAt = item.PublishedParsed.UTC()
		} else if t := parseFeedTime(item.Published); !t.IsZero() {
			publishedAt = t
		}
		records = append(records, domain.NewsRecord{
			Title:       title,
			URL:         link,
			Source:      source,
			PublishedAt: publishedAt,
			Snippet:     snippet,
		})
	}
	return records
}
