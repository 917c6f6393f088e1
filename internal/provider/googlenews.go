package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinpulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleNewsBaseURL  = "https://news.google.com"
	googleNewsSource   = "Google News"
	defaultSearchItems = 20
)

// GoogleNewsProvider runs a site search against the Google News RSS endpoint.
type GoogleNewsProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	now     func() time.Time
}

func NewGoogleNewsProvider(tracer trace.Tracer) *GoogleNewsProvider {
	return &GoogleNewsProvider{
		client:  newHTTPClient(20 * time.Second),
		baseURL: googleNewsBaseURL,
		tracer:  tracer,
		now:     time.Now,
	}
}

func (p *GoogleNewsProvider) Search(ctx context.Context, query string, limit int) ([]domain.NewsRecord, error) {
	ctx, span := p.tracer.Start(ctx, "googlenews.search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = defaultSearchItems
	}
	span.SetAttributes(attribute.String("search.query", query))

	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en-US")
	params.Set("gl", "US")
	params.Set("ceid", "US:en")
	u := strings.TrimRight(p.baseURL, "/") + "/rss/search?" + params.Encode()

	feed, err := fetchFeed(ctx, p.client, u)
	if err != nil {
		return nil, fmt.Errorf("google news search: %w", err)
	}
	return feedToRecords(feed, googleNewsSource, limit, p.now().UTC()), nil
}
