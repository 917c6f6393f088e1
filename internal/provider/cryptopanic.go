package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coinpulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	cryptoPanicBaseURL   = "https://cryptopanic.com"
	cryptoPanicSource    = "CryptoPanic"
	defaultCryptoPanicTk = "free"
	defaultPostItems     = 25
)

// CryptoPanicProvider reads the public currency-filtered post feed.
type CryptoPanicProvider struct {
	client  *http.Client
	baseURL string
	token   string
	tracer  trace.Tracer
	now     func() time.Time
}

func NewCryptoPanicProvider(tracer trace.Tracer, token string) *CryptoPanicProvider {
	token = strings.TrimSpace(token)
	if token == "" {
		token = defaultCryptoPanicTk
	}
	return &CryptoPanicProvider{
		client:  newHTTPClient(20 * time.Second),
		baseURL: cryptoPanicBaseURL,
		token:   token,
		tracer:  tracer,
		now:     time.Now,
	}
}

func (p *CryptoPanicProvider) FetchPosts(ctx context.Context, symbol string, limit int) ([]domain.NewsRecord, error) {
	ctx, span := p.tracer.Start(ctx, "cryptopanic.fetch-posts")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("currency symbol is required")
	}
	if limit <= 0 {
		limit = defaultPostItems
	}
	span.SetAttributes(attribute.String("symbol", symbol))

	params := url.Values{}
	params.Set("auth_token", p.token)
	params.Set("currencies", symbol)
	params.Set("public", "true")
	u := strings.TrimRight(p.baseURL, "/") + "/api/free/v1/posts/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("cryptopanic API error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			PublishedAt string `json:"published_at"`
			CreatedAt   string `json:"created_at"`
			Source      *struct {
				Title  string `json:"title"`
				Domain string `json:"domain"`
			} `json:"source"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode cryptopanic response: %w", err)
	}

	now := p.now().UTC()
	records := make([]domain.NewsRecord, 0, min(limit, len(payload.Results)))
	for _, row := range payload.Results {
		if len(records) >= limit {
			break
		}
		title := sanitizeText(row.Title, 0)
		link := strings.TrimSpace(row.URL)
		if title == "" || link == "" {
			continue
		}
		source := cryptoPanicSource
		if row.Source != nil && strings.TrimSpace(row.Source.Title) != "" {
			source = sanitizeText(row.Source.Title, 120)
		}
		snippet := sanitizeText(stripHTML(row.Description), 0)
		if snippet == "" {
			snippet = title
		}
		publishedAt := parseFeedTime(row.PublishedAt)
		if publishedAt.IsZero() {
			publishedAt = parseFeedTime(row.CreatedAt)
		}
		if publishedAt.IsZero() {
			publishedAt = now
		}
		records = append(records, domain.NewsRecord{
			Title:       title,
			URL:         link,
			Source:      source,
			PublishedAt: publishedAt,
			Snippet:     snippet,
		})
	}

	return records, nil
}
