package provider

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const outletFeedXML = `<?xml version="1.0"?><rss version="2.0"><channel><title>Outlet</title>
<item><title>ETH adoption rises</title><link>https://news.example/eth</link><description><![CDATA[<p>Ethereum &amp; growth continues</p>]]></description><guid>guid-1</guid><pubDate>Fri, 13 Feb 2026 10:00:00 +0000</pubDate></item>
<item><title></title><link>https://news.example/untitled</link></item>
<item><title>No date here</title><link>https://news.example/nodate</link></item>
<item><title>Third</title><link>https://news.example/third</link></item>
</channel></rss>`

func TestRSSFetchFeed(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewRSSProvider(trace.NewNoopTracerProvider().Tracer("test"))
	p.now = func() time.Time { return fixed }
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "https://news.example/rss" {
			t.Fatalf("unexpected url: %s", req.URL)
		}
		return stringResponse(http.StatusOK, outletFeedXML), nil
	})}

	items, err := p.FetchFeed(context.Background(), "https://news.example/rss", "Outlet", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items (untitled skipped, capped), got %d", len(items))
	}
	item := items[0]
	if item.Source != "Outlet" || item.URL != "https://news.example/eth" {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Snippet != "Ethereum & growth continues" {
		t.Fatalf("expected html stripped snippet, got %q", item.Snippet)
	}
	if !item.PublishedAt.Equal(time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published time: %v", item.PublishedAt)
	}
	if !items[1].PublishedAt.Equal(fixed) {
		t.Fatalf("missing pubDate should default to now, got %v", items[1].PublishedAt)
	}
	if items[1].Snippet != "No date here" {
		t.Fatalf("missing description should fall back to title, got %q", items[1].Snippet)
	}
}

func TestRSSFetchFeedErrors(t *testing.T) {
	p := NewRSSProvider(trace.NewNoopTracerProvider().Tracer("test"))
	if _, err := p.FetchFeed(context.Background(), " ", "Outlet", 5); err == nil {
		t.Fatal("expected error for empty feed url")
	}

	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return stringResponse(http.StatusBadGateway, "upstream down"), nil
	})}
	_, err := p.FetchFeed(context.Background(), "https://news.example/rss", "Outlet", 5)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}

	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return stringResponse(http.StatusOK, "this is not xml"), nil
	})}
	if _, err := p.FetchFeed(context.Background(), "https://news.example/rss", "Outlet", 5); err == nil {
		t.Fatal("expected decode error")
	}
}
