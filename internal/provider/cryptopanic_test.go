package provider

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func TestCryptoPanicFetchPosts(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewCryptoPanicProvider(trace.NewNoopTracerProvider().Tracer("test"), "")
	p.baseURL = "https://example.com"
	p.now = func() time.Time { return fixed }
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/free/v1/posts/" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("currencies") != "SOL" || q.Get("auth_token") != "free" || q.Get("public") != "true" {
			t.Fatalf("unexpected query: %s", req.URL.RawQuery)
		}
		body := `{"results":[
			{"title":"Solana surges","url":"https://a.example/1","published_at":"2026-02-20T10:00:00Z","source":{"title":"The Block"}},
			{"title":"Solana outage","url":"https://a.example/2","created_at":"2026-02-19T10:00:00Z","description":"Validators <b>halted</b>","source":null},
			{"title":"","url":"https://a.example/3"},
			{"title":"No link","url":""},
			{"title":"Undated","url":"https://a.example/4"}
		]}`
		return stringResponse(http.StatusOK, body), nil
	})}

	records, err := p.FetchPosts(context.Background(), "sol", 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 usable records, got %d", len(records))
	}
	if records[0].Source != "The Block" || records[0].Snippet != "Solana surges" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Source != "CryptoPanic" || records[1].Snippet != "Validators halted" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
	if !records[1].PublishedAt.Equal(time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at should back-fill published_at, got %v", records[1].PublishedAt)
	}
	if !records[2].PublishedAt.Equal(fixed) {
		t.Fatalf("missing timestamps should default to now, got %v", records[2].PublishedAt)
	}
}

func TestCryptoPanicFetchPostsCapsResults(t *testing.T) {
	p := NewCryptoPanicProvider(trace.NewNoopTracerProvider().Tracer("test"), "token")
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("auth_token") != "token" {
			t.Fatalf("expected configured token, got %s", req.URL.RawQuery)
		}
		body := `{"results":[{"title":"a","url":"https://a/1"},{"title":"b","url":"https://a/2"},{"title":"c","url":"https://a/3"}]}`
		return stringResponse(http.StatusOK, body), nil
	})}

	records, err := p.FetchPosts(context.Background(), "BTC", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestCryptoPanicFetchPostsNonOK(t *testing.T) {
	p := NewCryptoPanicProvider(trace.NewNoopTracerProvider().Tracer("test"), "")
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return stringResponse(http.StatusTooManyRequests, "slow down"), nil
	})}
	if _, err := p.FetchPosts(context.Background(), "BTC", 25); err == nil {
		t.Fatal("expected error on non-200 response")
	}
	if _, err := p.FetchPosts(context.Background(), "", 25); err == nil {
		t.Fatal("expected error on empty symbol")
	}
}
