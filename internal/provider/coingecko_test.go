package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stringResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestCoinGeckoProviderFetchTopCoins(t *testing.T) {
	t.Parallel()

	provider := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"), 8)
	provider.baseURL = "http://example"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if !strings.HasSuffix(req.URL.Path, "/coins/markets") {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			if req.URL.Query().Get("per_page") != "2" || req.URL.Query().Get("vs_currency") != "usd" {
				t.Fatalf("unexpected query: %s", req.URL.RawQuery)
			}
			body := `[
				{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":100,"price_change_percentage_24h":6.5,"market_cap":1000,"total_volume":80,"high_24h":105,"low_24h":95,"market_cap_rank":1},
				{"id":"newcoin","symbol":"new","name":"New","current_price":1,"price_change_percentage_24h":null,"market_cap":null,"total_volume":0,"high_24h":null,"low_24h":null,"market_cap_rank":null}
			]`
			return stringResponse(http.StatusOK, body), nil
		}),
	}
	provider.limiter = NewRateLimiter(10, time.Millisecond)

	coins, err := provider.FetchTopCoins(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coins) != 2 {
		t.Fatalf("expected 2 coins, got %d", len(coins))
	}
	btc := coins[0]
	if btc.Symbol != "BTC" || btc.CurrentPrice != 100 || btc.PriceChangePct24h != 6.5 || btc.MarketCapRank != 1 {
		t.Fatalf("unexpected coin: %+v", btc)
	}
	if coins[1].MarketCap != 0 || coins[1].MarketCapRank != 0 {
		t.Fatalf("null fields should decode as zero: %+v", coins[1])
	}
}

func TestCoinGeckoProviderFetchCoinDetail(t *testing.T) {
	t.Parallel()

	provider := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"), 8)
	provider.baseURL = "http://example"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/coins/ethereum" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			body := `{"id":"ethereum","symbol":"eth","name":"Ethereum","market_cap_rank":2,
				"description":{"en":"<a href=\"x\">Ethereum</a> is a platform."},
				"market_data":{"current_price":{"usd":3000},"price_change_percentage_24h":-1.5,
				"price_change_percentage_7d":4,"price_change_percentage_30d":10,
				"market_cap":{"usd":360000},"total_volume":{"usd":12000},
				"high_24h":{"usd":3100},"low_24h":{"usd":2900},"ath":{"usd":4800},"atl":{"usd":0.4}}}`
			return stringResponse(http.StatusOK, body), nil
		}),
	}
	provider.limiter = NewRateLimiter(10, time.Millisecond)

	detail, err := provider.FetchCoinDetail(context.Background(), "Ethereum")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Symbol != "ETH" || detail.CurrentPrice != 3000 || detail.High24h != 3100 || detail.PriceChangePct30d != 10 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if detail.Description != "Ethereum is a platform." {
		t.Fatalf("expected stripped description, got %q", detail.Description)
	}
}

func TestCoinGeckoProviderNotFound(t *testing.T) {
	t.Parallel()

	provider := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"), 8)
	provider.baseURL = "http://example"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return stringResponse(http.StatusNotFound, `{"error":"coin not found"}`), nil
		}),
	}
	provider.limiter = NewRateLimiter(10, time.Millisecond)

	_, err := provider.FetchCoinDetail(context.Background(), "nope")
	if !errors.Is(err, ErrCoinNotFound) {
		t.Fatalf("expected ErrCoinNotFound, got %v", err)
	}
}

func TestCoinGeckoProviderSearchCoins(t *testing.T) {
	t.Parallel()

	provider := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"), 8)
	provider.baseURL = "http://example"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/search" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			if got := req.URL.Query().Get("query"); got != "shiba inu" {
				t.Fatalf("unexpected query: %q", got)
			}
			body := `{"coins":[
				{"id":"shiba-inu","name":"Shiba Inu","symbol":"shib","market_cap_rank":15,"thumb":"https://img/shib.png"},
				{"id":"","name":"Broken","symbol":"brk"},
				{"id":"shiba-fork","name":"Shiba Fork","symbol":"sfork","market_cap_rank":null}
			],"exchanges":[]}`
			return stringResponse(http.StatusOK, body), nil
		}),
	}
	provider.limiter = NewRateLimiter(10, time.Millisecond)

	results, err := provider.SearchCoins(context.Background(), "  shiba inu ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	if results[0].ID != "shiba-inu" || results[0].Symbol != "SHIB" || results[0].MarketCapRank != 15 {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].MarketCapRank != 0 {
		t.Fatalf("null rank should decode as zero: %+v", results[1])
	}
}

func TestCoinGeckoProviderSearchCoinsErrors(t *testing.T) {
	t.Parallel()

	provider := NewCoinGeckoProvider(trace.NewNoopTracerProvider().Tracer("test"), 8)
	provider.baseURL = "http://example"
	provider.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return stringResponse(http.StatusTooManyRequests, `{"status":{"error_code":429}}`), nil
		}),
	}
	provider.limiter = NewRateLimiter(10, time.Millisecond)

	if _, err := provider.SearchCoins(context.Background(), " "); err == nil {
		t.Fatal("expected error for blank query")
	}
	_, err := provider.SearchCoins(context.Background(), "btc")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected upstream status in error, got %v", err)
	}
}
