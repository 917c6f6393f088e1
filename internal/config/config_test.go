package config

import (
	"testing"
	"time"
)

var configKeys = []string{
	"HTTP_ADDR", "REDIS_URL", "TELEGRAM_BOT_TOKEN", "TRACING_ENABLED",
	"ANALYZE_RATE_LIMIT_PER_MIN", "NEWS_SOURCE_TIMEOUT_SECS", "NEWS_ANALYZE_RETRIES",
	"CRYPTOPANIC_TOKEN", "NEWS_OUTLET_FEED_URL", "NEWS_OUTLET_NAME", "COINGECKO_RATE_PER_MIN",
	"MCP_TRANSPORT", "MCP_HTTP_BIND", "MCP_HTTP_PORT", "MCP_AUTH_TOKEN", "MCP_REQUEST_TIMEOUT_SECS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %s", cfg.HTTPAddr)
	}
	if cfg.RedisURL != "" {
		t.Fatalf("expected empty redis url, got %s", cfg.RedisURL)
	}
	if !cfg.TracingEnabled {
		t.Fatal("tracing should default to enabled")
	}
	if cfg.AnalyzeRateLimitPerMin != 30 || cfg.NewsAnalyzeRetries != 2 || cfg.CoinGeckoRatePerMin != 8 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.NewsSourceTimeout() != 10*time.Second {
		t.Fatalf("expected 10s source timeout, got %s", cfg.NewsSourceTimeout())
	}
	if cfg.CryptoPanicToken != "free" || cfg.OutletName != "CoinDesk" || cfg.OutletFeedURL != defaultOutletFeedURL {
		t.Fatalf("unexpected news defaults: %+v", cfg)
	}
	if cfg.MCPTransport != "stdio" || cfg.MCPHTTPBind != "127.0.0.1" || cfg.MCPHTTPPort != 8090 {
		t.Fatalf("unexpected mcp defaults: %+v", cfg)
	}
	if cfg.MCPRequestTimeout() != 30*time.Second {
		t.Fatalf("expected 30s mcp timeout, got %s", cfg.MCPRequestTimeout())
	}
}

func TestLoadWithEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("TRACING_ENABLED", "FALSE")
	t.Setenv("ANALYZE_RATE_LIMIT_PER_MIN", "5")
	t.Setenv("NEWS_SOURCE_TIMEOUT_SECS", "3")
	t.Setenv("NEWS_ANALYZE_RETRIES", "0")
	t.Setenv("CRYPTOPANIC_TOKEN", "abc")
	t.Setenv("MCP_TRANSPORT", "HTTP")
	t.Setenv("MCP_HTTP_PORT", "9191")

	cfg := Load()
	if cfg.HTTPAddr != ":9000" || cfg.RedisURL != "redis://cache:6379/0" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TracingEnabled {
		t.Fatal("tracing should be disabled")
	}
	if cfg.AnalyzeRateLimitPerMin != 5 || cfg.NewsAnalyzeRetries != 0 {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.NewsSourceTimeout() != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.NewsSourceTimeout())
	}
	if cfg.CryptoPanicToken != "abc" {
		t.Fatalf("expected token abc, got %s", cfg.CryptoPanicToken)
	}
	if cfg.MCPTransport != "http" || cfg.MCPHTTPPort != 9191 {
		t.Fatalf("unexpected mcp config: %+v", cfg)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEWS_SOURCE_TIMEOUT_SECS", "bad")
	t.Setenv("NEWS_ANALYZE_RETRIES", "-1")
	t.Setenv("COINGECKO_RATE_PER_MIN", "0")
	t.Setenv("MCP_TRANSPORT", "grpc")

	cfg := Load()
	if cfg.NewsSourceTimeoutSecs != 10 {
		t.Fatalf("invalid timeout should fall back to default, got %d", cfg.NewsSourceTimeoutSecs)
	}
	if cfg.NewsAnalyzeRetries != 2 {
		t.Fatalf("invalid retries should fall back to default, got %d", cfg.NewsAnalyzeRetries)
	}
	if cfg.CoinGeckoRatePerMin != 8 {
		t.Fatalf("invalid rate should fall back to default, got %d", cfg.CoinGeckoRatePerMin)
	}
	if cfg.MCPTransport != "stdio" {
		t.Fatalf("unsupported transport should fall back to stdio, got %s", cfg.MCPTransport)
	}
}
