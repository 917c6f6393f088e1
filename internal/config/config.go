package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOutletFeedURL  = "https://www.coindesk.com/arc/outboundfeeds/rss/"
	defaultOutletName     = "CoinDesk"
	defaultCryptoPanicKey = "free"
)

type Config struct {
	HTTPAddr         string
	RedisURL         string
	TracingEnabled   bool
	TelegramBotToken string

	AnalyzeRateLimitPerMin int
	NewsSourceTimeoutSecs  int
	NewsAnalyzeRetries     int
	CryptoPanicToken       string
	OutletFeedURL          string
	OutletName             string
	CoinGeckoRatePerMin    int

	MCPTransport          string
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
}

// NewsSourceTimeout is the per-source fetch deadline.
func (c *Config) NewsSourceTimeout() time.Duration {
	return time.Duration(c.NewsSourceTimeoutSecs) * time.Second
}

func (c *Config) MCPRequestTimeout() time.Duration {
	return time.Duration(c.MCPRequestTimeoutSecs) * time.Second
}

func Load() *Config {
	cfg := &Config{
		RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		MCPAuthToken:     os.Getenv("MCP_AUTH_TOKEN"),
	}

	cfg.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, analyze rate limiting disabled")
	}
	if cfg.TelegramBotToken == "" {
		slog.Warn("TELEGRAM_BOT_TOKEN not set, bot disabled")
	}

	cfg.TracingEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("TRACING_ENABLED")), "false")

	cfg.AnalyzeRateLimitPerMin = positiveInt("ANALYZE_RATE_LIMIT_PER_MIN", 30)
	cfg.NewsSourceTimeoutSecs = positiveInt("NEWS_SOURCE_TIMEOUT_SECS", 10)
	cfg.CoinGeckoRatePerMin = positiveInt("COINGECKO_RATE_PER_MIN", 8)

	cfg.NewsAnalyzeRetries = 2
	if v := strings.TrimSpace(os.Getenv("NEWS_ANALYZE_RETRIES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 5 {
			cfg.NewsAnalyzeRetries = n
		} else {
			slog.Warn("invalid NEWS_ANALYZE_RETRIES, using default", "value", v, "default", cfg.NewsAnalyzeRetries)
		}
	}

	cfg.CryptoPanicToken = strings.TrimSpace(os.Getenv("CRYPTOPANIC_TOKEN"))
	if cfg.CryptoPanicToken == "" {
		cfg.CryptoPanicToken = defaultCryptoPanicKey
	}

	cfg.OutletFeedURL = strings.TrimSpace(os.Getenv("NEWS_OUTLET_FEED_URL"))
	if cfg.OutletFeedURL == "" {
		cfg.OutletFeedURL = defaultOutletFeedURL
	}
	cfg.OutletName = strings.TrimSpace(os.Getenv("NEWS_OUTLET_NAME"))
	if cfg.OutletName == "" {
		cfg.OutletName = defaultOutletName
	}

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		slog.Warn("unsupported MCP_TRANSPORT, defaulting to stdio", "value", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}
	cfg.MCPHTTPPort = positiveInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = positiveInt("MCP_REQUEST_TIMEOUT_SECS", 30)

	return cfg
}

func positiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer setting, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}
