// Package mcpserver exposes news sentiment and market data as MCP tools.
package mcpserver

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"coinpulse/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "coinpulse"
	serverVersion = "1.0.0"

	defaultRequestTimeout = 30 * time.Second
	defaultToolCoinLimit  = 10
	maxToolCoinLimit      = 100
)

type NewsAnalyzer interface {
	AnalyzeCoinNews(ctx context.Context, asset domain.Asset) (domain.AggregateReport, error)
}

type MarketReader interface {
	TopCoins(ctx context.Context, limit int) ([]domain.AssessedCoin, error)
}

type Config struct {
	RequestTimeout time.Duration
}

type AnalyzeInput struct {
	CoinName   string `json:"coinName" jsonschema:"display name of the coin, e.g. Bitcoin"`
	CoinSymbol string `json:"coinSymbol" jsonschema:"ticker symbol, e.g. BTC"`
}

type TopCoinsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of coins to return, 1-100, default 10"`
}

type tools struct {
	news    NewsAnalyzer
	market  MarketReader
	logger  *slog.Logger
	timeout time.Duration
}

// New builds an MCP server with the analyze_coin_news and top_coins tools.
func New(news NewsAnalyzer, market MarketReader, logger *slog.Logger, cfg Config) *mcp.Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	t := &tools{news: news, market: market, logger: logger, timeout: cfg.RequestTimeout}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_coin_news",
		Description: "Aggregate recent crypto news for a coin and score its sentiment into a BUY/SELL/HOLD signal with confidence.",
	}, t.analyzeCoinNews)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "top_coins",
		Description: "List the top coins by market cap with a price-based trading signal for each.",
	}, t.topCoins)
	return server
}

func (t *tools) analyzeCoinNews(ctx context.Context, _ *mcp.CallToolRequest, in AnalyzeInput) (*mcp.CallToolResult, any, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	asset := domain.Asset{Name: in.CoinName, Symbol: in.CoinSymbol}.Normalize()
	if err := asset.Validate(); err != nil {
		return nil, nil, err
	}
	report, err := t.news.AnalyzeCoinNews(ctx, asset)
	if err != nil {
		t.logger.Warn("mcp analyze_coin_news failed", "symbol", asset.Symbol, "error", err)
		return nil, nil, fmt.Errorf("analyze %s: %w", asset.Symbol, err)
	}
	return jsonResult(report)
}

func (t *tools) topCoins(ctx context.Context, _ *mcp.CallToolRequest, in TopCoinsInput) (*mcp.CallToolResult, any, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	limit := in.Limit
	if limit <= 0 {
		limit = defaultToolCoinLimit
	}
	limit = min(limit, maxToolCoinLimit)

	coins, err := t.market.TopCoins(ctx, limit)
	if err != nil {
		t.logger.Warn("mcp top_coins failed", "error", err)
		return nil, nil, fmt.Errorf("top coins: %w", err)
	}
	return jsonResult(map[string]any{"coins": coins})
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// HTTPHandler serves server over streamable HTTP. A non-empty authToken
// requires "Authorization: Bearer <token>" on every request.
func HTTPHandler(server *mcp.Server, authToken string) http.Handler {
	h := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	return BearerAuth(authToken, h)
}

func BearerAuth(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	want := []byte("Bearer " + token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := []byte(strings.TrimSpace(r.Header.Get("Authorization")))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
