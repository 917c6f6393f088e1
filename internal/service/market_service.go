package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"coinpulse/internal/domain"
	"coinpulse/internal/market"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultCoinLimit = 50
	MaxCoinLimit     = 250

	MinSearchQueryLen = 2
	MaxSearchResults  = 5
)

// ErrSearchQueryTooShort is returned for queries under MinSearchQueryLen characters.
var ErrSearchQueryTooShort = errors.New("search query must be at least 2 characters")

type MarketDataProvider interface {
	FetchTopCoins(ctx context.Context, limit int) ([]domain.CoinMarket, error)
	FetchCoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error)
	SearchCoins(ctx context.Context, query string) ([]domain.CoinSearchResult, error)
}

// AssessedCoinDetail is a single coin plus its price-statistics verdict.
type AssessedCoinDetail struct {
	domain.CoinDetail
	Assessment domain.MarketAssessment `json:"assessment"`
}

// MarketService serves the market listing with a signal per coin.
type MarketService struct {
	tracer   trace.Tracer
	provider MarketDataProvider
}

func NewMarketService(tracer trace.Tracer, provider MarketDataProvider) *MarketService {
	return &MarketService{tracer: tracer, provider: provider}
}

// TopCoins returns up to limit coins by market cap. limit is clamped to
// [1, MaxCoinLimit]; zero or negative means DefaultCoinLimit.
func (s *MarketService) TopCoins(ctx context.Context, limit int) ([]domain.AssessedCoin, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.top-coins")
	defer span.End()

	if limit <= 0 {
		limit = DefaultCoinLimit
	}
	limit = min(limit, MaxCoinLimit)
	span.SetAttributes(attribute.Int("limit", limit))

	coins, err := s.provider.FetchTopCoins(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch top coins: %w", err)
	}
	return market.AssessAll(coins), nil
}

func (s *MarketService) CoinDetail(ctx context.Context, id string) (*AssessedCoinDetail, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.coin-detail")
	defer span.End()

	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, fmt.Errorf("coin id is required")
	}
	span.SetAttributes(attribute.String("coin.id", id))

	detail, err := s.provider.FetchCoinDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch coin %s: %w", id, err)
	}
	return &AssessedCoinDetail{
		CoinDetail: *detail,
		Assessment: market.Assess(detail.CoinMarket),
	}, nil
}

// Search returns up to MaxSearchResults coins matching query by name or symbol.
func (s *MarketService) Search(ctx context.Context, query string) ([]domain.CoinSearchResult, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.search")
	defer span.End()

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchQueryLen {
		return nil, ErrSearchQueryTooShort
	}
	span.SetAttributes(attribute.String("query", query))

	results, err := s.provider.SearchCoins(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search coins: %w", err)
	}
	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}
	return results, nil
}

// ResolveSymbol finds the coin whose ticker equals symbol, preferring the
// best-ranked match. ok is false when no result carries that exact ticker.
func (s *MarketService) ResolveSymbol(ctx context.Context, symbol string) (domain.Asset, bool, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	results, err := s.Search(ctx, symbol)
	if err != nil {
		return domain.Asset{}, false, err
	}
	for _, r := range results {
		if r.Symbol == symbol {
			return r.Asset(), true, nil
		}
	}
	return domain.Asset{}, false, nil
}
