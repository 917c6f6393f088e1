package provider

import (
	"context"
	"encoding/json"
	"errors"
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

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// ErrCoinNotFound is returned when CoinGecko does not know the requested id.
var ErrCoinNotFound = errors.New("coin not found")

// CoinGeckoProvider fetches market listings and coin details from the CoinGecko free API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGeckoProvider creates a provider limited to perMinute requests per minute.
func NewCoinGeckoProvider(tracer trace.Tracer, perMinute int) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  newHTTPClient(30 * time.Second),
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiterPerMinute(perMinute),
	}
}

// FetchTopCoins returns the top limit coins by market cap, priced in USD.
func (p *CoinGeckoProvider) FetchTopCoins(ctx context.Context, limit int) ([]domain.CoinMarket, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-top-coins")
	defer span.End()

	if limit <= 0 {
		limit = 50
	}
	if limit > 250 {
		limit = 250
	}
	span.SetAttributes(attribute.Int("limit", limit))

	u := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false",
		p.baseURL, limit)

	body, err := p.doRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch top coins: %w", err)
	}

	// Nullable numeric fields decode as zero.
	var raw []struct {
		ID                string   `json:"id"`
		Symbol            string   `json:"symbol"`
		Name              string   `json:"name"`
		CurrentPrice      *float64 `json:"current_price"`
		PriceChangePct24h *float64 `json:"price_change_percentage_24h"`
		MarketCap         *float64 `json:"market_cap"`
		TotalVolume       *float64 `json:"total_volume"`
		High24h           *float64 `json:"high_24h"`
		Low24h            *float64 `json:"low_24h"`
		CirculatingSupply *float64 `json:"circulating_supply"`
		TotalSupply       *float64 `json:"total_supply"`
		ATH               *float64 `json:"ath"`
		ATL               *float64 `json:"atl"`
		MarketCapRank     *int     `json:"market_cap_rank"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse top coins: %w", err)
	}

	coins := make([]domain.CoinMarket, 0, len(raw))
	for _, row := range raw {
		coins = append(coins, domain.CoinMarket{
			ID:                row.ID,
			Symbol:            strings.ToUpper(row.Symbol),
			Name:              row.Name,
			CurrentPrice:      deref(row.CurrentPrice),
			PriceChangePct24h: deref(row.PriceChangePct24h),
			MarketCap:         deref(row.MarketCap),
			TotalVolume:       deref(row.TotalVolume),
			High24h:           deref(row.High24h),
			Low24h:            deref(row.Low24h),
			CirculatingSupply: deref(row.CirculatingSupply),
			TotalSupply:       deref(row.TotalSupply),
			ATH:               deref(row.ATH),
			ATL:               deref(row.ATL),
			MarketCapRank:     deref(row.MarketCapRank),
		})
	}
	return coins, nil
}

// FetchCoinDetail returns the detail view for a CoinGecko coin id.
func (p *CoinGeckoProvider) FetchCoinDetail(ctx context.Context, id string) (*domain.CoinDetail, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.fetch-coin-detail")
	defer span.End()

	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, fmt.Errorf("coin id is required")
	}
	span.SetAttributes(attribute.String("coin.id", id))

	u := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&community_data=false&developer_data=false",
		p.baseURL, url.PathEscape(id))

	body, err := p.doRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch coin detail for %s: %w", id, err)
	}

	type usd struct {
		USD float64 `json:"usd"`
	}
	var raw struct {
		ID          string `json:"id"`
		Symbol      string `json:"symbol"`
		Name        string `json:"name"`
		Description struct {
			En string `json:"en"`
		} `json:"description"`
		MarketCapRank int `json:"market_cap_rank"`
		MarketData    struct {
			CurrentPrice      usd     `json:"current_price"`
			PriceChangePct24h float64 `json:"price_change_percentage_24h"`
			PriceChangePct7d  float64 `json:"price_change_percentage_7d"`
			PriceChangePct30d float64 `json:"price_change_percentage_30d"`
			MarketCap         usd     `json:"market_cap"`
			TotalVolume       usd     `json:"total_volume"`
			High24h           usd     `json:"high_24h"`
			Low24h            usd     `json:"low_24h"`
			CirculatingSupply float64 `json:"circulating_supply"`
			TotalSupply       float64 `json:"total_supply"`
			ATH               usd     `json:"ath"`
			ATL               usd     `json:"atl"`
		} `json:"market_data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse coin detail for %s: %w", id, err)
	}

	md := raw.MarketData
	return &domain.CoinDetail{
		CoinMarket: domain.CoinMarket{
			ID:                raw.ID,
			Symbol:            strings.ToUpper(raw.Symbol),
			Name:              raw.Name,
			CurrentPrice:      md.CurrentPrice.USD,
			PriceChangePct24h: md.PriceChangePct24h,
			MarketCap:         md.MarketCap.USD,
			TotalVolume:       md.TotalVolume.USD,
			High24h:           md.High24h.USD,
			Low24h:            md.Low24h.USD,
			CirculatingSupply: md.CirculatingSupply,
			TotalSupply:       md.TotalSupply,
			ATH:               md.ATH.USD,
			ATL:               md.ATL.USD,
			MarketCapRank:     raw.MarketCapRank,
		},
		Description:       sanitizeText(stripHTML(raw.Description.En), 2000),
		PriceChangePct7d:  md.PriceChangePct7d,
		PriceChangePct30d: md.PriceChangePct30d,
	}, nil
}

// SearchCoins queries CoinGecko's search index by name or symbol. Results
// keep CoinGecko's relevance order.
func (p *CoinGeckoProvider) SearchCoins(ctx context.Context, query string) ([]domain.CoinSearchResult, error) {
	ctx, span := p.tracer.Start(ctx, "coingecko.search-coins")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	span.SetAttributes(attribute.String("query", query))

	u := fmt.Sprintf("%s/search?query=%s", p.baseURL, url.QueryEscape(query))

	body, err := p.doRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("search coins for %q: %w", query, err)
	}

	var raw struct {
		Coins []struct {
			ID            string `json:"id"`
			Name          string `json:"name"`
			Symbol        string `json:"symbol"`
			MarketCapRank *int   `json:"market_cap_rank"`
			Thumb         string `json:"thumb"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse coin search for %q: %w", query, err)
	}

	results := make([]domain.CoinSearchResult, 0, len(raw.Coins))
	for _, c := range raw.Coins {
		if c.ID == "" || c.Symbol == "" {
			continue
		}
		results = append(results, domain.CoinSearchResult{
			ID:            c.ID,
			Name:          c.Name,
			Symbol:        strings.ToUpper(c.Symbol),
			MarketCapRank: deref(c.MarketCapRank),
			Thumb:         c.Thumb,
		})
	}
	span.SetAttributes(attribute.Int("results", len(results)))
	return results, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrCoinNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
