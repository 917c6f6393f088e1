package domain

// CoinMarket is one row of the market listing.
type CoinMarket struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	MarketCap         float64 `json:"market_cap"`
	TotalVolume       float64 `json:"total_volume"`
	High24h           float64 `json:"high_24h"`
	Low24h            float64 `json:"low_24h"`
	CirculatingSupply float64 `json:"circulating_supply"`
	TotalSupply       float64 `json:"total_supply"`
	ATH               float64 `json:"ath"`
	ATL               float64 `json:"atl"`
	MarketCapRank     int     `json:"market_cap_rank"`
}

// CoinDetail is the single-coin view, flattened to USD figures.
type CoinDetail struct {
	CoinMarket
	Description       string  `json:"description"`
	PriceChangePct7d  float64 `json:"price_change_percentage_7d"`
	PriceChangePct30d float64 `json:"price_change_percentage_30d"`
}

// MarketAssessment is the price-statistics verdict shown beside a coin.
type MarketAssessment struct {
	Signal      TradeSignal `json:"signal"`
	Confidence  int         `json:"confidence"`
	RSI         float64     `json:"rsi"`
	RSIZone     string      `json:"rsi_zone"`
	MACD        string      `json:"macd"`
	Volatility  float64     `json:"volatility_pct"`
	VolumeRatio float64     `json:"volume_to_market_cap_pct"`
	Trend       string      `json:"trend"`
}

// CoinSearchResult is one match from the coin search index.
type CoinSearchResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
	Thumb         string `json:"thumb,omitempty"`
}

// Asset returns the name/symbol pair the news pipeline analyzes.
func (r CoinSearchResult) Asset() Asset {
	return Asset{Name: r.Name, Symbol: r.Symbol}.Normalize()
}

type AssessedCoin struct {
	CoinMarket
	Assessment MarketAssessment `json:"assessment"`
}

// KnownAssets maps ticker symbols to display names for callers that only
// carry a symbol (bot commands, MCP tools).
var KnownAssets = map[string]string{
	"BTC":   "Bitcoin",
	"ETH":   "Ethereum",
	"SOL":   "Solana",
	"XRP":   "XRP",
	"ADA":   "Cardano",
	"DOGE":  "Dogecoin",
	"DOT":   "Polkadot",
	"AVAX":  "Avalanche",
	"LINK":  "Chainlink",
	"MATIC": "Polygon",
}
