// Package app assembles the providers, news pipeline and services shared by
// the HTTP server, the Telegram bot and the MCP server.
package app

import (
	"log/slog"

	"coinpulse/internal/config"
	"coinpulse/internal/news"
	"coinpulse/internal/provider"
	"coinpulse/internal/service"

	"go.opentelemetry.io/otel/trace"
)

type Services struct {
	News   *service.NewsService
	Market *service.MarketService
}

// NewsSources returns the adapters in their fixed merge order: curated
// posts, news search, then the outlet feed.
func NewsSources(cfg *config.Config, tracer trace.Tracer) []news.SourceAdapter {
	return []news.SourceAdapter{
		news.CuratedPostSource{Reader: provider.NewCryptoPanicProvider(tracer, cfg.CryptoPanicToken)},
		news.SearchFeedSource{Reader: provider.NewGoogleNewsProvider(tracer)},
		news.OutletFeedSource{
			Reader: provider.NewRSSProvider(tracer),
			URL:    cfg.OutletFeedURL,
			Label:  cfg.OutletName,
		},
	}
}

func Build(cfg *config.Config, tracer trace.Tracer, logger *slog.Logger) *Services {
	pipeline := news.NewPipeline(
		tracer,
		logger,
		news.NewScorer(news.DefaultLexicon()),
		NewsSources(cfg, tracer),
		news.Config{SourceTimeout: cfg.NewsSourceTimeout()},
	)
	return &Services{
		News:   service.NewNewsService(tracer, logger, pipeline, cfg.NewsAnalyzeRetries),
		Market: service.NewMarketService(tracer, provider.NewCoinGeckoProvider(tracer, cfg.CoinGeckoRatePerMin)),
	}
}
