package handler

import (
	"context"

	"coinpulse/internal/domain"
	"coinpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type NewsAnalyzer interface {
	AnalyzeCoinNews(ctx context.Context, asset domain.Asset) (domain.AggregateReport, error)
}

type MarketReader interface {
	TopCoins(ctx context.Context, limit int) ([]domain.AssessedCoin, error)
	CoinDetail(ctx context.Context, id string) (*service.AssessedCoinDetail, error)
	Search(ctx context.Context, query string) ([]domain.CoinSearchResult, error)
}

type Handler struct {
	tracer  trace.Tracer
	news    NewsAnalyzer
	market  MarketReader
	limiter RequestLimiter
}

// New wires the HTTP handlers. limiter may be nil to disable rate limiting
// on the analyze endpoint.
func New(tracer trace.Tracer, news NewsAnalyzer, market MarketReader, limiter RequestLimiter) *Handler {
	return &Handler{
		tracer:  tracer,
		news:    news,
		market:  market,
		limiter: limiter,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.POST("/news/analyze", RateLimit(h.limiter, "analyze"), h.AnalyzeNews)
	api.GET("/coins", h.GetCoins)
	api.GET("/coins/search", h.SearchCoins)
	api.GET("/coins/:id", h.GetCoin)
}
