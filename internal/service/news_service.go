package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coinpulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultAnalyzeRetries = 2
	defaultRetryDelay     = 250 * time.Millisecond
)

type NewsAnalyzer interface {
	Analyze(ctx context.Context, asset domain.Asset) (domain.AggregateReport, error)
}

// NewsService is the caller-facing entry point for news sentiment. It retries
// the whole analysis on unexpected failures.
type NewsService struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	analyzer   NewsAnalyzer
	retries    int
	retryDelay time.Duration
}

func NewNewsService(tracer trace.Tracer, logger *slog.Logger, analyzer NewsAnalyzer, retries int) *NewsService {
	if logger == nil {
		logger = slog.Default()
	}
	if retries < 0 {
		retries = 0
	}
	return &NewsService{
		tracer:     tracer,
		logger:     logger,
		analyzer:   analyzer,
		retries:    retries,
		retryDelay: defaultRetryDelay,
	}
}

// AnalyzeCoinNews runs the news pipeline for asset. Invalid assets and
// cancelled contexts fail immediately.
func (s *NewsService) AnalyzeCoinNews(ctx context.Context, asset domain.Asset) (domain.AggregateReport, error) {
	ctx, span := s.tracer.Start(ctx, "news-service.analyze", trace.WithAttributes(
		attribute.String("asset.symbol", asset.Symbol),
	))
	defer span.End()

	if err := asset.Normalize().Validate(); err != nil {
		return domain.AggregateReport{}, err
	}

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			s.logger.Warn("retrying news analysis", "symbol", asset.Symbol, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return domain.AggregateReport{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * s.retryDelay):
			}
		}

		report, err := s.analyzer.Analyze(ctx, asset)
		if err == nil {
			span.SetAttributes(attribute.Int("attempts", attempt+1))
			return report, nil
		}
		if !retryable(ctx, err) {
			span.RecordError(err)
			return domain.AggregateReport{}, err
		}
		lastErr = err
	}

	span.RecordError(lastErr)
	return domain.AggregateReport{}, lastErr
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch {
	case errors.Is(err, domain.ErrInvalidAsset),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
