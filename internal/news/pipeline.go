package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coinpulse/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const DefaultSourceTimeout = 10 * time.Second

// ErrAnalysisFailed marks an unexpected failure while scoring or aggregating
// already collected records. Callers may retry it.
var ErrAnalysisFailed = errors.New("news analysis failed")

type Config struct {
	// SourceTimeout bounds each adapter's fetch. A source that misses it
	// contributes nothing.
	SourceTimeout time.Duration
}

// Pipeline fans out to every adapter, then filters, dedups, scores and
// aggregates the merged records. It holds no per-run state.
type Pipeline struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	scorer   *Scorer
	adapters []SourceAdapter
	cfg      Config
}

func NewPipeline(
	tracer trace.Tracer,
	logger *slog.Logger,
	scorer *Scorer,
	adapters []SourceAdapter,
	cfg Config,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = DefaultSourceTimeout
	}
	return &Pipeline{
		tracer:   tracer,
		logger:   logger,
		scorer:   scorer,
		adapters: append([]SourceAdapter(nil), adapters...),
		cfg:      cfg,
	}
}

// Analyze builds a sentiment report for asset. Source failures never surface
// as errors. An invalid asset, a cancelled ctx or ErrAnalysisFailed does.
func (p *Pipeline) Analyze(ctx context.Context, asset domain.Asset) (domain.AggregateReport, error) {
	asset = asset.Normalize()
	if err := asset.Validate(); err != nil {
		return domain.AggregateReport{}, err
	}

	runID := uuid.NewString()
	ctx, span := p.tracer.Start(ctx, "news.analyze", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.String("asset.symbol", asset.Symbol),
	))
	defer span.End()

	log := p.logger.With("run_id", runID, "symbol", asset.Symbol)
	started := time.Now()

	records := p.collect(ctx, log, asset)
	if err := ctx.Err(); err != nil {
		return domain.AggregateReport{}, err
	}

	records = Dedup(records)
	report, err := p.reduce(records)
	if err != nil {
		span.RecordError(err)
		log.Error("news analysis failed", "records", len(records), "error", err)
		return domain.AggregateReport{}, err
	}

	span.SetAttributes(
		attribute.Int("records", len(records)),
		attribute.String("overall", string(report.Overall)),
		attribute.Int("confidence", report.Confidence),
	)
	log.Info("news analysis complete",
		"records", len(records),
		"overall", report.Overall,
		"signal", report.Signal,
		"confidence", report.Confidence,
		"duration", time.Since(started),
	)
	return report, nil
}

// reduce scores the deduplicated records and aggregates them. A panic in
// either step becomes ErrAnalysisFailed.
func (p *Pipeline) reduce(records []domain.NewsRecord) (report domain.AggregateReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAnalysisFailed, r)
		}
	}()

	scored := make([]ScoredRecord, 0, len(records))
	for _, r := range records {
		scored = append(scored, ScoredRecord{Record: r, Sentiment: p.scorer.ScoreRecord(r)})
	}
	return Aggregate(scored), nil
}

// collect runs every adapter concurrently and concatenates their results in
// adapter order. Untargeted results pass through FilterRelevant first.
func (p *Pipeline) collect(ctx context.Context, log *slog.Logger, asset domain.Asset) []domain.NewsRecord {
	slots := make([][]domain.NewsRecord, len(p.adapters))

	var g errgroup.Group
	for i, adapter := range p.adapters {
		g.Go(func() error {
			recs := p.fetchOne(ctx, log, adapter, asset)
			if !adapter.Targeted() {
				recs = FilterRelevant(recs, asset)
			}
			slots[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	merged := make([]domain.NewsRecord, 0, total)
	for _, s := range slots {
		merged = append(merged, s...)
	}
	return merged
}

func (p *Pipeline) fetchOne(ctx context.Context, log *slog.Logger, adapter SourceAdapter, asset domain.Asset) []domain.NewsRecord {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.SourceTimeout)
	defer cancel()

	ctx, span := p.tracer.Start(ctx, "news.fetch-source", trace.WithAttributes(
		attribute.String("source", adapter.Name()),
	))
	defer span.End()

	// Fetch runs on its own goroutine so an adapter that ignores ctx still
	// cannot hold the run past the deadline.
	type result struct {
		recs []domain.NewsRecord
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("source panicked: %v", r)}
			}
		}()
		out, err := adapter.Fetch(ctx, asset)
		done <- result{recs: out, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if res.err != nil {
		span.RecordError(res.err)
		log.Warn("news source failed", "source", adapter.Name(), "error", res.err)
		return nil
	}

	span.SetAttributes(attribute.Int("records", len(res.recs)))
	log.Debug("news source fetched", "source", adapter.Name(), "records", len(res.recs))
	return res.recs
}
