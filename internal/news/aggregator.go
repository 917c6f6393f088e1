package news

import (
	"math"

	"coinpulse/internal/domain"
)

// MaxReportSources caps the records echoed back in a report. Counts always
// cover every scored record.
const MaxReportSources = 30

// Ladder thresholds, in percent of scored records.
const (
	strongSharePct   = 40.0
	leadingSharePct  = 35.0
	strongWeightMin  = 0.5
	strongConfCap    = 95
	leadingConfCap   = 85
	leadingConfBonus = 10.0
	neutralConfMin   = 50
	neutralConfMax   = 70
	neutralConfBonus = 20.0
)

// ScoredRecord pairs a record with the sentiment assigned to it.
type ScoredRecord struct {
	Record    domain.NewsRecord
	Sentiment domain.SentimentScore
}

// Aggregate reduces scored records into one report. The zero-record case
// yields domain.NeutralReport.
func Aggregate(scored []ScoredRecord) domain.AggregateReport {
	if len(scored) == 0 {
		return domain.NeutralReport()
	}

	var (
		bullCount, bearCount, neutralCount int
		bullWeightSum, bearWeightSum       float64
	)
	for _, s := range scored {
		switch s.Sentiment.Label {
		case domain.SentimentBullish:
			bullCount++
			bullWeightSum += s.Sentiment.Score
		case domain.SentimentBearish:
			bearCount++
			bearWeightSum += s.Sentiment.Score
		default:
			neutralCount++
		}
	}

	total := float64(len(scored))
	bullPct := float64(bullCount) / total * 100
	bearPct := float64(bearCount) / total * 100
	neutralPct := float64(neutralCount) / total * 100
	avgBull := mean(bullWeightSum, bullCount)
	avgBear := mean(bearWeightSum, bearCount)

	overall, confidence := decide(bullPct, bearPct, neutralPct, avgBull, avgBear)

	sources := make([]domain.NewsRecord, 0, min(len(scored), MaxReportSources))
	for _, s := range scored[:min(len(scored), MaxReportSources)] {
		sources = append(sources, s.Record)
	}

	return domain.AggregateReport{
		Overall:      overall,
		Confidence:   confidence,
		Signal:       domain.SignalFor(overall),
		BullishCount: bullCount,
		BearishCount: bearCount,
		NeutralCount: neutralCount,
		Sources:      sources,
	}
}

// decide walks the ladder top to bottom; the first matching rung wins.
func decide(bullPct, bearPct, neutralPct, avgBull, avgBear float64) (domain.Sentiment, int) {
	switch {
	case bullPct > strongSharePct && avgBull > strongWeightMin:
		return domain.SentimentBullish, min(strongConfCap, roundInt(bullPct*(1+avgBull)/2))
	case bearPct > strongSharePct && avgBear > strongWeightMin:
		return domain.SentimentBearish, min(strongConfCap, roundInt(bearPct*(1+avgBear)/2))
	case bullPct > bearPct && bullPct > leadingSharePct:
		return domain.SentimentBullish, min(leadingConfCap, roundInt(bullPct+leadingConfBonus))
	case bearPct > bullPct && bearPct > leadingSharePct:
		return domain.SentimentBearish, min(leadingConfCap, roundInt(bearPct+leadingConfBonus))
	default:
		return domain.SentimentNeutral, max(neutralConfMin, min(neutralConfMax, roundInt(neutralPct+neutralConfBonus)))
	}
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
