// Package market derives the price-statistics verdict shown next to each coin.
package market

import (
	"math"

	"coinpulse/internal/domain"
	"coinpulse/internal/ta"
)

const (
	rsiPeriod     = 14
	rsiOverbought = 70.0
	rsiOversold   = 30.0

	signalMovePct   = 5.0
	confidenceBase  = 50
	confidenceCap   = 95
	moderateMovePct = 3.0
	largeMovePct    = 7.0
	activeVolumePct = 5.0
	topRankCutoff   = 10
	strongTrendPct  = 2.0
)

// Assess scores a market row. The signal's RSI runs over the 24h window the
// listing carries, [low, price, high], which stays neutral until a longer
// series is supplied upstream. The reported RSI, zone and MACD direction are
// momentum readings derived from the 24h move.
func Assess(c domain.CoinMarket) domain.MarketAssessment {
	seriesRSI := ta.RSI([]float64{c.Low24h, c.CurrentPrice, c.High24h}, rsiPeriod)
	momentum := ta.MomentumRSI(c.PriceChangePct24h)
	volumeRatio := ta.Percent(c.TotalVolume, c.MarketCap)

	return domain.MarketAssessment{
		Signal:      signal(c.PriceChangePct24h, seriesRSI),
		Confidence:  confidence(c, volumeRatio),
		RSI:         momentum,
		RSIZone:     RSIZone(momentum),
		MACD:        MACDDirection(c.PriceChangePct24h),
		Volatility:  ta.RangePercent(c.High24h, c.Low24h, c.CurrentPrice),
		VolumeRatio: volumeRatio,
		Trend:       Trend(c.PriceChangePct24h),
	}
}

func signal(change, rsi float64) domain.TradeSignal {
	switch {
	case change > signalMovePct && rsi < rsiOverbought:
		return domain.SignalBuy
	case change < -signalMovePct || rsi > rsiOverbought:
		return domain.SignalSell
	default:
		return domain.SignalHold
	}
}

func confidence(c domain.CoinMarket, volumeRatio float64) int {
	score := confidenceBase
	move := math.Abs(c.PriceChangePct24h)
	if move > moderateMovePct {
		score += 15
	}
	if move > largeMovePct {
		score += 10
	}
	if volumeRatio > activeVolumePct {
		score += 15
	}
	if c.MarketCapRank > 0 && c.MarketCapRank <= topRankCutoff {
		score += 10
	}
	return min(score, confidenceCap)
}

// RSIZone labels an RSI reading.
func RSIZone(rsi float64) string {
	switch {
	case rsi < rsiOversold:
		return "Oversold"
	case rsi > rsiOverbought:
		return "Overbought"
	default:
		return "Neutral"
	}
}

// MACDDirection reads the 24h move as a MACD crossover direction. A flat
// move counts as bearish.
func MACDDirection(change float64) string {
	if change > 0 {
		return "Bullish"
	}
	return "Bearish"
}

// Trend labels a 24h percentage move.
func Trend(change float64) string {
	switch {
	case change > strongTrendPct:
		return "Strong Uptrend"
	case change < -strongTrendPct:
		return "Strong Downtrend"
	default:
		return "Sideways"
	}
}

// AssessAll pairs every row with its assessment, preserving order.
func AssessAll(coins []domain.CoinMarket) []domain.AssessedCoin {
	out := make([]domain.AssessedCoin, 0, len(coins))
	for _, c := range coins {
		out = append(out, domain.AssessedCoin{CoinMarket: c, Assessment: Assess(c)})
	}
	return out
}
