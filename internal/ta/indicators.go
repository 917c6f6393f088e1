package ta

import "math"

// RSI is the relative strength index over the first period+1 prices using
// simple average gains and losses. Too few points yield the neutral 50.
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50
	}

	var gainSum float64
	var lossSum float64
	for i := 1; i <= period; i++ {
		delta := prices[i] - prices[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	return rsiFromAvg(gainSum/float64(period), lossSum/float64(period))
}

// MomentumRSI approximates an RSI reading from a single percentage move when
// no price series is available: 50 plus twice the move, rounded and clamped
// to [0, 100].
func MomentumRSI(changePct float64) float64 {
	return math.Max(0, math.Min(100, math.Round(50+changePct*2)))
}

func rsiFromAvg(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}

// RangePercent is (high-low) as a percentage of ref. A zero ref yields 0.
func RangePercent(high, low, ref float64) float64 {
	if ref == 0 {
		return 0
	}
	return (high - low) / ref * 100
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
