package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidAsset is returned when a request omits the asset name or symbol.
var ErrInvalidAsset = errors.New("invalid asset")

type Asset struct {
	Name   string `json:"coinName"`
	Symbol string `json:"coinSymbol"`
}

// Validate reports ErrInvalidAsset when either field is blank.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" || strings.TrimSpace(a.Symbol) == "" {
		return fmt.Errorf("%w: coinName and coinSymbol are required", ErrInvalidAsset)
	}
	return nil
}

// Normalize trims both fields and upper-cases the symbol.
func (a Asset) Normalize() Asset {
	return Asset{
		Name:   strings.TrimSpace(a.Name),
		Symbol: strings.ToUpper(strings.TrimSpace(a.Symbol)),
	}
}

type Sentiment string

const (
	SentimentBullish Sentiment = "BULLISH"
	SentimentBearish Sentiment = "BEARISH"
	SentimentNeutral Sentiment = "NEUTRAL"
)

type TradeSignal string

const (
	SignalBuy  TradeSignal = "BUY"
	SignalSell TradeSignal = "SELL"
	SignalHold TradeSignal = "HOLD"
)

// SignalFor maps an overall sentiment onto its trading signal.
func SignalFor(s Sentiment) TradeSignal {
	switch s {
	case SentimentBullish:
		return SignalBuy
	case SentimentBearish:
		return SignalSell
	default:
		return SignalHold
	}
}

// NewsRecord is one normalized news item. URL identifies the record within a run.
type NewsRecord struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"date"`
	Snippet     string    `json:"snippet"`
}

// SentimentScore is the scorer's verdict on one record.
type SentimentScore struct {
	Label        Sentiment `json:"label"`
	Score        float64   `json:"score"`
	BullishScore float64   `json:"bullish_score"`
	BearishScore float64   `json:"bearish_score"`
}

type AggregateReport struct {
	Overall      Sentiment    `json:"overall"`
	Confidence   int          `json:"confidence"`
	Signal       TradeSignal  `json:"signal"`
	BullishCount int          `json:"bullishCount"`
	BearishCount int          `json:"bearishCount"`
	NeutralCount int          `json:"neutralCount"`
	Sources      []NewsRecord `json:"sources"`
}

// NeutralReport is the terminal report for a run with no usable records.
func NeutralReport() AggregateReport {
	return AggregateReport{
		Overall:    SentimentNeutral,
		Confidence: 50,
		Signal:     SignalHold,
		Sources:    []NewsRecord{},
	}
}
