package news

import (
	"coinpulse/internal/domain"
)

// labelMargin is the hysteresis band: one side must beat the other by 30%
// before a record stops being neutral.
const labelMargin = 1.3

type Scorer struct {
	lexicon *Lexicon
}

func NewScorer(lexicon *Lexicon) *Scorer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Scorer{lexicon: lexicon}
}

// Score labels a single text by weighted keyword dominance.
func (s *Scorer) Score(text string) domain.SentimentScore {
	bull := weightedMatches(text, s.lexicon.bullish)
	bear := weightedMatches(text, s.lexicon.bearish)
	return domain.SentimentScore{
		Label:        labelFor(bull, bear),
		Score:        dominance(bull, bear),
		BullishScore: bull,
		BearishScore: bear,
	}
}

// ScoreRecord scores title and snippet together.
func (s *Scorer) ScoreRecord(r domain.NewsRecord) domain.SentimentScore {
	return s.Score(r.Title + " " + r.Snippet)
}

func dominance(bull, bear float64) float64 {
	total := bull + bear
	if total == 0 {
		return 0.5
	}
	return max(bull, bear) / total
}

func labelFor(bull, bear float64) domain.Sentiment {
	switch {
	case bull > bear*labelMargin:
		return domain.SentimentBullish
	case bear > bull*labelMargin:
		return domain.SentimentBearish
	default:
		return domain.SentimentNeutral
	}
}
