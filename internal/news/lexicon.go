package news

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Terms longer than this many characters are phrases or compounds and carry
// double weight.
const phraseLength = 10

var defaultBullishTerms = []string{
	"surge", "surges", "rally", "rallies", "gain", "gains", "bullish", "up", "high",
	"rise", "rises", "soar", "soars", "moon", "breakout", "breakthrough", "adoption",
	"approval", "approved", "positive", "growth", "profit", "increase", "boost",
	"optimistic", "upgrade", "partnership", "success", "innovation", "investment",
	"outperform", "momentum", "strength", "institutional", "etf", "inflows",
	"accumulation", "rebound", "recovery", "all-time high", "record high",
	"golden cross",
}

var defaultBearishTerms = []string{
	"crash", "crashes", "drop", "drops", "fall", "falls", "bearish", "down", "low",
	"plunge", "plunges", "dump", "decline", "loss", "losses", "negative", "concern",
	"worry", "risk", "threat", "decrease", "weak", "pessimistic", "downgrade",
	"lawsuit", "scam", "hack", "hacked", "exploit", "fraud", "regulation", "ban",
	"crackdown", "investigation", "outflows", "liquidation", "liquidations",
	"sell-off", "selloff", "bankruptcy", "delisting", "death cross",
}

type lexiconTerm struct {
	term   string
	weight float64
	rx     *regexp.Regexp
}

// Lexicon is an immutable pair of weighted term lists. Build it once and share
// it between scorers; it is safe for concurrent use.
type Lexicon struct {
	bullish []lexiconTerm
	bearish []lexiconTerm
}

// NewLexicon compiles whole-word, case-insensitive matchers for every term.
func NewLexicon(bullish, bearish []string) (*Lexicon, error) {
	bull, err := compileTerms(bullish)
	if err != nil {
		return nil, fmt.Errorf("bullish terms: %w", err)
	}
	bear, err := compileTerms(bearish)
	if err != nil {
		return nil, fmt.Errorf("bearish terms: %w", err)
	}
	return &Lexicon{bullish: bull, bearish: bear}, nil
}

// DefaultLexicon returns the shipped crypto-news term lists.
func DefaultLexicon() *Lexicon {
	lex, err := NewLexicon(defaultBullishTerms, defaultBearishTerms)
	if err != nil {
		panic(err)
	}
	return lex
}

func compileTerms(terms []string) ([]lexiconTerm, error) {
	seen := make(map[string]struct{}, len(terms))
	out := make([]lexiconTerm, 0, len(terms))
	for _, raw := range terms {
		term := strings.ToLower(strings.Join(strings.Fields(raw), " "))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}

		pattern := strings.ReplaceAll(regexp.QuoteMeta(term), " ", `\s+`)
		rx, err := regexp.Compile(`(?i)\b` + pattern + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", term, err)
		}
		weight := 1.0
		if utf8.RuneCountInString(term) > phraseLength {
			weight = 2
		}
		out = append(out, lexiconTerm{term: term, weight: weight, rx: rx})
	}
	return out, nil
}

func weightedMatches(text string, terms []lexiconTerm) float64 {
	var total float64
	for _, t := range terms {
		if n := len(t.rx.FindAllStringIndex(text, -1)); n > 0 {
			total += float64(n) * t.weight
		}
	}
	return total
}
