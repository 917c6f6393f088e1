package news

import (
	"strings"

	"coinpulse/internal/domain"
)

// FilterRelevant keeps records whose title or snippet mentions the asset by
// name, symbol, "<symbol>/usd" or "<symbol>usd", case-insensitively.
func FilterRelevant(records []domain.NewsRecord, asset domain.Asset) []domain.NewsRecord {
	needles := relevanceNeedles(asset)
	out := make([]domain.NewsRecord, 0, len(records))
	if len(needles) == 0 {
		return out
	}
	for _, r := range records {
		text := strings.ToLower(r.Title + " " + r.Snippet)
		for _, needle := range needles {
			if strings.Contains(text, needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func relevanceNeedles(asset domain.Asset) []string {
	name := strings.ToLower(strings.TrimSpace(asset.Name))
	symbol := strings.ToLower(strings.TrimSpace(asset.Symbol))
	needles := make([]string, 0, 4)
	if name != "" {
		needles = append(needles, name)
	}
	if symbol != "" {
		needles = append(needles, symbol, symbol+"/usd", symbol+"usd")
	}
	return needles
}
