package news

import "coinpulse/internal/domain"

// Dedup returns one record per URL, keeping the first occurrence and the
// input's relative order. The input slice is not modified.
func Dedup(records []domain.NewsRecord) []domain.NewsRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]domain.NewsRecord, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
	}
	return out
}
