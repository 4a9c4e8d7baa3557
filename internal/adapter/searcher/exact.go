package searcher

import (
	"strings"

	"lexy/internal/domain"
)

// searchExact returns every chunk whose content contains the raw query,
// case-insensitively. All hits score a fixed 1.0, so ordering is the
// chunks' insertion order.
func (e *Engine) searchExact(query string, chunks []domain.Chunk, topK int) []domain.SearchResult {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	var results []domain.SearchResult
	for _, chunk := range chunks {
		if !strings.Contains(strings.ToLower(chunk.Text), q) {
			continue
		}
		results = append(results, resultFor(chunk, 1.0, domain.MatchExact))
		if len(results) == topK {
			break
		}
	}
	return results
}
