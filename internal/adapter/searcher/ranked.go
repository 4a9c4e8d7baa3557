package searcher

import (
	"math"
	"sort"

	"lexy/internal/domain"
)

// rankedScores accumulates a BM25+ score per chunk from the store's
// posting lists. The delta floor keeps any chunk containing at least one
// query term strictly positive, which matters because chunks are
// pre-segmented to near-uniform size: plain BM25 can zero out very short
// ones. Chunks with no query-term overlap stay untouched.
func (e *Engine) rankedScores(queryTokens []string, chunks []domain.Chunk, stats domain.Stats) ([]float64, []bool) {
	scores := make([]float64, len(chunks))
	touched := make([]bool, len(chunks))

	n := float64(stats.TotalChunks)
	avgDl := stats.AvgChunkLen
	if avgDl <= 0 {
		avgDl = 1
	}

	for _, term := range queryTokens {
		postings, err := e.store.Postings(term)
		if err != nil || len(postings) == 0 {
			continue
		}

		idf := math.Log((n + 1) / float64(len(postings)))

		for _, p := range postings {
			if p.Ordinal < 0 || p.Ordinal >= len(chunks) {
				continue
			}
			dl := float64(len(chunks[p.Ordinal].Tokens))
			tf := float64(p.TF)

			saturation := tf * (e.opts.K1 + 1) / (tf + e.opts.K1*(1-e.opts.B+e.opts.B*dl/avgDl))
			scores[p.Ordinal] += idf * (e.opts.Delta + saturation)
			touched[p.Ordinal] = true
		}
	}

	return scores, touched
}

// searchRanked returns chunks with query-term overlap, normalized so the
// top raw score maps to 1.0. Ties keep insertion order.
func (e *Engine) searchRanked(query string, chunks []domain.Chunk, stats domain.Stats, topK int) []domain.SearchResult {
	queryTokens := e.tokenizer.Tokenize(query)
	if len(queryTokens) == 0 || stats.TotalChunks == 0 {
		return nil
	}

	scores, touched := e.rankedScores(queryTokens, chunks, stats)

	var ordinals []int
	for ord, hit := range touched {
		if hit {
			ordinals = append(ordinals, ord)
		}
	}
	if len(ordinals) == 0 {
		return nil
	}

	sort.SliceStable(ordinals, func(i, j int) bool {
		return scores[ordinals[i]] > scores[ordinals[j]]
	})
	if len(ordinals) > topK {
		ordinals = ordinals[:topK]
	}

	maxScore := scores[ordinals[0]]

	results := make([]domain.SearchResult, 0, len(ordinals))
	for _, ord := range ordinals {
		results = append(results, resultFor(chunks[ord], roundScore(scores[ord]/maxScore), domain.MatchRanked))
	}
	return results
}

// searchFallback re-runs ranked scoring with no overlap requirement and
// returns the top fallback_k chunks however low they score.
func (e *Engine) searchFallback(query string, chunks []domain.Chunk, stats domain.Stats) []domain.SearchResult {
	if len(chunks) == 0 {
		return nil
	}

	queryTokens := e.tokenizer.Tokenize(query)
	scores, _ := e.rankedScores(queryTokens, chunks, stats)

	ordinals := make([]int, len(chunks))
	for i := range chunks {
		ordinals[i] = i
	}
	sort.SliceStable(ordinals, func(i, j int) bool {
		return scores[ordinals[i]] > scores[ordinals[j]]
	})

	k := e.opts.FallbackK
	if k > len(ordinals) {
		k = len(ordinals)
	}
	ordinals = ordinals[:k]

	maxScore := 0.0
	if len(ordinals) > 0 {
		maxScore = scores[ordinals[0]]
	}

	results := make([]domain.SearchResult, 0, len(ordinals))
	for _, ord := range ordinals {
		score := 0.0
		if maxScore > 0 {
			score = roundScore(scores[ord] / maxScore)
		}
		results = append(results, resultFor(chunks[ord], score, domain.MatchFallback))
	}
	return results
}
