// Package searcher runs the tiered retrieval pipeline against a built
// index: exact containment, BM25+ ranking, token-set fuzzy matching, and
// a last-resort fallback. Tiers normalize their scores onto [0,1] so
// results are comparable across tiers.
package searcher

import (
	"math"

	"lexy/internal/adapter/analyzer"
	"lexy/internal/adapter/store"
	"lexy/internal/domain"
)

// Options holds the ranking and matching parameters.
type Options struct {
	K1             float64
	B              float64
	Delta          float64
	FuzzyThreshold int
	FallbackK      int
}

type Engine struct {
	store     *store.BoltStore
	tokenizer *analyzer.Tokenizer
	opts      Options
}

func NewEngine(st *store.BoltStore, tokenizer *analyzer.Tokenizer, opts Options) *Engine {
	return &Engine{
		store:     st,
		tokenizer: tokenizer,
		opts:      opts,
	}
}

// Search executes the tier pipeline for a query. Single-tier modes run
// only their tier and never fall through; mode "all" chains exact,
// ranked, fuzzy, then fallback until one tier produces results. An empty
// corpus yields empty results for every mode.
func (e *Engine) Search(query string, mode domain.Mode, topK int) ([]domain.SearchResult, error) {
	threshold := e.opts.FuzzyThreshold
	return e.search(query, mode, topK, threshold)
}

// SearchWithThreshold is Search with a per-query fuzzy threshold override.
func (e *Engine) SearchWithThreshold(query string, mode domain.Mode, topK, fuzzyThreshold int) ([]domain.SearchResult, error) {
	return e.search(query, mode, topK, fuzzyThreshold)
}

func (e *Engine) search(query string, mode domain.Mode, topK, fuzzyThreshold int) ([]domain.SearchResult, error) {
	chunks, err := e.store.Chunks()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	stats, err := e.store.Stats()
	if err != nil {
		return nil, err
	}

	switch mode {
	case domain.ModeExact:
		return e.searchExact(query, chunks, topK), nil
	case domain.ModeRanked:
		return e.searchRanked(query, chunks, stats, topK), nil
	case domain.ModeFuzzy:
		return e.searchFuzzy(query, chunks, topK, fuzzyThreshold), nil
	case domain.ModeAll:
	default:
		return nil, domain.ErrInvalidMode
	}

	if results := e.searchExact(query, chunks, topK); len(results) > 0 {
		return results, nil
	}
	if results := e.searchRanked(query, chunks, stats, topK); len(results) > 0 {
		return results, nil
	}
	if results := e.searchFuzzy(query, chunks, topK, fuzzyThreshold); len(results) > 0 {
		return results, nil
	}
	return e.searchFallback(query, chunks, stats), nil
}

func resultFor(chunk domain.Chunk, score float64, matchType string) domain.SearchResult {
	return domain.SearchResult{
		Content:    chunk.Text,
		Source:     chunk.Source,
		Section:    chunk.Section,
		ChunkIndex: chunk.Ordinal,
		Score:      score,
		MatchType:  matchType,
	}
}

func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}
