package usecase

import (
	"lexy/config"
	"lexy/internal/adapter/analyzer"
	"lexy/internal/adapter/searcher"
	"lexy/internal/adapter/store"
	"lexy/internal/domain"
)

// SearchOutput is the JSON envelope the search command prints.
type SearchOutput struct {
	Query        string                `json:"query"`
	Mode         string                `json:"mode"`
	Results      []domain.SearchResult `json:"results"`
	TotalResults int                   `json:"total_results"`
	IndexStats   domain.Stats          `json:"index_stats"`
}

// Search runs one query against a resolved store.
func Search(st *store.BoltStore, cfg *config.Config, query string, mode domain.Mode, topK, fuzzyThreshold int) (*SearchOutput, error) {
	if topK <= 0 {
		topK = cfg.Retrieve.TopK
	}
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = cfg.Retrieve.FuzzyThreshold
	}

	engine := searcher.NewEngine(st, analyzer.NewTokenizer(), searcher.Options{
		K1:             cfg.Index.K1,
		B:              cfg.Index.B,
		Delta:          cfg.Index.Delta,
		FuzzyThreshold: cfg.Retrieve.FuzzyThreshold,
		FallbackK:      cfg.Retrieve.FallbackK,
	})

	results, err := engine.SearchWithThreshold(query, mode, topK, fuzzyThreshold)
	if err != nil {
		return nil, err
	}

	stats, err := st.Stats()
	if err != nil {
		return nil, err
	}

	if results == nil {
		results = []domain.SearchResult{}
	}
	return &SearchOutput{
		Query:        query,
		Mode:         string(mode),
		Results:      results,
		TotalResults: len(results),
		IndexStats:   stats,
	}, nil
}
