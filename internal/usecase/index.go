package usecase

import (
	"fmt"
	"log/slog"
	"sort"

	"lexy/internal/adapter/analyzer"
	"lexy/internal/adapter/chunker"
	"lexy/internal/adapter/store"
	"lexy/internal/domain"
	"lexy/internal/port"
)

// Builder turns a document set into a stored index: load, chunk,
// tokenize, accumulate postings and corpus statistics, then replace the
// store contents in one transaction.
type Builder struct {
	loader    port.Loader
	tokenizer *analyzer.Tokenizer
	opts      chunker.Options
	logger    *slog.Logger

	// Progress, when set, is called after each document.
	Progress func(processed, total int, currentFile string)
}

func NewBuilder(loader port.Loader, tokenizer *analyzer.Tokenizer, opts chunker.Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		loader:    loader,
		tokenizer: tokenizer,
		opts:      opts,
		logger:    logger,
	}
}

// BuildResult summarizes one build.
type BuildResult struct {
	Documents int
	Chunks    int
	Skipped   []string
}

// Build indexes the given documents into the store. A file that fails to
// load or chunk is logged and skipped; it never aborts the build. An
// empty document set produces a valid empty index.
func (b *Builder) Build(docs []domain.Document, st *store.BoltStore) (*BuildResult, error) {
	result := &BuildResult{Documents: len(docs)}

	var chunks []domain.Chunk
	postings := make(map[string][]domain.Posting)
	manifest := make(map[string]domain.Fingerprint, len(docs))
	sources := make(map[string]struct{})
	totalTokens := 0

	for i, doc := range docs {
		// Failed files stay in the manifest: their fingerprints are
		// tracked so a broken file does not force a rebuild per query.
		manifest[doc.RelPath] = doc.Fingerprint()

		docChunks, err := b.chunkDocument(doc)
		if err != nil {
			b.logger.Warn("skipping document", "path", doc.RelPath, "error", err)
			result.Skipped = append(result.Skipped, fmt.Sprintf("%s: %v", doc.RelPath, err))
			continue
		}

		for _, chunk := range docChunks {
			chunk.Ordinal = len(chunks)
			chunk.Tokens = b.tokenizer.Tokenize(chunk.Text)

			tf := make(map[string]int)
			for _, token := range chunk.Tokens {
				tf[token]++
			}
			for term, count := range tf {
				postings[term] = append(postings[term], domain.Posting{Ordinal: chunk.Ordinal, TF: count})
			}

			totalTokens += len(chunk.Tokens)
			sources[chunk.Source] = struct{}{}
			chunks = append(chunks, chunk)
		}

		if b.Progress != nil {
			b.Progress(i+1, len(docs), doc.RelPath)
		}
	}

	// Posting lists must come out in ordinal order for deterministic
	// scoring; map accumulation already appends in that order, but the
	// sort pins it down.
	for term := range postings {
		plist := postings[term]
		sort.Slice(plist, func(i, j int) bool { return plist[i].Ordinal < plist[j].Ordinal })
	}

	avgLen := 0.0
	if len(chunks) > 0 {
		avgLen = float64(totalTokens) / float64(len(chunks))
	}

	sourceList := make([]string, 0, len(sources))
	for s := range sources {
		sourceList = append(sourceList, s)
	}
	sort.Strings(sourceList)

	stats := domain.Stats{
		TotalDocs:   len(docs),
		TotalChunks: len(chunks),
		AvgChunkLen: avgLen,
		Sources:     sourceList,
	}

	if err := st.ReplaceIndex(chunks, postings, stats, manifest); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}

	result.Chunks = len(chunks)
	return result, nil
}

func (b *Builder) chunkDocument(doc domain.Document) ([]domain.Chunk, error) {
	content, err := b.loader.Load(doc.Path, doc.Format)
	if err != nil {
		return nil, err
	}

	strategy, err := chunker.ForFormat(doc.Format, b.opts)
	if err != nil {
		return nil, err
	}
	return strategy.Chunk(doc, content)
}
