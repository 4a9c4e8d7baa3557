// Package chunker converts loaded document content into bounded,
// retrievable chunks. Each format has its own strategy; ForFormat picks
// the right one, so adding a format means adding a strategy.
package chunker

import (
	"fmt"

	"lexy/internal/domain"
	"lexy/internal/port"
)

// Options bound chunk sizes for the text-based strategies.
type Options struct {
	MaxWords     int
	OverlapWords int
}

// DefaultOptions matches the index defaults: ~500-word chunks with a
// ~50-word overlap between adjacent chunks of the same section.
func DefaultOptions() Options {
	return Options{MaxWords: 500, OverlapWords: 50}
}

// ForFormat returns the chunking strategy for a format.
func ForFormat(format domain.Format, opts Options) (port.Chunker, error) {
	switch format {
	case domain.FormatMarkdown:
		return NewMarkdownChunker(opts), nil
	case domain.FormatText:
		return NewTextChunker(opts), nil
	case domain.FormatYAML, domain.FormatJSON:
		return NewStructuredChunker(), nil
	case domain.FormatCSV:
		return NewTableChunker(), nil
	}
	return nil, fmt.Errorf("no chunker for format %q", format)
}
