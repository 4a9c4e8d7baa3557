package chunker

import (
	"fmt"

	"lexy/internal/domain"
)

// TextChunker splits plain text with the recursive word-budget splitter.
// Plain text has no headings, so section labels stay empty.
type TextChunker struct {
	opts Options
}

func NewTextChunker(opts Options) *TextChunker {
	return &TextChunker{opts: opts}
}

func (c *TextChunker) Chunk(doc domain.Document, content domain.Content) ([]domain.Chunk, error) {
	text, ok := content.(domain.TextContent)
	if !ok {
		return nil, fmt.Errorf("text chunker: unexpected content %T", content)
	}

	var chunks []domain.Chunk
	for _, piece := range splitRecursive(text.Body, c.opts.MaxWords, c.opts.OverlapWords) {
		chunks = append(chunks, domain.Chunk{
			Source: doc.RelPath,
			Text:   piece,
		})
	}
	return chunks, nil
}
