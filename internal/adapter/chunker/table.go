package chunker

import (
	"fmt"
	"strings"

	"lexy/internal/domain"
)

// TableChunker turns each CSV data row into one chunk. The header row is
// never a chunk itself; it labels the fields within each row's text.
type TableChunker struct{}

func NewTableChunker() *TableChunker {
	return &TableChunker{}
}

func (c *TableChunker) Chunk(doc domain.Document, content domain.Content) ([]domain.Chunk, error) {
	table, ok := content.(domain.TableContent)
	if !ok {
		return nil, fmt.Errorf("table chunker: unexpected content %T", content)
	}

	var chunks []domain.Chunk
	for i, row := range table.Rows {
		text := renderRow(table.Header, row)
		if text == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			Source:  doc.RelPath,
			Section: fmt.Sprintf("row %d", i+1),
			Text:    text,
		})
	}
	return chunks, nil
}

func renderRow(header, row []string) string {
	parts := make([]string, 0, len(header))
	for i, col := range header {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts = append(parts, fmt.Sprintf("%s: %s", col, cell))
	}
	return strings.TrimSpace(strings.Join(parts, " | "))
}
