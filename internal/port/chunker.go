package port

import "lexy/internal/domain"

type Chunker interface {
	Chunk(doc domain.Document, content domain.Content) ([]domain.Chunk, error)
}
