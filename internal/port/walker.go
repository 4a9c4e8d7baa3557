package port

import "lexy/internal/domain"

type FileWalker interface {
	Walk(root string) ([]domain.Document, error)
}
