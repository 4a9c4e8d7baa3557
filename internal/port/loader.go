package port

import "lexy/internal/domain"

type Loader interface {
	Load(path string, format domain.Format) (domain.Content, error)
}
