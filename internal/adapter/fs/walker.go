package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"lexy/internal/domain"
)

// Walker discovers supported documents under a data directory. Walk order
// is lexical, which fixes document discovery order and therefore chunk
// insertion order across rebuilds.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

func (w *Walker) Walk(root string) ([]domain.Document, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && (isHidden(relPath) || w.shouldExclude(relPath+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(relPath) || w.shouldExclude(relPath) || !w.shouldInclude(relPath) {
			return nil
		}

		format, ok := domain.FormatForExt(strings.ToLower(filepath.Ext(path)))
		if !ok {
			return nil
		}

		docs = append(docs, domain.Document{
			Path:    path,
			RelPath: relPath,
			Format:  format,
			ModTime: info.ModTime().UnixNano(),
			Size:    info.Size(),
		})
		return nil
	})

	return docs, err
}

// isHidden reports whether any path component starts with a dot. This also
// keeps the cache dir itself out of the corpus.
func isHidden(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}
