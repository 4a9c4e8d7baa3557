package usecase

import (
	"fmt"
	"log/slog"
	"os"

	"lexy/config"
	"lexy/internal/adapter/analyzer"
	"lexy/internal/adapter/chunker"
	"lexy/internal/adapter/fs"
	"lexy/internal/adapter/loader"
	"lexy/internal/adapter/store"
	"lexy/internal/domain"
)

// Resolver decides per invocation whether the cached index under the
// data dir is still valid, rebuilding it wholesale when any tracked
// file's fingerprint disagrees, a file appeared or vanished, or a
// rebuild is forced. There is no partial rebuild.
type Resolver struct {
	cfg    *config.Config
	logger *slog.Logger

	// Progress is handed to the Builder on rebuilds.
	Progress func(processed, total int, currentFile string)
}

func NewResolver(cfg *config.Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cfg: cfg, logger: logger}
}

// Resolve opens the cache for a data dir, rebuilding first if needed.
// The returned store is valid either way; the bool reports whether a
// rebuild happened. The caller owns closing the store.
func (r *Resolver) Resolve(dataDir string, force bool) (*store.BoltStore, bool, error) {
	if err := config.EnsureCacheDir(dataDir); err != nil {
		return nil, false, fmt.Errorf("failed to create cache dir: %w", err)
	}

	walker := fs.NewWalker(r.cfg.Index.Includes, r.cfg.Index.Excludes)
	docs, err := walker.Walk(dataDir)
	if err != nil {
		return nil, false, fmt.Errorf("failed to scan data dir: %w", err)
	}

	st, err := r.openStore(dataDir)
	if err != nil {
		return nil, false, err
	}

	rebuild := force
	reason := "forced"
	if !rebuild {
		manifest, err := st.Manifest()
		if err != nil {
			// Unreadable manifest is a cache miss, not a failure.
			r.logger.Warn("cache unreadable, rebuilding", "error", err)
			rebuild = true
			reason = "corrupt manifest"
		} else if stale, why := manifestStale(manifest, docs); stale {
			rebuild = true
			reason = why
		}
	}

	if !rebuild {
		return st, false, nil
	}

	r.logger.Info("rebuilding index", "data_dir", dataDir, "files", len(docs), "reason", reason)

	builder := NewBuilder(
		loader.NewFileLoader(),
		analyzer.NewTokenizer(),
		chunker.Options{MaxWords: r.cfg.Index.ChunkWords, OverlapWords: r.cfg.Index.ChunkOverlap},
		r.logger,
	)
	builder.Progress = r.Progress

	result, err := builder.Build(docs, st)
	if err != nil {
		st.Close()
		return nil, false, err
	}

	r.logger.Info("index built", "documents", result.Documents, "chunks", result.Chunks, "skipped", len(result.Skipped))
	return st, true, nil
}

// openStore opens the bolt db, deleting and recreating it when the file
// itself is unreadable. Only a cache dir that cannot be written at all
// is surfaced as an error.
func (r *Resolver) openStore(dataDir string) (*store.BoltStore, error) {
	dbPath := config.IndexDBPath(dataDir)

	st, err := store.NewBoltStore(dbPath)
	if err == nil {
		return st, nil
	}

	r.logger.Warn("cache db unreadable, recreating", "path", dbPath, "error", err)
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove corrupt cache: %w", err)
	}

	st, err = store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return st, nil
}

// manifestStale compares the tracked fingerprints against the current
// directory state.
func manifestStale(manifest map[string]domain.Fingerprint, docs []domain.Document) (bool, string) {
	if len(manifest) != len(docs) {
		return true, "file count changed"
	}
	for _, doc := range docs {
		fp, ok := manifest[doc.RelPath]
		if !ok {
			return true, "new file: " + doc.RelPath
		}
		if fp != doc.Fingerprint() {
			return true, "changed file: " + doc.RelPath
		}
	}
	return false, ""
}
