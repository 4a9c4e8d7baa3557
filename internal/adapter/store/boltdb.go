// Package store persists the built index in a single bbolt database
// under the data directory's cache dir. Bolt holds an exclusive file
// lock while open and writes transactionally, so concurrent invocations
// against the same data dir cannot interleave a half-updated cache.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"lexy/internal/domain"
)

var (
	bucketChunks   = []byte("chunks")
	bucketTerms    = []byte("terms")
	bucketStats    = []byte("stats")
	bucketManifest = []byte("manifest")
	keyStats       = []byte("corpus_stats")
)

// ErrCorrupt marks an unreadable cache record. Callers treat it as a
// cache miss and rebuild.
var ErrCorrupt = errors.New("cache corrupted")

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketChunks, bucketTerms, bucketStats, bucketManifest}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

type chunkMeta struct {
	Source  string   `json:"source"`
	Section string   `json:"section"`
	Text    string   `json:"text"`
	Tokens  []string `json:"tokens"`
}

// ReplaceIndex clears the store and writes a freshly built index in one
// transaction. The index is rebuilt wholesale, never patched.
func (s *BoltStore) ReplaceIndex(chunks []domain.Chunk, postings map[string][]domain.Posting, stats domain.Stats, manifest map[string]domain.Fingerprint) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketChunks, bucketTerms, bucketStats, bucketManifest} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		cb := tx.Bucket(bucketChunks)
		for _, chunk := range chunks {
			data, err := json.Marshal(chunkMeta{
				Source:  chunk.Source,
				Section: chunk.Section,
				Text:    chunk.Text,
				Tokens:  chunk.Tokens,
			})
			if err != nil {
				return err
			}
			if err := cb.Put(ordinalKey(chunk.Ordinal), data); err != nil {
				return err
			}
		}

		tb := tx.Bucket(bucketTerms)
		for term, plist := range postings {
			data, err := json.Marshal(plist)
			if err != nil {
				return err
			}
			if err := tb.Put([]byte(term), data); err != nil {
				return err
			}
		}

		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketStats).Put(keyStats, statsData); err != nil {
			return err
		}

		mb := tx.Bucket(bucketManifest)
		for relPath, fp := range manifest {
			data, err := json.Marshal(fp)
			if err != nil {
				return err
			}
			if err := mb.Put([]byte(relPath), data); err != nil {
				return err
			}
		}

		return nil
	})
}

// Chunks returns every chunk in insertion (ordinal) order.
func (s *BoltStore) Chunks() ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketChunks).ForEach(func(k, v []byte) error {
			var meta chunkMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("%w: chunk %d: %v", ErrCorrupt, ordinalFromKey(k), err)
			}
			chunks = append(chunks, domain.Chunk{
				Ordinal: ordinalFromKey(k),
				Source:  meta.Source,
				Section: meta.Section,
				Text:    meta.Text,
				Tokens:  meta.Tokens,
			})
			return nil
		})
	})
	return chunks, err
}

// Chunk returns the chunk at one ordinal.
func (s *BoltStore) Chunk(ordinal int) (domain.Chunk, error) {
	var chunk domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketChunks).Get(ordinalKey(ordinal))
		if data == nil {
			return fmt.Errorf("chunk not found: %d", ordinal)
		}
		var meta chunkMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("%w: chunk %d: %v", ErrCorrupt, ordinal, err)
		}
		chunk = domain.Chunk{
			Ordinal: ordinal,
			Source:  meta.Source,
			Section: meta.Section,
			Text:    meta.Text,
			Tokens:  meta.Tokens,
		}
		return nil
	})
	return chunk, err
}

// Postings returns the posting list for a term, nil when the term is
// absent from the corpus.
func (s *BoltStore) Postings(term string) ([]domain.Posting, error) {
	var postings []domain.Posting
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketTerms).Get([]byte(term))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &postings); err != nil {
			return fmt.Errorf("%w: postings %q: %v", ErrCorrupt, term, err)
		}
		return nil
	})
	return postings, err
}

// Stats returns corpus statistics; a fresh store yields zero stats.
func (s *BoltStore) Stats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &stats); err != nil {
			return fmt.Errorf("%w: stats: %v", ErrCorrupt, err)
		}
		return nil
	})
	return stats, err
}

// Manifest returns the tracked fingerprint per source file. An empty map
// means the store has never been built.
func (s *BoltStore) Manifest() (map[string]domain.Fingerprint, error) {
	manifest := make(map[string]domain.Fingerprint)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketManifest).ForEach(func(k, v []byte) error {
			var fp domain.Fingerprint
			if err := json.Unmarshal(v, &fp); err != nil {
				return fmt.Errorf("%w: manifest %s: %v", ErrCorrupt, k, err)
			}
			manifest[string(k)] = fp
			return nil
		})
	})
	return manifest, err
}

func ordinalKey(ordinal int) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(ordinal))
	return key
}

func ordinalFromKey(key []byte) int {
	return int(binary.BigEndian.Uint64(key))
}
