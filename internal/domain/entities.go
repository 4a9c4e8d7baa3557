package domain

import "errors"

// Format identifies how a source file is loaded and chunked.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
)

// FormatForExt maps a lowercase file extension to its format.
// The second return is false for unsupported extensions.
func FormatForExt(ext string) (Format, bool) {
	switch ext {
	case ".md", ".markdown":
		return FormatMarkdown, true
	case ".txt":
		return FormatText, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".csv":
		return FormatCSV, true
	}
	return "", false
}

type Document struct {
	Path    string // absolute path on disk
	RelPath string // path relative to the data dir, used in results
	Format  Format
	ModTime int64 // unix nanoseconds
	Size    int64
}

// Fingerprint is the (mtime, size) pair used for cache invalidation.
type Fingerprint struct {
	ModTime int64 `json:"mod_time"`
	Size    int64 `json:"size"`
}

func (d Document) Fingerprint() Fingerprint {
	return Fingerprint{ModTime: d.ModTime, Size: d.Size}
}

// Chunk is the atomic unit of retrieval. Ordinal is the chunk's position
// in corpus insertion order: document discovery order, then position
// within the document.
type Chunk struct {
	Ordinal int
	Source  string // RelPath of the owning document
	Section string // nearest heading, key path, or row label
	Text    string
	Tokens  []string
}

type Stats struct {
	TotalDocs   int      `json:"documents"`
	TotalChunks int      `json:"chunks"`
	AvgChunkLen float64  `json:"avg_chunk_len"`
	Sources     []string `json:"sources,omitempty"`
}

type Posting struct {
	Ordinal int `json:"ord"`
	TF      int `json:"tf"`
}

// Content is what a loader produces for one file. Each format yields
// exactly one of the variants below.
type Content interface {
	content()
}

// TextContent holds markdown or plain-text body with any front-matter
// metadata already stripped from it.
type TextContent struct {
	Body string
	Meta map[string]any
}

// StructuredContent holds a decoded YAML or JSON value.
type StructuredContent struct {
	Data any
}

// TableContent holds CSV rows keyed by the header row.
type TableContent struct {
	Header []string
	Rows   [][]string
}

func (TextContent) content()       {}
func (StructuredContent) content() {}
func (TableContent) content()      {}

// MatchType tags which tier produced a result.
const (
	MatchExact    = "exact"
	MatchRanked   = "ranked"
	MatchFuzzy    = "fuzzy"
	MatchFallback = "fallback"
)

// SearchResult is one ranked hit, shaped for direct JSON serialization.
type SearchResult struct {
	Content    string  `json:"content"`
	Source     string  `json:"source"`
	Section    string  `json:"section"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
	MatchType  string  `json:"match_type"`
}

// Mode selects which retrieval tiers run.
type Mode string

const (
	ModeAll    Mode = "all"
	ModeExact  Mode = "exact"
	ModeRanked Mode = "ranked"
	ModeFuzzy  Mode = "fuzzy"
)

var ErrInvalidMode = errors.New("invalid search mode")

// ParseMode validates a caller-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAll, ModeExact, ModeRanked, ModeFuzzy:
		return Mode(s), nil
	}
	return "", ErrInvalidMode
}
