// Package loader reads a single source file of a known format and yields
// its raw content structure. A failure to read or parse one file is a
// LoadError; callers skip the file and keep building.
package loader

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"lexy/internal/domain"
)

// LoadError wraps a per-file load failure.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type FileLoader struct{}

func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads and parses one file according to its format.
func (l *FileLoader) Load(path string, format domain.Format) (domain.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var content domain.Content
	switch format {
	case domain.FormatMarkdown:
		content, err = loadMarkdown(data)
	case domain.FormatText:
		content = domain.TextContent{Body: string(data)}
	case domain.FormatYAML:
		content, err = loadYAML(data)
	case domain.FormatJSON:
		content, err = loadJSON(data)
	case domain.FormatCSV:
		content, err = loadCSV(data)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return content, nil
}

// loadMarkdown splits a leading YAML front-matter block from the body.
// A file without front matter is returned whole.
func loadMarkdown(data []byte) (domain.Content, error) {
	body, meta, err := splitFrontMatter(string(data))
	if err != nil {
		return nil, err
	}
	return domain.TextContent{Body: body, Meta: meta}, nil
}

func splitFrontMatter(text string) (string, map[string]any, error) {
	const delim = "---"

	rest, found := strings.CutPrefix(text, delim+"\n")
	if !found {
		if rest, found = strings.CutPrefix(text, delim+"\r\n"); !found {
			return text, nil, nil
		}
	}

	idx := strings.Index(rest, "\n"+delim)
	if idx < 0 {
		return text, nil, nil
	}
	head := rest[:idx]
	body := rest[idx+len("\n"+delim):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(head), &meta); err != nil {
		return "", nil, fmt.Errorf("front matter: %w", err)
	}
	return body, meta, nil
}

func loadYAML(data []byte) (domain.Content, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return domain.StructuredContent{Data: v}, nil
}

func loadJSON(data []byte) (domain.Content, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return domain.StructuredContent{Data: v}, nil
}

func loadCSV(data []byte) (domain.Content, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return domain.TableContent{}, nil
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return domain.TableContent{Header: header, Rows: rows}, nil
}
