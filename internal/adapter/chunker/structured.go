package chunker

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"lexy/internal/domain"
)

// StructuredChunker flattens decoded YAML/JSON into one chunk per
// top-level key or array element. Nested mappings recurse with
// "parent > child" labels, arrays become one chunk per element.
// Map keys are visited in sorted order so chunk ordering is stable.
type StructuredChunker struct{}

func NewStructuredChunker() *StructuredChunker {
	return &StructuredChunker{}
}

func (c *StructuredChunker) Chunk(doc domain.Document, content domain.Content) ([]domain.Chunk, error) {
	structured, ok := content.(domain.StructuredContent)
	if !ok {
		return nil, fmt.Errorf("structured chunker: unexpected content %T", content)
	}

	var chunks []domain.Chunk
	for _, fc := range flatten(structured.Data, "") {
		chunks = append(chunks, domain.Chunk{
			Source:  doc.RelPath,
			Section: fc.section,
			Text:    fc.text,
		})
	}
	return chunks, nil
}

type flatChunk struct {
	section string
	text    string
}

func flatten(data any, prefix string) []flatChunk {
	var chunks []flatChunk

	switch v := data.(type) {
	case map[string]any:
		for _, key := range sortedKeys(v) {
			value := v[key]
			entryKey := key
			if prefix != "" {
				entryKey = prefix + " > " + key
			}

			switch inner := value.(type) {
			case map[string]any:
				if defs, ok := inner["definitions"].([]any); ok {
					chunks = append(chunks, glossaryChunk(key, defs))
					continue
				}
				sub := flatten(inner, entryKey)
				if len(sub) > 0 {
					chunks = append(chunks, sub...)
				} else {
					chunks = append(chunks, flatChunk{section: entryKey, text: renderValue(inner)})
				}
			case []any:
				for i, item := range inner {
					chunks = append(chunks, flatChunk{
						section: fmt.Sprintf("%s[%d]", entryKey, i),
						text:    fmt.Sprintf("%s: %s", key, renderValue(item)),
					})
				}
			default:
				chunks = append(chunks, flatChunk{
					section: entryKey,
					text:    fmt.Sprintf("%s: %s", key, renderValue(value)),
				})
			}
		}

	case []any:
		for i, item := range v {
			text := renderValue(item)
			if m, ok := item.(map[string]any); ok {
				text = renderRecord(m)
			}
			chunks = append(chunks, flatChunk{
				section: fmt.Sprintf("%s[%d]", prefix, i),
				text:    text,
			})
		}
	}

	return chunks
}

// glossaryChunk collapses a map holding a "definitions" list into one
// chunk, joining definition texts and any see_also cross-references.
func glossaryChunk(key string, defs []any) flatChunk {
	var texts []string
	seeAlso := make(map[string]struct{})

	for _, d := range defs {
		if m, ok := d.(map[string]any); ok {
			if t, ok := m["text"].(string); ok {
				texts = append(texts, t)
			} else {
				texts = append(texts, renderValue(m))
			}
			if refs, ok := m["see_also"].([]any); ok {
				for _, ref := range refs {
					seeAlso[fmt.Sprintf("%v", ref)] = struct{}{}
				}
			}
		} else {
			texts = append(texts, renderValue(d))
		}
	}

	text := fmt.Sprintf("%s: %s", key, strings.Join(texts, "; "))
	if len(seeAlso) > 0 {
		refs := make([]string, 0, len(seeAlso))
		for ref := range seeAlso {
			refs = append(refs, ref)
		}
		sort.Strings(refs)
		text += fmt.Sprintf(" (See also: %s)", strings.Join(refs, ", "))
	}
	return flatChunk{section: key, text: text}
}

// renderRecord renders a map as "key: value | key: value" with sorted keys.
func renderRecord(m map[string]any) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, renderValue(m[k])))
	}
	return strings.Join(parts, " | ")
}

func renderValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
