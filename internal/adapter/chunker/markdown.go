package chunker

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"lexy/internal/domain"
)

// MarkdownChunker splits a document on its headings (levels 1-3), labels
// each section with the nearest heading, then applies the recursive
// word-budget splitter within oversized sections.
type MarkdownChunker struct {
	opts Options
	md   goldmark.Markdown
}

func NewMarkdownChunker(opts Options) *MarkdownChunker {
	return &MarkdownChunker{
		opts: opts,
		md:   goldmark.New(),
	}
}

type section struct {
	label string
	text  string
}

func (c *MarkdownChunker) Chunk(doc domain.Document, content domain.Content) ([]domain.Chunk, error) {
	text, ok := content.(domain.TextContent)
	if !ok {
		return nil, fmt.Errorf("markdown chunker: unexpected content %T", content)
	}

	var chunks []domain.Chunk
	for _, sec := range c.sections([]byte(text.Body)) {
		for _, piece := range splitRecursive(sec.text, c.opts.MaxWords, c.opts.OverlapWords) {
			chunks = append(chunks, domain.Chunk{
				Source:  doc.RelPath,
				Section: sec.label,
				Text:    piece,
			})
		}
	}
	return chunks, nil
}

// sections parses the markdown AST and slices the source at each heading
// of level 1-3. Content before the first heading becomes an unlabeled
// section. Deeper headings stay inside their parent section's text.
func (c *MarkdownChunker) sections(source []byte) []section {
	doc := c.md.Parser().Parse(gmtext.NewReader(source))

	type boundary struct {
		lineStart int // offset of the start of the heading line
		bodyStart int // offset just past the heading text
		title     string
	}

	var bounds []boundary
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindHeading {
			return ast.WalkContinue, nil
		}
		heading := n.(*ast.Heading)
		if heading.Level > 3 || heading.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		seg := heading.Lines().At(0)
		bounds = append(bounds, boundary{
			lineStart: lineStartBefore(source, seg.Start),
			bodyStart: seg.Stop,
			title:     headingTitle(heading, source),
		})
		return ast.WalkContinue, nil
	})

	var sections []section
	appendSection := func(label, text string) {
		text = strings.TrimSpace(text)
		if text != "" {
			sections = append(sections, section{label: label, text: text})
		}
	}

	if len(bounds) == 0 {
		appendSection("", string(source))
		return sections
	}

	appendSection("", string(source[:bounds[0].lineStart]))
	for i, b := range bounds {
		end := len(source)
		if i+1 < len(bounds) {
			end = bounds[i+1].lineStart
		}
		appendSection(b.title, string(source[b.bodyStart:end]))
	}
	return sections
}

// headingTitle collects the plain text of a heading's inline children.
func headingTitle(heading *ast.Heading, source []byte) string {
	var sb strings.Builder
	for n := heading.FirstChild(); n != nil; n = n.NextSibling() {
		collectText(n, source, &sb)
	}
	return strings.TrimSpace(sb.String())
}

func collectText(n ast.Node, source []byte, sb *strings.Builder) {
	if t, ok := n.(*ast.Text); ok {
		sb.Write(t.Segment.Value(source))
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, sb)
	}
}

// lineStartBefore walks back from an offset to the start of its line.
func lineStartBefore(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	i := strings.LastIndexByte(string(source[:offset]), '\n')
	return i + 1
}
