package chunker

import (
	"strings"
	"testing"

	"lexy/internal/domain"
)

func mdDoc() domain.Document {
	return domain.Document{Path: "/data/guide.md", RelPath: "guide.md", Format: domain.FormatMarkdown}
}

func TestMarkdownChunker_SectionLabels(t *testing.T) {
	c := NewMarkdownChunker(DefaultOptions())

	content := domain.TextContent{Body: `Intro paragraph before any heading.

# Install

Download the package.

## Setup

Run the installer.

### Verify

Check the version.
`}

	chunks, err := c.Chunk(mdDoc(), content)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d: %+v", len(chunks), chunks)
	}

	wantSections := []string{"", "Install", "Setup", "Verify"}
	for i, chunk := range chunks {
		if chunk.Section != wantSections[i] {
			t.Errorf("chunk %d: expected section %q, got %q", i, wantSections[i], chunk.Section)
		}
		if chunk.Source != "guide.md" {
			t.Errorf("chunk %d: unexpected source %q", i, chunk.Source)
		}
	}
	if chunks[2].Text != "Run the installer." {
		t.Errorf("unexpected Setup text: %q", chunks[2].Text)
	}
}

func TestMarkdownChunker_DeepHeadingsStayInSection(t *testing.T) {
	c := NewMarkdownChunker(DefaultOptions())

	content := domain.TextContent{Body: `### Config

Options listed below.

#### Advanced

Rarely needed.
`}

	chunks, err := c.Chunk(mdDoc(), content)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != "Config" {
		t.Errorf("expected section Config, got %q", chunks[0].Section)
	}
	if !strings.Contains(chunks[0].Text, "Rarely needed.") {
		t.Errorf("level-4 heading content should stay in the parent section: %q", chunks[0].Text)
	}
}

func TestMarkdownChunker_NoHeadings(t *testing.T) {
	c := NewMarkdownChunker(DefaultOptions())

	chunks, err := c.Chunk(mdDoc(), domain.TextContent{Body: "Just a plain paragraph.\n"})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != "" {
		t.Errorf("expected empty section, got %q", chunks[0].Section)
	}
}

func TestMarkdownChunker_EmptyDocument(t *testing.T) {
	c := NewMarkdownChunker(DefaultOptions())

	chunks, err := c.Chunk(mdDoc(), domain.TextContent{Body: ""})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty document, got %d", len(chunks))
	}
}

func TestMarkdownChunker_InlineMarkupInHeading(t *testing.T) {
	c := NewMarkdownChunker(DefaultOptions())

	chunks, err := c.Chunk(mdDoc(), domain.TextContent{Body: "## Using `lexy search`\n\nDetails.\n"})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Section != "Using lexy search" {
		t.Errorf("expected plain-text heading label, got %q", chunks[0].Section)
	}
}

func TestMarkdownChunker_LargeSectionSplitsWithinLabel(t *testing.T) {
	c := NewMarkdownChunker(Options{MaxWords: 20, OverlapWords: 5})

	var sb strings.Builder
	sb.WriteString("# Big\n\n")
	for i := 0; i < 10; i++ {
		sb.WriteString(strings.TrimSpace(strings.Repeat("content word ", 6)))
		sb.WriteString("\n\n")
	}

	chunks, err := c.Chunk(mdDoc(), domain.TextContent{Body: sb.String()})
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected an oversized section to split, got %d chunk(s)", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Section != "Big" {
			t.Errorf("chunk %d: split pieces must keep the section label, got %q", i, chunk.Section)
		}
	}
}
