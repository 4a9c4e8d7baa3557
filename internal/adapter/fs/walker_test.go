package fs

import (
	"os"
	"path/filepath"
	"testing"

	"lexy/internal/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func defaultWalker() *Walker {
	return NewWalker(
		[]string{"**/*.md", "**/*.txt", "**/*.yaml", "**/*.json", "**/*.csv"},
		nil,
	)
}

func TestWalker_DiscoversSupportedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "# A")
	writeFile(t, root, "sub/b.txt", "text")
	writeFile(t, root, "sub/c.yaml", "k: v")
	writeFile(t, root, "ignored.xyz", "nope")

	docs, err := defaultWalker().Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d: %+v", len(docs), docs)
	}

	// lexical walk order
	wantRel := []string{"a.md", "sub/b.txt", "sub/c.yaml"}
	wantFormat := []domain.Format{domain.FormatMarkdown, domain.FormatText, domain.FormatYAML}
	for i, doc := range docs {
		if doc.RelPath != wantRel[i] {
			t.Errorf("doc %d: expected %q, got %q", i, wantRel[i], doc.RelPath)
		}
		if doc.Format != wantFormat[i] {
			t.Errorf("doc %d: expected format %q, got %q", i, wantFormat[i], doc.Format)
		}
		if doc.Size == 0 || doc.ModTime == 0 {
			t.Errorf("doc %d: missing fingerprint fields: %+v", i, doc)
		}
	}
}

func TestWalker_SkipsHiddenAndCacheDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "visible.md", "# V")
	writeFile(t, root, ".hidden.md", "# H")
	writeFile(t, root, ".lexy/index.db.md", "not a doc")
	writeFile(t, root, "sub/.secret/notes.txt", "hidden dir")

	docs, err := defaultWalker().Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected only the visible file, got %d: %+v", len(docs), docs)
	}
	if docs[0].RelPath != "visible.md" {
		t.Errorf("unexpected document: %q", docs[0].RelPath)
	}
}

func TestWalker_Excludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.md", "# K")
	writeFile(t, root, "drafts/skip.md", "# S")

	w := NewWalker([]string{"**/*.md"}, []string{"drafts/**"})
	docs, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].RelPath != "keep.md" {
		t.Errorf("exclude pattern not applied: %+v", docs)
	}
}

func TestWalker_EmptyDir(t *testing.T) {
	docs, err := defaultWalker().Walk(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}
