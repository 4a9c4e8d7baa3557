package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lexy/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MarkdownFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", `---
title: Install Guide
tags: [setup]
---
# Setup

Run the installer.
`)

	l := NewFileLoader()
	content, err := l.Load(path, domain.FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}

	text, ok := content.(domain.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", content)
	}
	if text.Meta["title"] != "Install Guide" {
		t.Errorf("expected front matter title, got %v", text.Meta)
	}
	if text.Body != "# Setup\n\nRun the installer.\n" {
		t.Errorf("front matter not stripped from body: %q", text.Body)
	}
}

func TestLoad_MarkdownWithoutFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "# Title\n\nBody.\n")

	l := NewFileLoader()
	content, err := l.Load(path, domain.FormatMarkdown)
	if err != nil {
		t.Fatal(err)
	}

	text := content.(domain.TextContent)
	if text.Meta != nil {
		t.Errorf("expected no metadata, got %v", text.Meta)
	}
	if text.Body != "# Title\n\nBody.\n" {
		t.Errorf("body altered: %q", text.Body)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.yaml", "name: lexy\nitems:\n  - one\n  - two\n")

	l := NewFileLoader()
	content, err := l.Load(path, domain.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}

	structured, ok := content.(domain.StructuredContent)
	if !ok {
		t.Fatalf("expected StructuredContent, got %T", content)
	}
	m, ok := structured.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected mapping, got %T", structured.Data)
	}
	if m["name"] != "lexy" {
		t.Errorf("unexpected data: %v", m)
	}
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", `{"key": "value", "nums": [1, 2]}`)

	l := NewFileLoader()
	content, err := l.Load(path, domain.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}

	structured := content.(domain.StructuredContent)
	m := structured.Data.(map[string]any)
	if m["key"] != "value" {
		t.Errorf("unexpected data: %v", m)
	}
}

func TestLoad_CSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "name,role\nalice,admin\nbob,user\n")

	l := NewFileLoader()
	content, err := l.Load(path, domain.FormatCSV)
	if err != nil {
		t.Fatal(err)
	}

	table, ok := content.(domain.TableContent)
	if !ok {
		t.Fatalf("expected TableContent, got %T", content)
	}
	if len(table.Header) != 2 || table.Header[0] != "name" {
		t.Errorf("unexpected header: %v", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(table.Rows))
	}
	if table.Rows[1][0] != "bob" {
		t.Errorf("unexpected row: %v", table.Rows[1])
	}
}

func TestLoad_EmptyCSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.csv", "")

	l := NewFileLoader()
	content, err := l.Load(path, domain.FormatCSV)
	if err != nil {
		t.Fatal(err)
	}
	table := content.(domain.TableContent)
	if len(table.Rows) != 0 {
		t.Errorf("expected no rows, got %v", table.Rows)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", "{not json")

	l := NewFileLoader()
	_, err := l.Load(path, domain.FormatJSON)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("expected LoadError, got %T", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewFileLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.txt"), domain.FormatText)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("expected LoadError, got %T", err)
	}
}
