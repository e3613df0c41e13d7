package ingest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.txt")
	content := "First paragraph\nwraps onto a second line.\n\n\nSecond paragraph.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.Title != "story" {
		t.Fatalf("expected title %q, got %q", "story", m.Title)
	}
	want := "First paragraph wraps onto a second line.\n\nSecond paragraph."
	if m.Text != want {
		t.Fatalf("normalized text mismatch:\n got %q\nwant %q", m.Text, want)
	}
}

func TestLoadDOCXKeepsParagraphBoundaries(t *testing.T) {
	path := buildDOCX(t, `<w:document><w:body><w:p><w:r><w:t>Chapter 1</w:t></w:r></w:p><w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>world.</w:t></w:r></w:p></w:body></w:document>`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.Text != "Chapter 1\n\nHello world." {
		t.Fatalf("unexpected text: %q", m.Text)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.rtf")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected unsupported type error")
	}
}

func TestNormalizeTextHandlesCRLF(t *testing.T) {
	got := NormalizeText("one\r\ntwo\r\n\r\nthree")
	if got != "one two\n\nthree" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}

func TestNormalizeTextCollapsesInnerSpaces(t *testing.T) {
	got := NormalizeText("a   b\t c\n\nd")
	if !strings.HasPrefix(got, "a b c") {
		t.Fatalf("expected collapsed spaces, got %q", got)
	}
}

func buildDOCX(t *testing.T, bodyXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.docx")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	zw := zip.NewWriter(out)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	xml := `<?xml version="1.0" encoding="UTF-8"?>` + bodyXML
	if _, err := f.Write([]byte(xml)); err != nil {
		t.Fatalf("write xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close docx: %v", err)
	}
	return path
}
