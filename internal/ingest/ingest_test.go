package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoad_PlainText(t *testing.T) {
	path := writeTemp(t, "notes.txt", "  Photosynthesis converts light.\n")

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Title != "notes.txt" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Text != "Photosynthesis converts light." {
		t.Errorf("text = %q, want trimmed content", doc.Text)
	}
}

func TestLoad_Markdown(t *testing.T) {
	path := writeTemp(t, "chapter.md", "# Heading\n\nBody.")
	if _, err := Load(path); err != nil {
		t.Fatalf("load markdown: %v", err)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "slides.pdf", "%PDF-1.4")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeTemp(t, "blank.txt", "   \n\t\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestLoad_TooLarge(t *testing.T) {
	path := writeTemp(t, "big.txt", strings.Repeat("a", MaxDocumentBytes+1))
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for oversized document")
	}
}

func TestLoad_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestLoad_Directory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for directory")
	}
}
