package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/grasp/internal/extract"
)

// MaxDocumentBytes caps how much text a single study document may contain.
// Bigger documents blow the extraction context window long before this.
const MaxDocumentBytes = 512 * 1024

// Load reads a plain-text or markdown study document from disk. Any
// failure here surfaces as a plain error and never reaches the concept
// graph.
func Load(path string) (extract.Document, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md", ".markdown", "":
	default:
		return extract.Document{}, fmt.Errorf("unsupported document type %q (use .txt or .md)", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return extract.Document{}, fmt.Errorf("read document: %w", err)
	}
	if info.IsDir() {
		return extract.Document{}, fmt.Errorf("%s is a directory, not a document", path)
	}
	if info.Size() > MaxDocumentBytes {
		return extract.Document{}, fmt.Errorf("document is %d bytes, max is %d", info.Size(), MaxDocumentBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return extract.Document{}, fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(data) {
		return extract.Document{}, fmt.Errorf("%s is not valid UTF-8 text", path)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return extract.Document{}, fmt.Errorf("%s is empty", path)
	}

	return extract.Document{
		Title: filepath.Base(path),
		Text:  text,
	}, nil
}
