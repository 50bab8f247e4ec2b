package resume

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractTextPlainFiles(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "candidate.txt")
	if err := os.WriteFile(txt, []byte("5 years ML experience\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := ExtractText(txt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "5 years ML experience\n" {
		t.Fatalf("unexpected text: %q", got)
	}

	blank := filepath.Join(dir, "blank.md")
	if err := os.WriteFile(blank, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ExtractText(blank); !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestExtractTextErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ExtractText(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}

	if _, err := ExtractText(filepath.Join(dir, "resume.docx")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}

	broken := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(broken, []byte("not a pdf"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := ExtractText(broken); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}
