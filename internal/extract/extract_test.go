package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTextFromTxt(t *testing.T) {
	got, err := Text(context.Background(), []byte("  Jane Doe\nGo engineer\n"), ".txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "Jane Doe\nGo engineer" {
		t.Fatalf("got %q", got)
	}
}

func TestTextUnsupportedExtension(t *testing.T) {
	_, err := Text(context.Background(), []byte("x"), ".exe")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestTextCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Text(ctx, []byte("x"), ".txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStripXMLTags(t *testing.T) {
	raw := `<w:document><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p><w:p><w:r><w:t>Go engineer</w:t></w:r></w:p></w:document>`
	got := stripXMLTags(raw)
	if got != "Jane Doe\nGo engineer" {
		t.Fatalf("stripXMLTags = %q", got)
	}
}

func TestExtractPrintableKeepsWordRuns(t *testing.T) {
	data := append([]byte{0x00, 0x01, 0x02}, []byte("Curriculum Vitae")...)
	data = append(data, 0x00, 0x7f)
	got := extractPrintable(data)
	if !strings.Contains(got, "Curriculum Vitae") {
		t.Fatalf("expected readable run preserved, got %q", got)
	}
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	if _, err := Text(context.Background(), []byte("not a pdf"), ".pdf"); err == nil {
		t.Fatal("expected error for invalid pdf bytes")
	}
}

func TestExtractDOCXRejectsGarbage(t *testing.T) {
	if _, err := Text(context.Background(), []byte("not a docx"), ".docx"); err == nil {
		t.Fatal("expected error for invalid docx bytes")
	}
}
