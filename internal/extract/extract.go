// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupported reports a file type the extractor cannot handle.
var ErrUnsupported = errors.New("unsupported file type")

// Text extracts plain text from an in-memory resume payload, dispatching on
// the file extension. Supported: .pdf, .docx, .txt, .doc.
func Text(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch strings.ToLower(strings.TrimSpace(ext)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	case ".txt":
		return strings.TrimSpace(string(data)), nil
	case ".doc":
		// Legacy .doc has no dedicated parser here; salvage the readable runs.
		return extractPrintable(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plain text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("pdf plain text: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return strings.TrimSpace(stripXMLTags(doc.Editable().GetContent())), nil
}

// stripXMLTags flattens word-processing XML into text, inserting newlines at
// paragraph boundaries.
func stripXMLTags(raw string) string {
	raw = strings.ReplaceAll(raw, "</w:p>", "\n")
	raw = strings.ReplaceAll(raw, "<w:br/>", "\n")

	var buf strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			buf.WriteRune(r)
		}
	}
	// Paragraph closes leave runs of whitespace; collapse blank-heavy output.
	lines := strings.Split(buf.String(), "\n")
	var out []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}

func extractPrintable(data []byte) string {
	var buf strings.Builder
	run := 0
	var pending strings.Builder
	for _, b := range data {
		r := rune(b)
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			pending.WriteRune(r)
			run++
			continue
		}
		// Only keep runs long enough to look like words, not format noise.
		if run >= 4 {
			buf.WriteString(pending.String())
			buf.WriteByte(' ')
		}
		pending.Reset()
		run = 0
	}
	if run >= 4 {
		buf.WriteString(pending.String())
	}
	return strings.TrimSpace(buf.String())
}
