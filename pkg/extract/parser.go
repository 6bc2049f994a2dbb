package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupportedFormat is returned for any extension outside pdf/docx/csv.
var ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, docx and csv are allowed")

// ErrEmptyContent is returned when a file parses but yields no usable text.
// The caller is expected to turn this into a failed analysis.
var ErrEmptyContent = errors.New("no text could be extracted from the file")

// minContentLen guards against files that technically parse but carry no
// meaningful content (e.g. scanned PDFs without a text layer).
const minContentLen = 50

// Result holds the extracted plain text of a source document.
type Result struct {
	Text  string
	Pages int
}

// ExtractText extracts plain text from supported resume formats.
func ExtractText(filename string, data []byte) (Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDocx(data)
	case ".csv":
		return extractCSV(data)
	default:
		return Result{}, ErrUnsupportedFormat
	}
}

func extractPDF(data []byte) (Result, error) {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("read pdf: %w", err)
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return Result{}, fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return Result{}, err
	}
	return finish(buf.String(), r.NumPage())
}

func extractDocx(data []byte) (Result, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	xml := doc.Editable().GetContent()
	// Paragraph boundaries become newlines before tags are stripped.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := reTags.ReplaceAllString(xml, " ")
	return finish(txt, 1)
}

// extractCSV normalizes separators so the model sees plain columns.
func extractCSV(data []byte) (Result, error) {
	txt := string(data)
	txt = strings.ReplaceAll(txt, ";", " ")
	txt = strings.ReplaceAll(txt, "\t", " ")
	return finish(txt, 1)
}

func finish(raw string, pages int) (Result, error) {
	text := normalizeWhitespace(raw)
	if len(text) < minContentLen {
		return Result{}, ErrEmptyContent
	}
	return Result{Text: text, Pages: pages}, nil
}

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reBlanks = regexp.MustCompile(`[ \t\r\f\v]+`)
	reLines  = regexp.MustCompile(`\n+`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
