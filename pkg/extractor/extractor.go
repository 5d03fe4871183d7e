package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var (
	ErrEmptyFile       = errors.New("extractor: empty file")
	ErrUnsupportedType = errors.New("extractor: unsupported file type")
)

// SupportedExtensions lists the upload extensions ExtractText understands.
var SupportedExtensions = []string{".pdf", ".txt", ".md", ".markdown"}

// ExtractText returns the raw text of an uploaded lecture document. PDF pages are
// joined by newlines so page-level noise stays line-addressable for the normalizer.
func ExtractText(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	if isPDF(data) {
		return extractPDF(data)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return "", fmt.Errorf("%w: %s has a .pdf extension but no %%PDF header", ErrUnsupportedType, filename)
	case ".txt", ".md", ".markdown", "":
		if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
			return "", fmt.Errorf("%w: %s is not valid UTF-8 text", ErrUnsupportedType, filename)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
}

// IsSupported reports whether filename carries an extension ExtractText handles.
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
