// Package extract turns raw document bytes into plain text, selected by file
// extension.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FileType tags the extraction route derived from a file's extension.
type FileType string

// Recognized file types. Anything outside this set is rejected before
// extraction is attempted.
const (
	TypeTxt     FileType = "txt"
	TypePDF     FileType = "pdf"
	TypeDocx    FileType = "docx"
	TypeDoc     FileType = "doc"
	TypeUnknown FileType = "unknown"
)

var (
	// ErrUnsupportedFormat marks files whose extension is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractorUnavailable marks formats that are recognized but whose
	// extraction is delegated to an external converter not wired in here.
	ErrExtractorUnavailable = errors.New("no extractor available for format")
)

// DetectType maps a file name to its extraction route.
func DetectType(fileName string) FileType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return TypeTxt
	case ".pdf":
		return TypePDF
	case ".docx":
		return TypeDocx
	case ".doc":
		return TypeDoc
	default:
		return TypeUnknown
	}
}

// Text extracts plain text from data according to the file's extension.
func Text(fileName string, data []byte) (string, error) {
	switch DetectType(fileName) {
	case TypeTxt:
		return string(data), nil
	case TypeDocx:
		return docxText(data)
	case TypePDF:
		return "", fmt.Errorf("%s: pdf text extraction is handled by an external converter: %w", fileName, ErrExtractorUnavailable)
	case TypeDoc:
		return "", fmt.Errorf("%s: legacy doc extraction is handled by an external converter: %w", fileName, ErrExtractorUnavailable)
	default:
		return "", fmt.Errorf("%s: %w", fileName, ErrUnsupportedFormat)
	}
}
