package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported document format.
type Format string

const (
	// FormatPDF is a PDF document.
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word document.
	FormatDOCX Format = "docx"
	// FormatText is a plain text document.
	FormatText Format = "txt"
)

// Document is one uploaded file. It exists only for the duration of a single
// analysis and is never persisted.
type Document struct {
	Name   string
	Format Format
	Data   []byte
}

// DetectFormat maps a file name to a Format by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}
