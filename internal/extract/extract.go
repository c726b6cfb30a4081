// Package extract converts uploaded PDF and DOCX byte streams into plain
// text. Extraction is stateless; failures surface as domain sentinels and
// abort only the current analysis.
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
)

// Service extracts plain text from documents.
type Service struct{}

// New creates an extraction service.
func New() *Service {
	return &Service{}
}

// Extract produces plain text from a document, or fails with
// domain.ErrUnsupportedFormat / domain.ErrExtractionFailure.
func (s *Service) Extract(doc domain.Document) (string, error) {
	switch doc.Format {
	case domain.FormatText:
		return string(doc.Data), nil
	case domain.FormatPDF:
		return extractPDF(doc.Data)
	case domain.FormatDOCX:
		return extractDOCX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.Format)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %v", domain.ErrExtractionFailure, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// a single unreadable page does not void the rest
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: pdf contains no extractable text", domain.ErrExtractionFailure)
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %v", domain.ErrExtractionFailure, err)
	}
	defer doc.Close()

	return docxRunsToText(doc.Editable().GetContent()), nil
}

var docxTextRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

var xmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

// docxRunsToText pulls the text runs out of word/document.xml content.
// The docx library exposes the raw XML; only <w:t> elements carry text.
func docxRunsToText(content string) string {
	matches := docxTextRun.FindAllStringSubmatch(content, -1)
	runs := make([]string, 0, len(matches))
	for _, m := range matches {
		runs = append(runs, xmlEntities.Replace(m[1]))
	}
	return strings.Join(runs, " ")
}
