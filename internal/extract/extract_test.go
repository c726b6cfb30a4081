package extract

import (
	"errors"
	"testing"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
)

func TestExtract_PlainText(t *testing.T) {
	s := New()

	got, err := s.Extract(domain.Document{
		Name:   "resume.txt",
		Format: domain.FormatText,
		Data:   []byte("Experienced Python developer"),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Experienced Python developer" {
		t.Errorf("got %q", got)
	}
}

func TestExtract_UnknownFormat(t *testing.T) {
	s := New()

	_, err := s.Extract(domain.Document{Name: "resume.odt", Format: "odt"})
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	s := New()

	_, err := s.Extract(domain.Document{
		Name:   "resume.pdf",
		Format: domain.FormatPDF,
		Data:   []byte("%PDF-1.7 this is not a real pdf body"),
	})
	if !errors.Is(err, domain.ErrExtractionFailure) {
		t.Fatalf("got %v, want ErrExtractionFailure", err)
	}
}

func TestExtract_CorruptDOCX(t *testing.T) {
	s := New()

	_, err := s.Extract(domain.Document{
		Name:   "resume.docx",
		Format: domain.FormatDOCX,
		Data:   []byte("not a zip archive"),
	})
	if !errors.Is(err, domain.ErrExtractionFailure) {
		t.Fatalf("got %v, want ErrExtractionFailure", err)
	}
}

func TestDocxRunsToText(t *testing.T) {
	content := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Python developer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">SQL &amp; Docker</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got := docxRunsToText(content)
	want := "Python developer SQL & Docker"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDocxRunsToText_NoRuns(t *testing.T) {
	if got := docxRunsToText("<w:document></w:document>"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
