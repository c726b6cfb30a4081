package analyze

import (
	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
	"github.com/Suraj317github/ats-resume-optimizer/internal/keywords"
)

// Extractor converts an uploaded document into plain text.
type Extractor interface {
	Extract(doc domain.Document) (string, error)
}

// KeywordExtractor turns normalized text into a keyword set.
type KeywordExtractor interface {
	Extract(text string) (keywords.Set, error)
}
