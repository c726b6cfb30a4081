package domain

import (
	"fmt"
	"math"
)

// DefaultWeights is the blend used by applicant tracking systems in practice:
// exact keyword hits dominate, semantic context refines.
var DefaultWeights = Weights{Keyword: 0.6, Semantic: 0.4}

// Weights defines the linear blend of the two component scores.
type Weights struct {
	Keyword  float64
	Semantic float64
}

// Validate checks that the weights form a convex combination.
func (w Weights) Validate() error {
	if w.Keyword < 0 || w.Semantic < 0 {
		return fmt.Errorf("weights must be non-negative, got keyword=%v semantic=%v", w.Keyword, w.Semantic)
	}
	if math.Abs(w.Keyword+w.Semantic-1) > 1e-9 {
		return fmt.Errorf("weights must sum to 1, got %v", w.Keyword+w.Semantic)
	}
	return nil
}

// Blend combines the keyword and semantic scores into the final score.
// Inputs and output are in [0,1]. NaN inputs surface as ErrIncompleteScore.
func (w Weights) Blend(keyword, semantic float64) (float64, error) {
	final := keyword*w.Keyword + semantic*w.Semantic
	if math.IsNaN(final) {
		return 0, fmt.Errorf("%w: keyword=%v semantic=%v", ErrIncompleteScore, keyword, semantic)
	}
	return final, nil
}

// ScoreResult is the outcome of one analysis. Created once per invocation,
// consumed by presentation, never persisted.
type ScoreResult struct {
	ID            string   `json:"id"`
	KeywordScore  float64  `json:"keyword_score"`
	SemanticScore float64  `json:"semantic_score"`
	FinalScore    float64  `json:"final_score"`
	Matched       []string `json:"matched_keywords"`
	Missing       []string `json:"missing_keywords"`
}
