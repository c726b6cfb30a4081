// Package analyze runs the scoring pipeline: extract, normalize, keyword
// overlap, semantic similarity, weighted blend. One invocation per user
// action, no state shared between invocations.
package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
	"github.com/Suraj317github/ats-resume-optimizer/internal/keywords"
	"github.com/Suraj317github/ats-resume-optimizer/internal/metrics"
	"github.com/Suraj317github/ats-resume-optimizer/internal/textnorm"
)

// Service scores a resume against a job description.
type Service struct {
	extractor Extractor
	kw        KeywordExtractor
	embedder  domain.Embedder
	weights   domain.Weights
	logger    *zap.Logger
}

// New creates an analysis service.
func New(
	extractor Extractor,
	kw KeywordExtractor,
	embedder domain.Embedder,
	weights domain.Weights,
	logger *zap.Logger,
) (*Service, error) {
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return &Service{
		extractor: extractor,
		kw:        kw,
		embedder:  embedder,
		weights:   weights,
		logger:    logger,
	}, nil
}

// Analyze extracts the resume document and scores it against the job
// description. Extraction failures abort this analysis only.
func (s *Service) Analyze(ctx context.Context, doc domain.Document, jobDescription string) (domain.ScoreResult, error) {
	resumeText, err := s.extractor.Extract(doc)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return domain.ScoreResult{}, fmt.Errorf("extract %s: %w", doc.Name, err)
	}
	return s.AnalyzeText(ctx, resumeText, jobDescription)
}

// AnalyzeText scores already-extracted resume text against the job
// description. Either side being empty after normalization yields
// domain.ErrIncompleteScore.
func (s *Service) AnalyzeText(ctx context.Context, resumeText, jobDescription string) (domain.ScoreResult, error) {
	start := time.Now()

	result, err := s.score(ctx, resumeText, jobDescription)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return domain.ScoreResult{}, err
	}

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("Analysis completed",
		zap.String("analysis_id", result.ID),
		zap.Float64("keyword_score", result.KeywordScore),
		zap.Float64("semantic_score", result.SemanticScore),
		zap.Float64("final_score", result.FinalScore),
		zap.Int("missing_keywords", len(result.Missing)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (s *Service) score(ctx context.Context, resumeText, jobDescription string) (domain.ScoreResult, error) {
	resume := textnorm.Normalize(resumeText)
	jd := textnorm.Normalize(jobDescription)

	if jd == "" {
		return domain.ScoreResult{}, fmt.Errorf("%w: job description is empty", domain.ErrIncompleteScore)
	}
	if resume == "" {
		return domain.ScoreResult{}, fmt.Errorf("%w: resume is empty", domain.ErrIncompleteScore)
	}

	resumeKW, err := s.kw.Extract(resume)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("extract resume keywords: %w", err)
	}
	jdKW, err := s.kw.Extract(jd)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("extract job description keywords: %w", err)
	}

	match := keywords.Overlap(resumeKW, jdKW)

	semantic, err := s.semanticScore(ctx, resume, jd)
	if err != nil {
		return domain.ScoreResult{}, err
	}

	final, err := s.weights.Blend(match.Score, semantic)
	if err != nil {
		return domain.ScoreResult{}, fmt.Errorf("blend scores: %w", err)
	}

	return domain.ScoreResult{
		ID:            uuid.NewString(),
		KeywordScore:  match.Score,
		SemanticScore: semantic,
		FinalScore:    final,
		Matched:       match.Matched,
		Missing:       match.Missing,
	}, nil
}

// semanticScore embeds both texts and returns their cosine similarity,
// clamped to [0,1].
func (s *Service) semanticScore(ctx context.Context, resume, jd string) (float64, error) {
	var vecs [][]float32

	if be, ok := s.embedder.(domain.BatchEmbedder); ok {
		res, err := be.BatchEmbed(ctx, []string{resume, jd})
		if err != nil {
			return 0, fmt.Errorf("embed texts: %w", err)
		}
		vecs = res.Embeddings
	} else {
		res, err := domain.BatchFallback(ctx, s.embedder, []string{resume, jd})
		if err != nil {
			return 0, fmt.Errorf("embed texts: %w", err)
		}
		vecs = res.Embeddings
	}

	sim, err := domain.Cosine(vecs[0], vecs[1])
	if err != nil {
		return 0, fmt.Errorf("compare embeddings: %w", err)
	}
	return sim, nil
}
