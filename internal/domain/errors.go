package domain

import "errors"

var (
	// ErrUnsupportedFormat signals a document format the extractor cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtractionFailure signals corrupt or unreadable document content.
	ErrExtractionFailure = errors.New("document extraction failed")
	// ErrIncompleteScore signals that no score can be produced (empty resume or job description).
	ErrIncompleteScore = errors.New("incomplete score")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrDimensionMismatch signals vectors of different dimensions.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
