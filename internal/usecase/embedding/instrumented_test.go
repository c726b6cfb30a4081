package embedding

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
)

type plainEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *plainEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: 3}, nil
}

type batchCapableEmbedder struct {
	plainEmbedder
	batchCalls int
}

func (m *batchCapableEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.batchCalls++
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vec
	}
	return domain.BatchEmbeddingResult{Embeddings: out}, nil
}

func TestInstrumentedEmbedder_Delegates(t *testing.T) {
	inner := &plainEmbedder{vec: []float32{1, 2}}
	e := NewInstrumentedEmbedder(inner, "local", "minilm", zap.NewNop())

	res, err := e.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(res.Embedding) != 2 {
		t.Errorf("embedding: got %v", res.Embedding)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls: got %d, want 1", inner.calls)
	}
}

func TestInstrumentedEmbedder_WrapsError(t *testing.T) {
	wantErr := errors.New("boom")
	e := NewInstrumentedEmbedder(&plainEmbedder{err: wantErr}, "local", "minilm", zap.NewNop())

	_, err := e.Embed(context.Background(), "text")
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want wrapped inner error", err)
	}
}

func TestInstrumentedEmbedder_BatchUsesNativeBatch(t *testing.T) {
	inner := &batchCapableEmbedder{plainEmbedder: plainEmbedder{vec: []float32{1}}}
	e := NewInstrumentedEmbedder(inner, "openai", "small", zap.NewNop())

	res, err := e.BatchEmbed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("BatchEmbed: %v", err)
	}
	if inner.batchCalls != 1 {
		t.Errorf("batch calls: got %d, want 1", inner.batchCalls)
	}
	if inner.calls != 0 {
		t.Errorf("single-embed calls: got %d, want 0", inner.calls)
	}
	if len(res.Embeddings) != 2 {
		t.Errorf("embeddings: got %d, want 2", len(res.Embeddings))
	}
}

func TestInstrumentedEmbedder_BatchFallsBack(t *testing.T) {
	inner := &plainEmbedder{vec: []float32{1}}
	e := NewInstrumentedEmbedder(inner, "local", "minilm", zap.NewNop())

	res, err := e.BatchEmbed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("BatchEmbed: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner calls: got %d, want 3", inner.calls)
	}
	if len(res.Embeddings) != 3 {
		t.Errorf("embeddings: got %d, want 3", len(res.Embeddings))
	}
}

func TestInstrumentedEmbedder_BatchEmptyInput(t *testing.T) {
	inner := &plainEmbedder{vec: []float32{1}}
	e := NewInstrumentedEmbedder(inner, "local", "minilm", zap.NewNop())

	res, err := e.BatchEmbed(context.Background(), nil)
	if err != nil {
		t.Fatalf("BatchEmbed: %v", err)
	}
	if inner.calls != 0 || len(res.Embeddings) != 0 {
		t.Errorf("empty batch touched inner embedder")
	}
}
