package embcache

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
)

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: 7}, nil
}

func TestCachedEmbedder_SecondCallHitsCache(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{1, 2, 3}}
	c := New(inner, nil, zap.NewNop())

	first, err := c.Embed(context.Background(), "python developer")
	if err != nil {
		t.Fatalf("first Embed: %v", err)
	}
	second, err := c.Embed(context.Background(), "python developer")
	if err != nil {
		t.Fatalf("second Embed: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner calls: got %d, want 1", inner.calls)
	}
	if !reflect.DeepEqual(first.Embedding, second.Embedding) {
		t.Errorf("cached vector differs: %v vs %v", first.Embedding, second.Embedding)
	}
	if second.TotalTokens != 0 {
		t.Errorf("cache hit tokens: got %d, want 0", second.TotalTokens)
	}
}

func TestCachedEmbedder_DistinctTextsMiss(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{1}}
	c := New(inner, nil, zap.NewNop())

	_, _ = c.Embed(context.Background(), "first")
	_, _ = c.Embed(context.Background(), "second")

	if inner.calls != 2 {
		t.Errorf("inner calls: got %d, want 2", inner.calls)
	}
	if c.Len() != 2 {
		t.Errorf("cache size: got %d, want 2", c.Len())
	}
}

func TestCachedEmbedder_ErrorNotCached(t *testing.T) {
	wantErr := errors.New("provider down")
	inner := &mockEmbedder{err: wantErr}
	c := New(inner, nil, zap.NewNop())

	if _, err := c.Embed(context.Background(), "text"); !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want wrapped provider error", err)
	}
	if c.Len() != 0 {
		t.Errorf("failed embed was cached, size %d", c.Len())
	}

	inner.err = nil
	inner.vec = []float32{4, 5}
	if _, err := c.Embed(context.Background(), "text"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner calls: got %d, want 2", inner.calls)
	}
}
