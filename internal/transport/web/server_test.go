package web

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
	"github.com/Suraj317github/ats-resume-optimizer/internal/extract"
	"github.com/Suraj317github/ats-resume-optimizer/internal/keywords"
	analyzeuc "github.com/Suraj317github/ats-resume-optimizer/internal/usecase/analyze"
	healthuc "github.com/Suraj317github/ats-resume-optimizer/internal/usecase/health"
)

// --- Mocks ---

// splitKeywords treats every whitespace-separated token as a keyword.
type splitKeywords struct{}

func (splitKeywords) Extract(text string) (keywords.Set, error) {
	set := make(keywords.Set)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok]++
	}
	return set, nil
}

type stubEmbedder struct {
	err error
}

func (m *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.3, 0.7}}, nil
}

type stubChecker struct {
	err error
}

func (m *stubChecker) HealthCheck(_ context.Context) error { return m.err }

func newTestServer(t *testing.T, emb domain.Embedder, check healthuc.EmbeddingChecker) *Server {
	t.Helper()
	svc, err := analyzeuc.New(extract.New(), splitKeywords{}, emb, domain.DefaultWeights, zap.NewNop())
	if err != nil {
		t.Fatalf("analyze.New: %v", err)
	}
	return NewServer(svc, healthuc.New(check), 1<<20, zap.NewNop())
}

// multipartBody builds a form with an attached resume file and a
// job_description field.
func multipartBody(t *testing.T, fileName, fileContent, jobDescription string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if fileName != "" {
		fw, err := mw.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write([]byte(fileContent)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := mw.WriteField("job_description", jobDescription); err != nil {
		t.Fatalf("WriteField: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// --- Tests ---

func TestIndex(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{})
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `action="/analyze"`) {
		t.Error("index page missing the analyze form")
	}
	if strings.Contains(body, "Match report") {
		t.Error("index page should not contain a report before any analysis")
	}
}

func TestAnalyze_RendersReport(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{})

	body, ctype := multipartBody(t,
		"resume.txt",
		"python sql developer",
		"python sql engineer wanted",
	)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	got := rec.Body.String()
	if !strings.Contains(got, "Match report") {
		t.Error("response missing report section")
	}
	if !strings.Contains(got, "resume.txt") {
		t.Error("response missing file name")
	}
	// "engineer" and "wanted" are in the JD only
	if !strings.Contains(got, "Missing keywords") {
		t.Error("response missing the missing-keywords section")
	}
}

func TestAnalyze_NoFile(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{})

	body, ctype := multipartBody(t, "", "", "python engineer")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "attach a resume") {
		t.Error("response missing the attach-a-resume message")
	}
}

func TestAnalyze_UnsupportedFormat(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{})

	body, ctype := multipartBody(t, "resume.odt", "text", "python engineer")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unsupported file type") {
		t.Error("response missing the unsupported-type message")
	}
}

func TestAnalyze_EmptyJobDescription(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{})

	body, ctype := multipartBody(t, "resume.txt", "python developer", "   ")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestAnalyze_EmbedderDown(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{err: domain.ErrEmbeddingProviderError}, &stubChecker{})

	body, ctype := multipartBody(t, "resume.txt", "python", "python")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{})
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestHealthz_Degraded(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{err: errors.New("provider down")})
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"degraded"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubEmbedder{}, &stubChecker{})
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
}
