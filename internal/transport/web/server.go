// Package web serves the single-page UI: an upload form, the rendered
// score report, plus health and metrics endpoints for operators.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Suraj317github/ats-resume-optimizer/internal/domain"
	"github.com/Suraj317github/ats-resume-optimizer/internal/metrics"
	analyzeuc "github.com/Suraj317github/ats-resume-optimizer/internal/usecase/analyze"
	healthuc "github.com/Suraj317github/ats-resume-optimizer/internal/usecase/health"
)

// Server renders the analysis UI over HTTP.
type Server struct {
	analyze        *analyzeuc.Service
	health         *healthuc.Service
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewServer creates a web server around the analysis and health services.
func NewServer(
	analyze *analyzeuc.Service,
	health *healthuc.Service,
	maxUploadBytes int64,
	logger *zap.Logger,
) *Server {
	return &Server{
		analyze:        analyze,
		health:         health,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/", s.handleIndex)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{})
}

// handleAnalyze accepts the multipart form (resume file + job description
// textarea) and renders the score report into the same page.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.renderPage(w, http.StatusRequestEntityTooLarge, pageData{
			Error: "The uploaded file is too large.",
		})
		return
	}

	jobDescription := r.FormValue("job_description")

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{
			Error:          "Please attach a resume file.",
			JobDescription: jobDescription,
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{
			Error:          "Could not read the uploaded file.",
			JobDescription: jobDescription,
		})
		return
	}

	format, err := domain.DetectFormat(header.Filename)
	if err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{
			Error:          "Unsupported file type. Upload a PDF, DOCX, or TXT resume.",
			FileName:       header.Filename,
			JobDescription: jobDescription,
		})
		return
	}

	doc := domain.Document{Name: header.Filename, Format: format, Data: data}
	result, err := s.analyze.Analyze(r.Context(), doc, jobDescription)
	if err != nil {
		s.handleAnalysisError(w, err, header.Filename, jobDescription)
		return
	}

	s.renderPage(w, http.StatusOK, pageData{
		Result:         &result,
		FileName:       header.Filename,
		JobDescription: jobDescription,
	})
}

func (s *Server) handleAnalysisError(w http.ResponseWriter, err error, fileName, jobDescription string) {
	data := pageData{FileName: fileName, JobDescription: jobDescription}

	switch {
	case errors.Is(err, domain.ErrIncompleteScore):
		data.Error = "Both a resume and a job description are required to score."
		s.renderPage(w, http.StatusBadRequest, data)
	case errors.Is(err, domain.ErrExtractionFailure):
		data.Error = "Could not extract text from the resume. The file may be corrupt or image-only."
		s.renderPage(w, http.StatusUnprocessableEntity, data)
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		s.logger.Error("embedding provider error", zap.Error(err))
		data.Error = "The embedding provider is unavailable. Try again shortly."
		s.renderPage(w, http.StatusBadGateway, data)
	default:
		s.logger.Error("analysis failed", zap.Error(err))
		data.Error = "Analysis failed due to an internal error."
		s.renderPage(w, http.StatusInternalServerError, data)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
	}
}
