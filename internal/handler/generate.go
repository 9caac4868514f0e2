package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/skillhub/internal/generator"
)

// GenerateHandler fronts the external text-generation API. Upstream
// failures come back as 502; an unconfigured client as 503.
type GenerateHandler struct {
	gen    *generator.Client
	logger *slog.Logger
}

func NewGenerateHandler(gen *generator.Client, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{gen: gen, logger: logger}
}

// HandleResume generates resume text from a posted profile.
//
// HTTP: POST /api/generate/resume
func (h *GenerateHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	var req generator.ResumeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	text, err := h.gen.GenerateResume(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"text": text})
}

// HandleJobDescription generates a job posting.
//
// HTTP: POST /api/generate/job-description
func (h *GenerateHandler) HandleJobDescription(w http.ResponseWriter, r *http.Request) {
	var req generator.JobDescriptionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	text, err := h.gen.GenerateJobDescription(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"text": text})
}

// HandleQuiz generates an assessment quiz.
//
// HTTP: POST /api/generate/quiz
func (h *GenerateHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	var req generator.QuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	text, err := h.gen.GenerateQuiz(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"text": text})
}

// HandleSummary generates a course summary.
//
// HTTP: POST /api/generate/summary
func (h *GenerateHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	var req generator.SummaryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	text, err := h.gen.GenerateSummary(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"text": text})
}
