package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/skillhub/internal/service"
)

// ProgressHandler serves the watch-progress ledger and learning notes.
type ProgressHandler struct {
	progress *service.ProgressService
	logger   *slog.Logger
}

func NewProgressHandler(progress *service.ProgressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{progress: progress, logger: logger}
}

type recordProgressRequest struct {
	StudentID  string `json:"studentId" validate:"required"`
	VideoID    string `json:"videoId" validate:"required"`
	Percentage int    `json:"progressPercentage"`
	Completed  bool   `json:"completed"`
}

// HandleRecordProgress upserts one progress report. The percentage is
// stored as sent; the route is mounted twice because the frontend calls
// both paths.
//
// HTTP: POST /api/course-progress and POST /api/student/course-progress
func (h *ProgressHandler) HandleRecordProgress(w http.ResponseWriter, r *http.Request) {
	var req recordProgressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rec, err := h.progress.RecordProgress(r.Context(), req.StudentID, req.VideoID, req.Percentage, req.Completed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"progress": rec})
}

// HandleStudentProgress returns the student's flat progress list plus
// their active skills.
//
// HTTP: GET /api/student/progress/{studentID}
func (h *ProgressHandler) HandleStudentProgress(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	overview, err := h.progress.GetStudentOverview(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"progress": overview.Progress,
		"skills":   overview.Skills,
	})
}

type saveNoteRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	VideoID   string `json:"videoId" validate:"required"`
	Goals     string `json:"goals"`
	Notes     string `json:"notes"`
}

// HandleSaveNote upserts the learning note for a (student, course) pair.
// Goals and notes are always written together.
//
// HTTP: POST /api/student/learning-data
func (h *ProgressHandler) HandleSaveNote(w http.ResponseWriter, r *http.Request) {
	var req saveNoteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	note, err := h.progress.SaveNote(r.Context(), req.StudentID, req.VideoID, req.Goals, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"learningData": note})
}

// HandleGetNote returns the note for a pair, or an empty note when none
// exists — always 200, never 404, so the form can render blank.
//
// HTTP: GET /api/student/learning-data/{studentID}/{videoID}
func (h *ProgressHandler) HandleGetNote(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	videoID := chi.URLParam(r, "videoID")

	note, err := h.progress.GetNote(r.Context(), studentID, videoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"learningData": note})
}
