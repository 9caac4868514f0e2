package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/skillhub/internal/service"
)

// ReportHandler serves the teacher-facing rollup endpoints.
type ReportHandler struct {
	reports *service.ReportService
	logger  *slog.Logger
}

func NewReportHandler(reports *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// HandleCourseRollup returns the per-course report. Courses nobody has
// watched appear with a zero count and a null average.
//
// HTTP: GET /api/teacher/course-rollup/{teacherID}
func (h *ReportHandler) HandleCourseRollup(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	rollups, err := h.reports.CourseRollups(r.Context(), teacherID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"courses": rollups})
}

// HandleDetailedProgress returns the per-student report. Only students
// with progress on the teacher's courses appear.
//
// HTTP: GET /api/teacher/detailed-progress/{teacherID}
func (h *ReportHandler) HandleDetailedProgress(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	rollups, err := h.reports.StudentRollups(r.Context(), teacherID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"students": rollups})
}

// HandleStudentsProgress returns the flat per-record watch list.
//
// HTTP: GET /api/teacher/students-progress/{teacherID}
func (h *ReportHandler) HandleStudentsProgress(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	rows, err := h.reports.StudentsProgress(r.Context(), teacherID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"progress": rows})
}

// HandleNoteReviews returns the learning notes written against the
// teacher's courses.
//
// HTTP: GET /api/teacher/student-learning-data/{teacherID}
func (h *ReportHandler) HandleNoteReviews(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")

	reviews, err := h.reports.NoteReviews(r.Context(), teacherID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"learningData": reviews})
}
