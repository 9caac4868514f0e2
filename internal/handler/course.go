package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/skillhub/internal/service"
)

// CourseHandler serves the catalog endpoints.
type CourseHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

func NewCourseHandler(catalog *service.CatalogService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{catalog: catalog, logger: logger}
}

type createCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Subject     string `json:"subject"`
	TeacherID   string `json:"teacherId" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

// HandleCreateCourse registers a new course. The video URL is accepted
// as an opaque string; media upload happens elsewhere.
//
// HTTP: POST /api/videos
func (h *CourseHandler) HandleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	course, err := h.catalog.CreateCourse(r.Context(), req.TeacherID, req.Title, req.Subject, req.Description, req.VideoURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"video": course})
}

// HandleListCourses returns the full catalog with watcher counts and
// average progress.
//
// HTTP: GET /api/videos
func (h *CourseHandler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalog.ListCourses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"videos": courses})
}

// HandleAvailableCourses returns every course joined with the student's
// own progress.
//
// HTTP: GET /api/available-courses/{studentID}
func (h *CourseHandler) HandleAvailableCourses(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	listings, err := h.catalog.AvailableCourses(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"courses": listings})
}
