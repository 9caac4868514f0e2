package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/skillhub/internal/service"
)

// SkillHandler serves the profile save and the recommendation endpoint.
type SkillHandler struct {
	skills    *service.SkillService
	recommend *service.RecommendService
	logger    *slog.Logger
}

func NewSkillHandler(skills *service.SkillService, recommend *service.RecommendService, logger *slog.Logger) *SkillHandler {
	return &SkillHandler{skills: skills, recommend: recommend, logger: logger}
}

type saveProfileRequest struct {
	StudentID     string          `json:"studentId" validate:"required"`
	GitHubProfile string          `json:"githubProfile"`
	Languages     map[string]bool `json:"languages"`
	Tools         map[string]bool `json:"tools"`
}

// HandleSaveProfile applies a profile save: GitHub link plus sparse
// language and tool maps. Skills absent from the maps keep their stored
// state.
//
// HTTP: POST /api/student/profile
func (h *SkillHandler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req saveProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.skills.SaveProfile(r.Context(), req.StudentID, req.GitHubProfile, req.Languages, req.Tools); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"message": "profile updated"})
}

// HandleRecommendedCourses returns up to five courses picked by the
// student's active skills, or the newest five when no skills are set.
//
// HTTP: GET /api/student/recommended-courses/{studentID}
func (h *SkillHandler) HandleRecommendedCourses(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")

	listings, err := h.recommend.RecommendedCourses(r.Context(), studentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"courses": listings})
}
