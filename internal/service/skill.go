package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// The known skill vocabulary. These are the checkboxes on the profile
// page; anything else in a request is a client bug and is rejected.
var (
	knownLanguages = map[string]bool{
		"javascript": true,
		"python":     true,
		"java":       true,
		"cpp":        true,
	}
	knownTools = map[string]bool{
		"git":        true,
		"docker":     true,
		"algorithms": true,
		"apis":       true,
	}
)

// SkillService handles the per-student skill registry and profile.
type SkillService struct {
	skills repository.SkillRepository
	logger *slog.Logger
}

func NewSkillService(skills repository.SkillRepository, logger *slog.Logger) *SkillService {
	return &SkillService{skills: skills, logger: logger}
}

// SaveProfile applies a profile save: the GitHub link plus two sparse
// skill maps, name → active flag.
//
// The merge is sparse by contract. Only the skills present in the maps
// are upserted; a row for a skill the request does not mention keeps its
// previous state. Saving {python: true} and later {java: true} leaves
// both active. Toggling off requires an explicit false.
//
// Names are validated against the vocabulary up front — the whole save is
// rejected before any row is written, so a bad request never half-applies.
// Mentioned skills are processed in sorted name order per map, making the
// write sequence deterministic regardless of JSON map iteration order.
func (s *SkillService) SaveProfile(ctx context.Context, studentID, githubProfile string, languages, tools map[string]bool) error {
	if studentID == "" {
		return apperror.ValidationFailed("studentId", "student ID is required")
	}
	for name := range languages {
		if !knownLanguages[name] {
			return apperror.ValidationFailed("languages", fmt.Sprintf("unknown language skill %q", name))
		}
	}
	for name := range tools {
		if !knownTools[name] {
			return apperror.ValidationFailed("tools", fmt.Sprintf("unknown tool skill %q", name))
		}
	}

	if err := s.skills.UpsertProfile(ctx, &model.StudentProfile{
		UserID:        studentID,
		GitHubProfile: githubProfile,
	}); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if err := s.upsertFlags(ctx, studentID, model.SkillKindLanguage, languages); err != nil {
		return err
	}
	if err := s.upsertFlags(ctx, studentID, model.SkillKindTool, tools); err != nil {
		return err
	}

	s.logger.Info("profile saved",
		slog.String("studentID", studentID),
		slog.Int("languages", len(languages)),
		slog.Int("tools", len(tools)),
	)

	return nil
}

func (s *SkillService) upsertFlags(ctx context.Context, studentID, kind string, flags map[string]bool) error {
	names := make([]string, 0, len(flags))
	for name := range flags {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		flag := &model.SkillFlag{
			StudentID: studentID,
			Name:      name,
			Kind:      kind,
			Active:    flags[name],
		}
		if err := s.skills.UpsertSkillFlag(ctx, flag); err != nil {
			return fmt.Errorf("upserting skill %q: %w", name, err)
		}
	}
	return nil
}

// ActiveSkills returns the student's active skill rows.
func (s *SkillService) ActiveSkills(ctx context.Context, studentID string) ([]model.SkillFlag, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "student ID is required")
	}
	return s.skills.ListActiveSkills(ctx, studentID)
}
