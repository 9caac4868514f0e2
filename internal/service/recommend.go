package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// DefaultRecommendLimit caps both the skill-matched and the fallback
// recommendation lists.
const DefaultRecommendLimit = 5

// RecommendService picks courses for a student based on their active
// skills.
type RecommendService struct {
	courses repository.CourseRepository
	skills  repository.SkillRepository
	logger  *slog.Logger
}

func NewRecommendService(courses repository.CourseRepository, skills repository.SkillRepository, logger *slog.Logger) *RecommendService {
	return &RecommendService{courses: courses, skills: skills, logger: logger}
}

// RecommendedCourses returns up to DefaultRecommendLimit courses for the
// student.
//
// With at least one active skill, candidates are courses whose subject
// contains any skill name as a case-insensitive substring, ordered by the
// student's own progress ascending with unwatched courses first — the
// least-started matching course leads the list. With no active skills the
// fallback is simply the newest courses. An empty catalog yields an empty
// list, never an error.
func (s *RecommendService) RecommendedCourses(ctx context.Context, studentID string) ([]model.CourseListing, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "student ID is required")
	}

	skillNames, err := s.skills.ActiveSkillNames(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing active skills: %w", err)
	}

	if len(skillNames) == 0 {
		listings, err := s.courses.RecommendNewest(ctx, studentID, DefaultRecommendLimit)
		if err != nil {
			return nil, fmt.Errorf("recommending newest courses: %w", err)
		}
		s.logger.Info("recommended newest courses (no active skills)",
			slog.String("studentID", studentID),
			slog.Int("count", len(listings)),
		)
		return listings, nil
	}

	listings, err := s.courses.RecommendBySkills(ctx, studentID, skillNames, DefaultRecommendLimit)
	if err != nil {
		return nil, fmt.Errorf("recommending courses by skills: %w", err)
	}

	s.logger.Info("recommended courses by skills",
		slog.String("studentID", studentID),
		slog.Int("skills", len(skillNames)),
		slog.Int("count", len(listings)),
	)

	return listings, nil
}
