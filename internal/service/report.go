package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// ReportService builds the teacher-facing rollups.
//
// The two main reports are deliberately asymmetric. The per-course rollup
// is a LEFT JOIN: a course nobody has watched still appears, with a zero
// count and a null average. The per-student rollup is an INNER JOIN: a
// student with no progress on the teacher's courses does not appear at
// all. Both shapes are part of the API contract.
type ReportService struct {
	reports repository.ReportRepository
	logger  *slog.Logger
}

func NewReportService(reports repository.ReportRepository, logger *slog.Logger) *ReportService {
	return &ReportService{reports: reports, logger: logger}
}

// CourseRollups returns one row per course the teacher owns.
func (s *ReportService) CourseRollups(ctx context.Context, teacherID string) ([]model.CourseRollup, error) {
	if teacherID == "" {
		return nil, apperror.ValidationFailed("teacherId", "teacher ID is required")
	}

	rollups, err := s.reports.CourseRollups(ctx, teacherID)
	if err != nil {
		s.logger.Error("failed to build course rollups",
			slog.String("teacherID", teacherID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("building course rollups: %w", err)
	}
	return rollups, nil
}

// StudentRollups returns one entry per student with progress on at least
// one of the teacher's courses.
func (s *ReportService) StudentRollups(ctx context.Context, teacherID string) ([]model.StudentRollup, error) {
	if teacherID == "" {
		return nil, apperror.ValidationFailed("teacherId", "teacher ID is required")
	}

	rollups, err := s.reports.StudentRollups(ctx, teacherID)
	if err != nil {
		s.logger.Error("failed to build student rollups",
			slog.String("teacherID", teacherID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("building student rollups: %w", err)
	}
	return rollups, nil
}

// StudentsProgress returns the flat list of every progress record against
// the teacher's courses, newest activity first.
func (s *ReportService) StudentsProgress(ctx context.Context, teacherID string) ([]model.StudentWatchRow, error) {
	if teacherID == "" {
		return nil, apperror.ValidationFailed("teacherId", "teacher ID is required")
	}

	rows, err := s.reports.StudentWatchRows(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("listing students progress: %w", err)
	}
	return rows, nil
}

// NoteReviews returns every learning note written against the teacher's
// courses, most recently updated first.
func (s *ReportService) NoteReviews(ctx context.Context, teacherID string) ([]model.NoteReview, error) {
	if teacherID == "" {
		return nil, apperror.ValidationFailed("teacherId", "teacher ID is required")
	}

	reviews, err := s.reports.NoteReviews(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("listing note reviews: %w", err)
	}
	return reviews, nil
}
