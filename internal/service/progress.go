package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// ProgressService handles the watch-progress ledger and learning notes.
type ProgressService struct {
	progress repository.ProgressRepository
	notes    repository.NoteRepository
	skills   repository.SkillRepository
	logger   *slog.Logger
}

func NewProgressService(
	progress repository.ProgressRepository,
	notes repository.NoteRepository,
	skills repository.SkillRepository,
	logger *slog.Logger,
) *ProgressService {
	return &ProgressService{progress: progress, notes: notes, skills: skills, logger: logger}
}

// RecordProgress upserts the (student, course) progress row. Last write
// wins: the percentage is stored exactly as sent, with no clamping and no
// monotonicity check — a report lower than the stored value simply
// replaces it. The player is the sole source of the number.
func (s *ProgressService) RecordProgress(ctx context.Context, studentID, videoID string, percentage int, completed bool) (*model.ProgressRecord, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "student ID is required")
	}
	if videoID == "" {
		return nil, apperror.ValidationFailed("videoId", "video ID is required")
	}

	rec := &model.ProgressRecord{
		StudentID:  studentID,
		VideoID:    videoID,
		Percentage: percentage,
		Completed:  completed,
	}
	if err := s.progress.UpsertProgress(ctx, rec); err != nil {
		s.logger.Error("failed to record progress",
			slog.String("studentID", studentID),
			slog.String("videoID", videoID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("recording progress: %w", err)
	}

	s.logger.Info("progress recorded",
		slog.String("studentID", studentID),
		slog.String("videoID", videoID),
		slog.Int("percentage", percentage),
	)

	return rec, nil
}

// StudentOverview is the student dashboard payload: flat per-course
// progress plus the active skill rows.
type StudentOverview struct {
	Progress []model.CourseProgress `json:"progress"`
	Skills   []model.SkillFlag      `json:"skills"`
}

// GetStudentOverview returns the student's progress list and active
// skills in one call.
func (s *ProgressService) GetStudentOverview(ctx context.Context, studentID string) (*StudentOverview, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "student ID is required")
	}

	progress, err := s.progress.ListStudentProgress(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing student progress: %w", err)
	}
	skills, err := s.skills.ListActiveSkills(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing student skills: %w", err)
	}

	return &StudentOverview{Progress: progress, Skills: skills}, nil
}

// SaveNote upserts the learning note for a (student, course) pair. Goals
// and notes are written together every time; a caller that wants to keep
// one field must resend it.
func (s *ProgressService) SaveNote(ctx context.Context, studentID, videoID, goals, notes string) (*model.LearningNote, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "student ID is required")
	}
	if videoID == "" {
		return nil, apperror.ValidationFailed("videoId", "video ID is required")
	}

	note := &model.LearningNote{
		StudentID: studentID,
		VideoID:   videoID,
		Goals:     goals,
		Notes:     notes,
	}
	if err := s.notes.UpsertNote(ctx, note); err != nil {
		s.logger.Error("failed to save learning note",
			slog.String("studentID", studentID),
			slog.String("videoID", videoID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving learning note: %w", err)
	}

	return note, nil
}

// GetNote returns the learning note for a (student, course) pair. An
// absent pair is a soft miss: the caller gets an empty note, not an
// error, so the frontend can render a blank form without special-casing.
func (s *ProgressService) GetNote(ctx context.Context, studentID, videoID string) (*model.LearningNote, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "student ID is required")
	}
	if videoID == "" {
		return nil, apperror.ValidationFailed("videoId", "video ID is required")
	}

	note, err := s.notes.GetNote(ctx, studentID, videoID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &model.LearningNote{StudentID: studentID, VideoID: videoID}, nil
		}
		return nil, fmt.Errorf("getting learning note: %w", err)
	}
	return note, nil
}
