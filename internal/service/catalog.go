package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

const MaxCourseTitleLength = 200

// CatalogService handles the course catalog: teacher uploads and the two
// list views.
type CatalogService struct {
	courses repository.CourseRepository
	users   repository.UserRepository
	logger  *slog.Logger
}

func NewCatalogService(courses repository.CourseRepository, users repository.UserRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{courses: courses, users: users, logger: logger}
}

// CreateCourse registers a new course for a teacher. The video URL is an
// opaque media locator; upload and serving of the file itself happen
// outside this backend.
func (s *CatalogService) CreateCourse(ctx context.Context, teacherID, title, subject, description, videoURL string) (*model.Course, error) {
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "course title is required")
	}
	if len(title) > MaxCourseTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("course title must be %d characters or less", MaxCourseTitleLength))
	}
	if teacherID == "" {
		return nil, apperror.ValidationFailed("teacherId", "teacher ID is required")
	}

	// The owner must exist and actually be a teacher.
	teacher, err := s.users.GetUserByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.UserType != model.RoleTeacher {
		return nil, apperror.Forbidden("only teachers can create courses")
	}

	course := &model.Course{
		Title:       title,
		Subject:     strings.TrimSpace(subject),
		TeacherID:   teacherID,
		Description: strings.TrimSpace(description),
		VideoURL:    strings.TrimSpace(videoURL),
	}
	if err := s.courses.CreateCourse(ctx, course); err != nil {
		s.logger.Error("failed to create course",
			slog.String("teacherID", teacherID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating course: %w", err)
	}

	s.logger.Info("course created",
		slog.String("id", course.ID),
		slog.String("teacherID", teacherID),
	)

	return course, nil
}

// ListCourses returns the full catalog with per-course watcher counts and
// average progress, newest first.
func (s *CatalogService) ListCourses(ctx context.Context) ([]model.CourseStats, error) {
	courses, err := s.courses.ListWithStats(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}

// AvailableCourses returns every course joined with the given student's
// own progress, unwatched courses carrying 0/false.
func (s *CatalogService) AvailableCourses(ctx context.Context, studentID string) ([]model.CourseListing, error) {
	if studentID == "" {
		return nil, apperror.ValidationFailed("studentId", "student ID is required")
	}

	listings, err := s.courses.ListCoursesForStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("failed to list available courses",
			slog.String("studentID", studentID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing available courses: %w", err)
	}
	return listings, nil
}
