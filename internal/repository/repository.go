// Package repository declares the storage interfaces implemented by the
// sqlite package. Services depend on these interfaces, never on the
// concrete store, so tests can substitute in-memory fakes.
//
// One sqlite.DB value implements every interface here; the method names
// carry the entity so the implementations can live on a single type.
package repository

import (
	"context"

	"github.com/sakif/skillhub/internal/model"
)

// UserRepository stores identity records.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// GetUserByGoogleIDOrEmail matches a federated login against an
	// existing account, either by the stable Google subject ID or by
	// email.
	GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*model.User, error)
}

// CourseRepository stores the catalog. Courses are append-only.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *model.Course) error
	GetCourseByID(ctx context.Context, id string) (*model.Course, error)
	// ListWithStats returns every course with its teacher's name, watcher
	// count and average progress, newest first.
	ListWithStats(ctx context.Context) ([]model.CourseStats, error)
	// ListCoursesForStudent returns every course left-joined with the
	// given student's own progress (0/false when unwatched), newest first.
	ListCoursesForStudent(ctx context.Context, studentID string) ([]model.CourseListing, error)
	// RecommendBySkills returns up to limit courses whose subject contains
	// any of the given skill names (case-insensitive), ordered by the
	// student's progress ascending with unwatched courses first.
	RecommendBySkills(ctx context.Context, studentID string, skills []string, limit int) ([]model.CourseListing, error)
	// RecommendNewest returns up to limit of the most recently created
	// courses, joined with the student's progress.
	RecommendNewest(ctx context.Context, studentID string, limit int) ([]model.CourseListing, error)
}

// ProgressRepository is the watch-progress ledger.
type ProgressRepository interface {
	// UpsertProgress inserts or overwrites the record keyed by
	// (student, video). Last write wins; the stored percentage is
	// whatever was sent last.
	UpsertProgress(ctx context.Context, rec *model.ProgressRecord) error
	ListStudentProgress(ctx context.Context, studentID string) ([]model.CourseProgress, error)
}

// NoteRepository stores per-course learning goals and notes.
type NoteRepository interface {
	UpsertNote(ctx context.Context, note *model.LearningNote) error
	// GetNote returns apperror.ErrNotFound for an absent pair; the
	// service layer converts that into the empty-note soft miss.
	GetNote(ctx context.Context, studentID, videoID string) (*model.LearningNote, error)
}

// SkillRepository is the per-student skill registry plus the profile row.
type SkillRepository interface {
	// UpsertSkillFlag inserts or updates one (student, skill) row. Rows
	// for skills not mentioned in a profile save are never touched.
	UpsertSkillFlag(ctx context.Context, flag *model.SkillFlag) error
	UpsertProfile(ctx context.Context, profile *model.StudentProfile) error
	ListActiveSkills(ctx context.Context, studentID string) ([]model.SkillFlag, error)
	ActiveSkillNames(ctx context.Context, studentID string) ([]string, error)
}

// ReportRepository builds the teacher-facing rollups.
type ReportRepository interface {
	// CourseRollups uses a LEFT JOIN: unwatched courses appear with a
	// zero count and a nil average.
	CourseRollups(ctx context.Context, teacherID string) ([]model.CourseRollup, error)
	// StudentRollups uses an INNER JOIN: students with no progress on the
	// teacher's courses are absent.
	StudentRollups(ctx context.Context, teacherID string) ([]model.StudentRollup, error)
	StudentWatchRows(ctx context.Context, teacherID string) ([]model.StudentWatchRow, error)
	NoteReviews(ctx context.Context, teacherID string) ([]model.NoteReview, error)
}
