package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// compile-time check that *DB implements repository.CourseRepository
var _ repository.CourseRepository = (*DB)(nil)

// CreateCourse inserts a new course. Courses are append-only — there is no
// update or delete path anywhere in the API.
func (db *DB) CreateCourse(ctx context.Context, course *model.Course) error {
	course.ID = xid.New().String()
	course.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO videos (id, title, subject, teacher_id, description, video_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		course.ID,
		course.Title,
		course.Subject,
		course.TeacherID,
		course.Description,
		course.VideoURL,
		course.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting course %q: %w", course.Title, err)
	}

	return nil
}

// GetCourseByID retrieves a single course.
func (db *DB) GetCourseByID(ctx context.Context, id string) (*model.Course, error) {
	var c model.Course
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, subject, teacher_id, description, video_url, created_at
		 FROM videos WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Title, &c.Subject, &c.TeacherID, &c.Description, &c.VideoURL, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("course", id)
		}
		return nil, fmt.Errorf("sqlite: getting course %s: %w", id, err)
	}
	return &c, nil
}

// ListWithStats returns the full catalog with each course's teacher name,
// watcher count, and average progress, newest first. The aggregates come
// from a LEFT JOIN so a course with no watchers still lists, with a count
// of 0 and a NULL average.
func (db *DB) ListWithStats(ctx context.Context) ([]model.CourseStats, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT v.id, v.title, v.subject, v.teacher_id, v.description, v.video_url, v.created_at,
		       u.name,
		       COUNT(cp.id),
		       AVG(cp.progress_percentage)
		FROM videos v
		JOIN users u ON v.teacher_id = u.id
		LEFT JOIN course_progress cp ON v.id = cp.video_id
		GROUP BY v.id, u.name
		ORDER BY v.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing courses: %w", err)
	}
	defer rows.Close()

	var courses []model.CourseStats
	for rows.Next() {
		var (
			c   model.CourseStats
			avg sql.NullFloat64
		)
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Subject, &c.TeacherID, &c.Description, &c.VideoURL, &c.CreatedAt,
			&c.TeacherName, &c.StudentCount, &avg,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning course stats row: %w", err)
		}
		if avg.Valid {
			c.AverageProgress = &avg.Float64
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating course stats: %w", err)
	}

	return courses, nil
}

// ListCoursesForStudent returns every course joined with the given student's own
// progress. Unwatched courses carry 0/false via COALESCE.
func (db *DB) ListCoursesForStudent(ctx context.Context, studentID string) ([]model.CourseListing, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT v.id, v.title, v.subject, v.teacher_id, v.description, v.video_url, v.created_at,
		       u.name,
		       COALESCE(cp.progress_percentage, 0),
		       COALESCE(cp.completed, 0)
		FROM videos v
		JOIN users u ON v.teacher_id = u.id
		LEFT JOIN course_progress cp ON v.id = cp.video_id AND cp.student_id = ?
		ORDER BY v.created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing courses for student %s: %w", studentID, err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// RecommendBySkills finds courses whose subject contains any of the given
// skill names as a case-insensitive substring, left-joined with the
// student's own progress, ordered by that progress ascending with NULL
// (unwatched) first so unseen courses surface before partially-watched
// ones. The substring containment is deliberately naive — it is the
// observable recommendation contract, not a placeholder for fuzzy match.
//
// Callers guarantee skills is non-empty; an empty catalog simply yields an
// empty slice.
func (db *DB) RecommendBySkills(ctx context.Context, studentID string, skills []string, limit int) ([]model.CourseListing, error) {
	conds := make([]string, len(skills))
	args := make([]any, 0, len(skills)+2)
	args = append(args, studentID)
	for i, skill := range skills {
		conds[i] = "v.subject LIKE ?"
		args = append(args, "%"+skill+"%")
	}
	args = append(args, limit)

	query := `
		SELECT v.id, v.title, v.subject, v.teacher_id, v.description, v.video_url, v.created_at,
		       u.name,
		       COALESCE(cp.progress_percentage, 0),
		       COALESCE(cp.completed, 0)
		FROM videos v
		JOIN users u ON v.teacher_id = u.id
		LEFT JOIN course_progress cp ON v.id = cp.video_id AND cp.student_id = ?
		WHERE ` + strings.Join(conds, " OR ") + `
		ORDER BY cp.progress_percentage ASC NULLS FIRST
		LIMIT ?`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: recommending courses by skills: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// RecommendNewest is the zero-skill fallback: the limit most recently
// created courses, newest first. Progress is joined for display but does
// not affect the ordering.
func (db *DB) RecommendNewest(ctx context.Context, studentID string, limit int) ([]model.CourseListing, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT v.id, v.title, v.subject, v.teacher_id, v.description, v.video_url, v.created_at,
		       u.name,
		       COALESCE(cp.progress_percentage, 0),
		       COALESCE(cp.completed, 0)
		FROM videos v
		JOIN users u ON v.teacher_id = u.id
		LEFT JOIN course_progress cp ON v.id = cp.video_id AND cp.student_id = ?
		ORDER BY v.created_at DESC
		LIMIT ?`,
		studentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: recommending newest courses: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func scanListings(rows *sql.Rows) ([]model.CourseListing, error) {
	var listings []model.CourseListing
	for rows.Next() {
		var l model.CourseListing
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Subject, &l.TeacherID, &l.Description, &l.VideoURL, &l.CreatedAt,
			&l.TeacherName, &l.Progress, &l.Completed,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning course listing row: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating course listings: %w", err)
	}
	return listings, nil
}
