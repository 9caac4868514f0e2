package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// compile-time check that *DB implements repository.ReportRepository
var _ repository.ReportRepository = (*DB)(nil)

// CourseRollups returns one row per course the teacher owns, with watcher
// count and average progress. LEFT JOIN semantics: a course nobody has
// watched still appears, count 0, average nil.
func (db *DB) CourseRollups(ctx context.Context, teacherID string) ([]model.CourseRollup, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT v.id, v.title, v.subject, v.teacher_id, v.description, v.video_url, v.created_at,
		       COUNT(DISTINCT cp.student_id),
		       AVG(cp.progress_percentage)
		FROM videos v
		LEFT JOIN course_progress cp ON v.id = cp.video_id
		WHERE v.teacher_id = ?
		GROUP BY v.id
		ORDER BY v.created_at DESC`,
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: building course rollups for teacher %s: %w", teacherID, err)
	}
	defer rows.Close()

	var rollups []model.CourseRollup
	for rows.Next() {
		var (
			r   model.CourseRollup
			avg sql.NullFloat64
		)
		if err := rows.Scan(
			&r.Course.ID, &r.Course.Title, &r.Course.Subject, &r.Course.TeacherID,
			&r.Course.Description, &r.Course.VideoURL, &r.Course.CreatedAt,
			&r.StudentCount, &avg,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning course rollup row: %w", err)
		}
		if avg.Valid {
			r.AverageProgress = &avg.Float64
		}
		rollups = append(rollups, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating course rollups: %w", err)
	}

	return rollups, nil
}

// StudentRollups returns one entry per student who has progress on at
// least one of the teacher's courses. INNER JOIN semantics, deliberately
// asymmetric with CourseRollups: no progress, no row.
//
// The query pulls the flat (student, course, progress) rows ordered by
// student, with u.id breaking name ties so each student's rows stay
// contiguous; the fold into per-student rollups with completion counts and a
// rounded average happens here rather than in SQL, which keeps the query
// portable and the rounding rule in one obvious place.
func (db *DB) StudentRollups(ctx context.Context, teacherID string) ([]model.StudentRollup, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT u.id, u.name, u.email,
		       v.id, v.title, v.subject,
		       cp.progress_percentage, cp.completed, cp.last_watched_at
		FROM course_progress cp
		JOIN users u ON cp.student_id = u.id
		JOIN videos v ON cp.video_id = v.id
		WHERE v.teacher_id = ? AND u.user_type = 'student'
		ORDER BY u.name ASC, u.id, v.created_at DESC`,
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: building student rollups for teacher %s: %w", teacherID, err)
	}
	defer rows.Close()

	var (
		rollups []model.StudentRollup
		current *model.StudentRollup
		sum     int
	)
	flush := func() {
		if current == nil {
			return
		}
		current.TotalCourses = len(current.CourseProgress)
		current.AverageProgress = int(math.Round(float64(sum) / float64(current.TotalCourses)))
		rollups = append(rollups, *current)
	}
	for rows.Next() {
		var (
			studentID, studentName, studentEmail string
			snip                                 model.CourseSnippet
		)
		if err := rows.Scan(
			&studentID, &studentName, &studentEmail,
			&snip.VideoID, &snip.VideoTitle, &snip.Subject,
			&snip.Progress, &snip.Completed, &snip.LastWatched,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning student rollup row: %w", err)
		}

		if current == nil || current.StudentID != studentID {
			flush()
			current = &model.StudentRollup{
				StudentID:    studentID,
				StudentName:  studentName,
				StudentEmail: studentEmail,
			}
			sum = 0
		}
		current.CourseProgress = append(current.CourseProgress, snip)
		sum += snip.Progress
		if snip.Completed {
			current.CompletedCourses++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating student rollups: %w", err)
	}
	flush()

	return rollups, nil
}

// StudentWatchRows returns every progress record against the teacher's
// courses as a flat list, most recent activity first.
func (db *DB) StudentWatchRows(ctx context.Context, teacherID string) ([]model.StudentWatchRow, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT u.name, v.title, cp.progress_percentage, cp.completed, cp.last_watched_at
		FROM course_progress cp
		JOIN users u ON cp.student_id = u.id
		JOIN videos v ON cp.video_id = v.id
		WHERE v.teacher_id = ?
		ORDER BY cp.last_watched_at DESC`,
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing watch rows for teacher %s: %w", teacherID, err)
	}
	defer rows.Close()

	var watches []model.StudentWatchRow
	for rows.Next() {
		var w model.StudentWatchRow
		if err := rows.Scan(&w.StudentName, &w.VideoTitle, &w.Percentage, &w.Completed, &w.LastWatchedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning watch row: %w", err)
		}
		watches = append(watches, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating watch rows: %w", err)
	}

	return watches, nil
}

// NoteReviews returns every learning note written against the teacher's
// courses, most recently updated first.
func (db *DB) NoteReviews(ctx context.Context, teacherID string) ([]model.NoteReview, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT u.name, v.title, sld.goals, sld.notes, sld.created_at, sld.updated_at
		FROM student_learning_data sld
		JOIN users u ON sld.student_id = u.id
		JOIN videos v ON sld.video_id = v.id
		WHERE v.teacher_id = ?
		ORDER BY sld.updated_at DESC`,
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing note reviews for teacher %s: %w", teacherID, err)
	}
	defer rows.Close()

	var reviews []model.NoteReview
	for rows.Next() {
		var n model.NoteReview
		if err := rows.Scan(&n.StudentName, &n.VideoTitle, &n.Goals, &n.Notes, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning note review row: %w", err)
		}
		reviews = append(reviews, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating note reviews: %w", err)
	}

	return reviews, nil
}
