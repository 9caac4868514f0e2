package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// compile-time checks
var (
	_ repository.ProgressRepository = (*DB)(nil)
	_ repository.NoteRepository     = (*DB)(nil)
)

// UpsertProgress records a watch-progress report.
//
// One atomic statement keyed by UNIQUE(student_id, video_id): the first
// report for a pair inserts, every later report overwrites percentage and
// completed wholesale. Last write wins — the store does not compare the
// incoming percentage against the stored one, so a lower value replaces a
// higher one without complaint. Concurrent reports for the same pair are
// serialized by the conflict clause; a duplicate-key race can never
// surface as an error.
//
// After the write the row is read back so the caller gets the canonical
// record (original ID and timestamps included).
func (db *DB) UpsertProgress(ctx context.Context, rec *model.ProgressRecord) error {
	now := time.Now()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO course_progress (id, student_id, video_id, progress_percentage, completed, last_watched_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (student_id, video_id)
		DO UPDATE SET
			progress_percentage = excluded.progress_percentage,
			completed           = excluded.completed,
			last_watched_at     = excluded.last_watched_at,
			updated_at          = excluded.updated_at`,
		xid.New().String(),
		rec.StudentID,
		rec.VideoID,
		rec.Percentage,
		rec.Completed,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting progress (student=%s video=%s): %w", rec.StudentID, rec.VideoID, err)
	}

	return db.conn.QueryRowContext(ctx,
		`SELECT id, student_id, video_id, progress_percentage, completed, last_watched_at, updated_at
		 FROM course_progress WHERE student_id = ? AND video_id = ?`,
		rec.StudentID, rec.VideoID,
	).Scan(
		&rec.ID, &rec.StudentID, &rec.VideoID, &rec.Percentage, &rec.Completed,
		&rec.LastWatchedAt, &rec.UpdatedAt,
	)
}

// ListStudentProgress returns the student's progress joined with course titles.
// A flat, unpaginated join — the per-student course count is small.
func (db *DB) ListStudentProgress(ctx context.Context, studentID string) ([]model.CourseProgress, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT v.title, cp.progress_percentage
		FROM course_progress cp
		JOIN videos v ON cp.video_id = v.id
		WHERE cp.student_id = ?`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing progress for student %s: %w", studentID, err)
	}
	defer rows.Close()

	var progress []model.CourseProgress
	for rows.Next() {
		var p model.CourseProgress
		if err := rows.Scan(&p.Title, &p.Percentage); err != nil {
			return nil, fmt.Errorf("sqlite: scanning progress row: %w", err)
		}
		progress = append(progress, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating progress rows: %w", err)
	}

	return progress, nil
}

// UpsertNote inserts or overwrites a learning note keyed by
// (student, video). Goals and notes are written together every time; the
// caller is responsible for resending a field it wants preserved.
func (db *DB) UpsertNote(ctx context.Context, note *model.LearningNote) error {
	now := time.Now()

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO student_learning_data (id, student_id, video_id, goals, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (student_id, video_id)
		DO UPDATE SET
			goals      = excluded.goals,
			notes      = excluded.notes,
			updated_at = excluded.updated_at`,
		xid.New().String(),
		note.StudentID,
		note.VideoID,
		note.Goals,
		note.Notes,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting learning note (student=%s video=%s): %w", note.StudentID, note.VideoID, err)
	}

	return db.conn.QueryRowContext(ctx,
		`SELECT id, student_id, video_id, goals, notes, created_at, updated_at
		 FROM student_learning_data WHERE student_id = ? AND video_id = ?`,
		note.StudentID, note.VideoID,
	).Scan(
		&note.ID, &note.StudentID, &note.VideoID, &note.Goals, &note.Notes,
		&note.CreatedAt, &note.UpdatedAt,
	)
}

// GetNote fetches the learning note for a (student, video) pair.
// Returns ErrNotFound for an absent pair; the service layer turns that
// into the `{goals:"", notes:""}` soft miss the API promises.
func (db *DB) GetNote(ctx context.Context, studentID, videoID string) (*model.LearningNote, error) {
	var n model.LearningNote
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, student_id, video_id, goals, notes, created_at, updated_at
		 FROM student_learning_data WHERE student_id = ? AND video_id = ?`,
		studentID, videoID,
	).Scan(&n.ID, &n.StudentID, &n.VideoID, &n.Goals, &n.Notes, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("learning note", studentID+"/"+videoID)
		}
		return nil, fmt.Errorf("sqlite: getting learning note: %w", err)
	}
	return &n, nil
}
