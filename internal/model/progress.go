package model

import "time"

// ProgressRecord tracks how far a student has watched one course.
//
// At most one record exists per (student, course) pair — enforced by a
// UNIQUE constraint and upsert-on-conflict writes. Every write is
// last-write-wins: a later report overwrites percentage and completed
// wholesale, and nothing requires the percentage to increase. The player
// is expected to report monotonically from continuous playback, but the
// store accepts whatever it sends.
//
// Percentage is not clamped server-side. The player is the sole source of
// the value and the stored contract preserves it as sent.
type ProgressRecord struct {
	ID            string    `json:"id"`
	StudentID     string    `json:"studentId"`
	VideoID       string    `json:"videoId"`
	Percentage    int       `json:"progressPercentage"`
	Completed     bool      `json:"completed"`
	LastWatchedAt time.Time `json:"lastWatchedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CourseProgress is the flat per-course view returned to a student:
// the course title joined with the stored percentage.
type CourseProgress struct {
	Title      string `json:"title"`
	Percentage int    `json:"progressPercentage"`
}

// LearningNote holds a student's free-text goals and notes for one course.
// Same UNIQUE(student, course) upsert contract as ProgressRecord, but an
// independent lifecycle — a note can exist without any watch progress.
// Goals and notes are always written together; the caller resends both.
type LearningNote struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	VideoID   string    `json:"videoId"`
	Goals     string    `json:"goals"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
