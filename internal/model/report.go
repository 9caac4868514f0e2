package model

import "time"

// CourseRollup is one row of the teacher's per-course report.
//
// Built with a LEFT JOIN: a course nobody has watched still appears, with
// StudentCount 0 and AverageProgress nil. The average of an empty set is
// null, never 0 — the JSON carries that distinction through the pointer.
type CourseRollup struct {
	Course          Course   `json:"course"`
	StudentCount    int      `json:"studentCount"`
	AverageProgress *float64 `json:"averageProgress"`
}

// CourseSnippet is one course's progress inside a StudentRollup.
type CourseSnippet struct {
	VideoID     string    `json:"videoId"`
	VideoTitle  string    `json:"videoTitle"`
	Subject     string    `json:"subject"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	LastWatched time.Time `json:"lastWatched"`
}

// StudentRollup is one row of the teacher's per-student report.
//
// Built with an INNER JOIN — intentionally asymmetric with CourseRollup:
// a student with no progress on any of the teacher's courses does not
// appear at all. AverageProgress is the mean percentage across the
// student's records, rounded to the nearest integer.
type StudentRollup struct {
	StudentID        string          `json:"studentId"`
	StudentName      string          `json:"studentName"`
	StudentEmail     string          `json:"studentEmail"`
	CourseProgress   []CourseSnippet `json:"courseProgress"`
	CompletedCourses int             `json:"completedCourses"`
	TotalCourses     int             `json:"totalCourses"`
	AverageProgress  int             `json:"averageProgress"`
}

// StudentWatchRow is one row of the flat students-progress list: every
// progress record against the teacher's courses, newest activity first.
type StudentWatchRow struct {
	StudentName   string    `json:"studentName"`
	VideoTitle    string    `json:"videoTitle"`
	Percentage    int       `json:"progressPercentage"`
	Completed     bool      `json:"completed"`
	LastWatchedAt time.Time `json:"lastWatchedAt"`
}

// NoteReview is one learning note joined with its author and course,
// for the teacher's review feed.
type NoteReview struct {
	StudentName string    `json:"studentName"`
	VideoTitle  string    `json:"videoTitle"`
	Goals       string    `json:"goals"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
