package model

import "time"

// Course is a video course uploaded by a teacher.
//
// The table is still called "videos" (the original product name for a
// course) and courses are append-only: no update or delete path exists.
// VideoURL is an opaque media locator — upload and serving of the file
// itself are handled outside this backend.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	TeacherID   string    `json:"teacherId"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CourseListing is a catalog row: a course joined with its teacher's name
// and, when listing for a student, that student's own progress.
type CourseListing struct {
	Course
	TeacherName string `json:"teacherName"`
	Progress    int    `json:"progress"`  // 0 when the student has no record
	Completed   bool   `json:"completed"` // false when the student has no record
}

// CourseStats is a catalog row with aggregate watch data across all
// students, used by the public course list.
type CourseStats struct {
	Course
	TeacherName     string   `json:"teacherName"`
	StudentCount    int      `json:"studentCount"`
	AverageProgress *float64 `json:"averageProgress"` // nil when nobody has watched
}
