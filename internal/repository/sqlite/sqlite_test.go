package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/skillhub/internal/model"
)

// newTestDB opens a fresh in-memory database per test. The connection is
// destroyed with the test, so nothing leaks between cases.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, name, email, userType string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$04$testhash",
		UserType:     userType,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return user
}

func createTestCourse(t *testing.T, db *DB, teacherID, title, subject string) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:     title,
		Subject:   subject,
		TeacherID: teacherID,
		VideoURL:  "https://cdn.example.com/" + title,
	}
	if err := db.CreateCourse(context.Background(), course); err != nil {
		t.Fatalf("failed to create test course %s: %v", title, err)
	}
	return course
}

// setCourseCreatedAt backdates a course row directly. xid-based rows
// created in the same second share a created_at, so ordering tests pin
// explicit timestamps.
func setCourseCreatedAt(t *testing.T, db *DB, courseID string, at time.Time) {
	t.Helper()
	if _, err := db.conn.Exec(`UPDATE videos SET created_at = ? WHERE id = ?`, at, courseID); err != nil {
		t.Fatalf("failed to set course created_at: %v", err)
	}
}

func recordTestProgress(t *testing.T, db *DB, studentID, videoID string, pct int, completed bool) *model.ProgressRecord {
	t.Helper()
	rec := &model.ProgressRecord{
		StudentID:  studentID,
		VideoID:    videoID,
		Percentage: pct,
		Completed:  completed,
	}
	if err := db.UpsertProgress(context.Background(), rec); err != nil {
		t.Fatalf("failed to record test progress: %v", err)
	}
	return rec
}
