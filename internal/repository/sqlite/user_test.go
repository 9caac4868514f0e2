package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/model"
)

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "$2a$04$hash",
		UserType:     model.RoleStudent,
		USN:          "1MS21CS001",
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID == "" {
		t.Error("CreateUser() did not set user.ID")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("CreateUser() did not set timestamps")
	}

	found, err := db.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.Email != "asha@example.com" || found.USN != "1MS21CS001" {
		t.Errorf("persisted user mismatch: %+v", found)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	createTestUser(t, db, "First", "dup@example.com", model.RoleStudent)

	second := &model.User{
		Name:         "Second",
		Email:        "dup@example.com",
		PasswordHash: "$2a$04$other",
		UserType:     model.RoleTeacher,
	}
	err := db.CreateUser(context.Background(), second)
	if err == nil {
		t.Fatal("CreateUser() should reject a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGetUserByGoogleIDOrEmail(t *testing.T) {
	db := newTestDB(t)

	// A Google-born account: no password, google_id set.
	gUser := &model.User{
		Name:     "Gia",
		Email:    "gia@example.com",
		GoogleID: "google-sub-123",
		UserType: model.RoleStudent,
	}
	if err := db.CreateUser(context.Background(), gUser); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	// Match by subject ID (repeat federated login), even with a
	// different email on the token.
	bySub, err := db.GetUserByGoogleIDOrEmail(context.Background(), "google-sub-123", "changed@example.com")
	if err != nil {
		t.Fatalf("GetUserByGoogleIDOrEmail() by sub error = %v", err)
	}
	if bySub.ID != gUser.ID {
		t.Errorf("matched user = %s, want %s", bySub.ID, gUser.ID)
	}

	// A local account logging in with Google for the first time: no
	// google_id row yet, matched by email.
	local := createTestUser(t, db, "Liam", "liam@example.com", model.RoleStudent)
	byEmail, err := db.GetUserByGoogleIDOrEmail(context.Background(), "google-sub-999", "liam@example.com")
	if err != nil {
		t.Fatalf("GetUserByGoogleIDOrEmail() by email error = %v", err)
	}
	if byEmail.ID != local.ID {
		t.Errorf("matched user = %s, want %s", byEmail.ID, local.ID)
	}

	// Unknown identity.
	_, err = db.GetUserByGoogleIDOrEmail(context.Background(), "google-sub-000", "ghost@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateUser_NullableColumnsStayEmpty(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{
		Name:     "NoCreds",
		Email:    "nocreds@example.com",
		GoogleID: "google-sub-777",
		UserType: model.RoleStudent,
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	found, err := db.GetUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if found.PasswordHash != "" {
		t.Errorf("PasswordHash = %q, want empty", found.PasswordHash)
	}
	if found.USN != "" || found.Contact != "" {
		t.Errorf("USN/Contact should be empty, got %q/%q", found.USN, found.Contact)
	}
}
