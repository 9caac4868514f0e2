// Package model defines the data structures used throughout the application.
package model

import "time"

// User roles. The role is fixed at signup — there is no migration path
// between student and teacher accounts.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a registered account.
//
// An account is created either through local signup (PasswordHash set,
// GoogleID empty) or through the first Google federated login (GoogleID set,
// PasswordHash empty). Both columns are nullable in the database; an empty
// string here means that credential type is absent.
//
// USN is the student number supplied at signup; teachers leave it blank.
// Contact is an optional phone number. Neither is validated beyond presence.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	GoogleID     string    `json:"-"` // Google's "sub" claim, stable per account
	UserType     string    `json:"userType"` // RoleStudent or RoleTeacher
	USN          string    `json:"usn,omitempty"`
	Contact      string    `json:"contact,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
