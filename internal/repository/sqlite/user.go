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

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user. The email UNIQUE constraint is the source of
// truth for duplicates — a violation is translated into a Conflict error
// rather than surfaced as a raw driver error.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, google_id, user_type, usn, contact, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		nullIfEmpty(user.PasswordHash),
		nullIfEmpty(user.GoogleID),
		user.UserType,
		nullIfEmpty(user.USN),
		nullIfEmpty(user.Contact),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user already exists")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetUserByID retrieves a user by internal ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ?`, email)
}

// GetUserByGoogleIDOrEmail matches a federated login against an existing row,
// either by the Google subject ID (repeat login) or by email (a local
// account logging in with Google for the first time).
func (db *DB) GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE google_id = ? OR email = ?`, googleID, email)
}

func (db *DB) getUser(ctx context.Context, where string, args ...any) (*model.User, error) {
	var (
		u            model.User
		passwordHash sql.NullString
		googleID     sql.NullString
		usn          sql.NullString
		contact      sql.NullString
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, google_id, user_type, usn, contact, created_at, updated_at
		 FROM users `+where,
		args...,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&passwordHash,
		&googleID,
		&u.UserType,
		&usn,
		&contact,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprintf("%v", args[0]))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}

	u.PasswordHash = passwordHash.String
	u.GoogleID = googleID.String
	u.USN = usn.String
	u.Contact = contact.String

	return &u, nil
}

// nullIfEmpty maps "" to SQL NULL so the nullable columns stay NULL for
// the credential type an account doesn't have.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite does not export a typed error for this, so the check
// matches the stable message prefix the driver produces.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
