// Package service contains the business logic layer: validation, rules,
// and orchestration between repositories and the auth utilities. Services
// accept primitives and return domain errors; HTTP concerns stay in the
// handler package.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/auth"
	"github.com/sakif/skillhub/internal/model"
	"github.com/sakif/skillhub/internal/repository"
)

// AuthService handles signup, login, and Google federated login.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the authenticated user and the issued JWT so the
// handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Signup registers a local account. The role is fixed here forever —
// there is no later migration between student and teacher.
//
// A duplicate email surfaces as apperror.ErrConflict, raised by the
// store's UNIQUE constraint rather than a racy check-then-insert.
func (s *AuthService) Signup(ctx context.Context, name, email, password, userType, usn, contact string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if userType != model.RoleStudent && userType != model.RoleTeacher {
		return nil, apperror.ValidationFailed("userType", "userType must be student or teacher")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		UserType:     userType,
		USN:          strings.TrimSpace(usn),
		Contact:      strings.TrimSpace(contact),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up",
		slog.String("userID", user.ID),
		slog.String("userType", user.UserType),
	)

	return s.issueToken(user)
}

// Login authenticates a local account. Both an unknown email and a wrong
// password come back as the same Unauthorized error so the response does
// not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("email", "email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	// A Google-only account has no password hash to check against.
	if user.PasswordHash == "" {
		return nil, apperror.Unauthorized("invalid credentials")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid credentials")
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return s.issueToken(user)
}

// LoginOrRegisterGoogle handles a verified Google identity from either
// flow. Matching is by Google subject ID or email: a repeat federated
// login hits the subject ID, a local account signing in with Google for
// the first time hits the email. An unknown identity creates a student
// account — teachers are never provisioned this way.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, gUser *auth.GoogleUser) (*AuthResult, error) {
	if gUser == nil || gUser.Sub == "" {
		return nil, fmt.Errorf("service/auth: Google user must not be nil")
	}

	user, err := s.users.GetUserByGoogleIDOrEmail(ctx, gUser.Sub, strings.ToLower(gUser.Email))
	switch {
	case err == nil:
		// existing account
	case errors.Is(err, apperror.ErrNotFound):
		user = &model.User{
			Name:     gUser.Name,
			Email:    strings.ToLower(gUser.Email),
			GoogleID: gUser.Sub,
			UserType: model.RoleStudent,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("service/auth: creating Google user: %w", err)
		}
		s.logger.Info("user registered via Google", slog.String("userID", user.ID))
	default:
		return nil, fmt.Errorf("service/auth: matching Google user: %w", err)
	}

	s.logger.Info("user authenticated via Google", slog.String("userID", user.ID))

	return s.issueToken(user)
}

// GetUserByID returns the user for the given internal ID. Used by the
// /api/me handler after the middleware validates the session token.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}
	return s.users.GetUserByID(ctx, id)
}

// ValidateToken delegates to the TokenService so callers only need the
// service package.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return userID, nil
}

func (s *AuthService) issueToken(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
