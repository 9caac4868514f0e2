package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/skillhub/internal/apperror"
	"github.com/sakif/skillhub/internal/auth"
	"github.com/sakif/skillhub/internal/model"
)

// mockUserRepo is an in-memory repository.UserRepository.
type mockUserRepo struct {
	users  map[string]*model.User // by ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("user already exists")
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) GetUserByGoogleIDOrEmail(_ context.Context, googleID, email string) (*model.User, error) {
	for _, u := range m.users {
		if (googleID != "" && u.GoogleID == googleID) || u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", googleID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(4)
	return NewAuthService(repo, tokens, passwords, testLogger()), repo
}

func TestSignup_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Signup(context.Background(), "Asha", "ASHA@Example.com", "secret123", model.RoleStudent, "usn-1", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Signup() did not issue a token")
	}
	if result.User.Email != "asha@example.com" {
		t.Errorf("email = %q, want lowercased", result.User.Email)
	}
	if result.User.PasswordHash == "secret123" || result.User.PasswordHash == "" {
		t.Error("password was not hashed")
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Signup(context.Background(), "A", "dup@example.com", "secret123", model.RoleStudent, "", ""); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}

	_, err := svc.Signup(context.Background(), "B", "dup@example.com", "secret456", model.RoleTeacher, "", "")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestSignup_InvalidRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Signup(context.Background(), "A", "a@example.com", "secret123", "admin", "", "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Signup(context.Background(), "A", "a@example.com", "secret123", model.RoleStudent, "", ""); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Login() did not issue a token")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Signup(context.Background(), "A", "a@example.com", "secret123", model.RoleStudent, "", ""); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "a@example.com", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownEmail_SameErrorAsWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLoginOrRegisterGoogle_FirstLoginCreatesStudent(t *testing.T) {
	svc, repo := newTestAuthService(t)

	result, err := svc.LoginOrRegisterGoogle(context.Background(), &auth.GoogleUser{
		Sub:   "google-sub-1",
		Name:  "Gia",
		Email: "gia@example.com",
	})
	if err != nil {
		t.Fatalf("LoginOrRegisterGoogle() error = %v", err)
	}
	if result.User.UserType != model.RoleStudent {
		t.Errorf("userType = %q, want student", result.User.UserType)
	}
	if len(repo.users) != 1 {
		t.Errorf("stored users = %d, want 1", len(repo.users))
	}

	// Second login matches the same account.
	again, err := svc.LoginOrRegisterGoogle(context.Background(), &auth.GoogleUser{
		Sub:   "google-sub-1",
		Name:  "Gia",
		Email: "gia@example.com",
	})
	if err != nil {
		t.Fatalf("second LoginOrRegisterGoogle() error = %v", err)
	}
	if again.User.ID != result.User.ID {
		t.Errorf("second login created a new user: %s != %s", again.User.ID, result.User.ID)
	}
}

func TestLoginOrRegisterGoogle_MatchesLocalAccountByEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	local, err := svc.Signup(context.Background(), "Liam", "liam@example.com", "secret123", model.RoleTeacher, "", "")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	result, err := svc.LoginOrRegisterGoogle(context.Background(), &auth.GoogleUser{
		Sub:   "google-sub-9",
		Name:  "Liam",
		Email: "liam@example.com",
	})
	if err != nil {
		t.Fatalf("LoginOrRegisterGoogle() error = %v", err)
	}
	if result.User.ID != local.User.ID {
		t.Errorf("matched user = %s, want the local account %s", result.User.ID, local.User.ID)
	}
	// The existing role survives — only brand-new accounts default to
	// student.
	if result.User.UserType != model.RoleTeacher {
		t.Errorf("userType = %q, want teacher", result.User.UserType)
	}
}
