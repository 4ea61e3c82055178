package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/evently-app/evently/internal/model"
	"github.com/evently-app/evently/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login failure without revealing
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// DefaultSessionTTL is the lifetime of a freshly created or refreshed session.
const DefaultSessionTTL = 24 * time.Hour

// AuthService handles account registration and session lifecycle.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	ttl      time.Duration
}

// NewAuthService constructs an AuthService. A non-positive ttl falls back
// to DefaultSessionTTL.
func NewAuthService(users UserStore, sessions SessionStore, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{users: users, sessions: sessions, ttl: ttl}
}

// Register validates the request, hashes the password, and creates the
// account.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, validationf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash), strings.TrimSpace(req.FullName))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &model.AuthResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt, User: *user}, nil
}

// Authenticate resolves a session token to its user id. This is the
// identity resolver every authenticated operation goes through.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", repository.ErrNotFound
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

// Refresh rotates the session token and extends its expiry.
func (s *AuthService) Refresh(ctx context.Context, token string) (*model.AuthResponse, error) {
	sess, err := s.sessions.Refresh(ctx, token, s.ttl)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	return &model.AuthResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt, User: *user}, nil
}

// Logout ends the session. Logging out an already-dead token is fine.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CurrentUser returns the account behind a user id.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// normalizeEmail trims, lowercases, and syntax-checks an email address.
// All emails are stored normalized so equality checks stay exact.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", validationf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationf("invalid email address")
	}
	return email, nil
}
