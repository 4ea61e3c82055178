package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/evently-app/evently/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GenerateToken returns a 32-character random hex token.
func GenerateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// SessionRepository handles persistence for login sessions.
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session for a user with the given lifetime.
func (r *SessionRepository) Create(ctx context.Context, userID string, ttl time.Duration) (*model.Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		sess.Token, sess.UserID, sess.ExpiresAt, sess.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Get returns the session for a token. An expired session is deleted on
// touch and reported as ErrSessionExpired.
func (r *SessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	var s model.Session
	err := r.db.QueryRow(ctx,
		`SELECT token, user_id, expires_at, created_at
		 FROM sessions WHERE token = $1`,
		token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(s.ExpiresAt) {
		_, _ = r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
		return nil, ErrSessionExpired
	}
	return &s, nil
}

// Refresh rotates a session token and extends its expiry. The old token
// stops authenticating the moment the transaction commits.
func (r *SessionRepository) Refresh(ctx context.Context, token string, ttl time.Duration) (*model.Session, error) {
	current, err := r.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	newToken, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	next := &model.Session{
		Token:     newToken,
		UserID:    current.UserID,
		ExpiresAt: time.Now().UTC().Add(ttl),
		CreatedAt: current.CreatedAt,
	}

	_, err = tx.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return nil, fmt.Errorf("delete old session: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		next.Token, next.UserID, next.ExpiresAt, next.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert refreshed session: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return next, nil
}

// Delete removes a session. Deleting an unknown token is a no-op.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
