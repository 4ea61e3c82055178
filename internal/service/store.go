// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"time"

	"github.com/evently-app/evently/internal/model"
)

// UserStore is the persistence surface the auth service needs for users.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, fullName string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// SessionStore is the persistence surface for login sessions.
// Implemented by repository.SessionRepository.
type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (*model.Session, error)
	Get(ctx context.Context, token string) (*model.Session, error)
	Refresh(ctx context.Context, token string, ttl time.Duration) (*model.Session, error)
	Delete(ctx context.Context, token string) error
}

// EventStore is the persistence surface for events.
// Implemented by repository.EventRepository.
type EventStore interface {
	Create(ctx context.Context, ownerID string, req model.CreateEventRequest) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Event, error)
	Delete(ctx context.Context, ownerID, eventID string) error
}

// RsvpStore is the persistence surface for RSVPs. Reconcile must be
// atomic with respect to concurrent submissions for the same event.
// Implemented by repository.RsvpRepository.
type RsvpStore interface {
	Reconcile(ctx context.Context, eventID string, sub model.RsvpSubmission) (*model.RSVP, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.RSVP, error)
	CountAccepted(ctx context.Context, eventID string) (int, error)
}
