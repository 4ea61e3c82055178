// Package model defines the core domain types for the event RSVP service.
package model

import "time"

// RSVP status values. These are the only two answers a respondent can give.
const (
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// User is a registered organizer account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a server-side login session. The token is the bearer
// credential; an expired session never authenticates.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is an organizer-owned gathering. Date and Time are stored as the
// organizer entered them ("2006-01-02" and "15:04"); both formats sort
// chronologically as text. A nil MaxAttendees means unlimited capacity.
type Event struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Location     string    `json:"location"`
	MaxAttendees *int32    `json:"max_attendees"`
	CreatedAt    time.Time `json:"created_at"`
}

// RSVP is one respondent's answer for one event, keyed by (event, email).
type RSVP struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RsvpSubmission is a normalized RSVP form submission handed to the
// reconciliation workflow. Email is already trimmed and lowercased.
type RsvpSubmission struct {
	Name    string
	Email   string
	Status  string
	Message string
}

// EventDetail is the public RSVP-link view of an event: the event itself
// plus how full it currently is.
type EventDetail struct {
	Event
	AcceptedCount  int    `json:"accepted_count"`
	SpotsRemaining *int32 `json:"spots_remaining"`
}

// EventSummary is the owner-facing aggregation over an event's RSVP set.
type EventSummary struct {
	Total          int    `json:"total"`
	Accepted       int    `json:"accepted"`
	Declined       int    `json:"declined"`
	SpotsRemaining *int32 `json:"spots_remaining"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	MaxAttendees *int32 `json:"max_attendees"`
}

// SubmitRsvpRequest is the payload of the public RSVP form.
type SubmitRsvpRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RegisterRequest is the payload for creating an organizer account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and refresh.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
