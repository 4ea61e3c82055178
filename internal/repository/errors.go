// Package repository implements all database queries for the RSVP service.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrCapacityFull is returned when an event has no remaining accepted spots.
var ErrCapacityFull = errors.New("event has reached its maximum number of attendees")

// ErrUnauthorized is returned when the caller does not own the resource
// it is trying to mutate.
var ErrUnauthorized = errors.New("not the owner of this resource")

// ErrDuplicateEmail is returned when an account already exists for an email.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrSessionExpired is returned when a session token exists but is past
// its expiry.
var ErrSessionExpired = errors.New("session expired")
