package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evently-app/evently/internal/model"
	"github.com/evently-app/evently/internal/repository"
)

// RsvpService orchestrates RSVP submission and owner-side reads.
type RsvpService struct {
	events EventStore
	rsvps  RsvpStore
}

// NewRsvpService constructs an RsvpService with its dependencies.
func NewRsvpService(events EventStore, rsvps RsvpStore) *RsvpService {
	return &RsvpService{events: events, rsvps: rsvps}
}

// Submit validates and normalizes one RSVP submission and hands it to the
// atomic reconcile in the store. After a successful call the (event,
// email) pair has exactly one row, holding the latest answer.
func (s *RsvpService) Submit(ctx context.Context, eventID string, req model.SubmitRsvpRequest) (*model.RSVP, error) {
	if eventID == "" {
		return nil, repository.ErrNotFound
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationf("name is required")
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if req.Status != model.StatusAccepted && req.Status != model.StatusDeclined {
		return nil, validationf("status must be %q or %q", model.StatusAccepted, model.StatusDeclined)
	}

	sub := model.RsvpSubmission{
		Name:    name,
		Email:   email,
		Status:  req.Status,
		Message: strings.TrimSpace(req.Message),
	}

	rsvp, err := s.rsvps.Reconcile(ctx, eventID, sub)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrCapacityFull) {
			return nil, err
		}
		return nil, fmt.Errorf("submit rsvp: %w", err)
	}
	return rsvp, nil
}

// ListRsvps returns an event's RSVPs, newest first. Only the event owner
// may read the guest list.
func (s *RsvpService) ListRsvps(ctx context.Context, callerID, eventID string) ([]model.RSVP, error) {
	if err := s.authorizeOwner(ctx, callerID, eventID); err != nil {
		return nil, err
	}
	return s.rsvps.ListByEvent(ctx, eventID)
}

// Summary returns the owner-facing aggregation for an event.
func (s *RsvpService) Summary(ctx context.Context, callerID, eventID string) (*model.EventSummary, error) {
	if err := s.authorizeOwner(ctx, callerID, eventID); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	rsvps, err := s.rsvps.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	summary := Summarize(rsvps, event.MaxAttendees)
	return &summary, nil
}

func (s *RsvpService) authorizeOwner(ctx context.Context, callerID, eventID string) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != callerID {
		return repository.ErrUnauthorized
	}
	return nil
}
