package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evently-app/evently/internal/model"
	"github.com/evently-app/evently/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// EventService orchestrates event lifecycle operations.
type EventService struct {
	events EventStore
	rsvps  RsvpStore
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, rsvps RsvpStore) *EventService {
	return &EventService{events: events, rsvps: rsvps}
}

// CreateEvent validates the request and delegates to the store. The
// authenticated caller becomes the owner.
func (s *EventService) CreateEvent(ctx context.Context, ownerID string, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Location = strings.TrimSpace(req.Location)

	if req.Title == "" {
		return nil, validationf("title is required")
	}
	if req.Description == "" {
		return nil, validationf("description is required")
	}
	if req.Location == "" {
		return nil, validationf("location is required")
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, validationf("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, validationf("time must be in HH:MM format")
	}
	if req.MaxAttendees != nil && *req.MaxAttendees <= 0 {
		return nil, validationf("max_attendees must be a positive integer")
	}

	event, err := s.events.Create(ctx, ownerID, req)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// ListEvents returns the caller's own events, soonest first.
func (s *EventService) ListEvents(ctx context.Context, ownerID string) ([]model.Event, error) {
	return s.events.ListByOwner(ctx, ownerID)
}

// GetEventDetail returns the public view of an event: the event itself
// plus the current accepted count and remaining spots. No ownership
// check; holding the event id is the access token for the RSVP link.
func (s *EventService) GetEventDetail(ctx context.Context, eventID string) (*model.EventDetail, error) {
	if eventID == "" {
		return nil, repository.ErrNotFound
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	accepted, err := s.rsvps.CountAccepted(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count accepted rsvps: %w", err)
	}
	return &model.EventDetail{
		Event:          *event,
		AcceptedCount:  accepted,
		SpotsRemaining: spotsRemaining(event.MaxAttendees, accepted),
	}, nil
}

// DeleteEvent removes an event and all of its RSVPs. Only the owner may
// delete; the store enforces that inside one transaction.
func (s *EventService) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	if eventID == "" {
		return repository.ErrNotFound
	}
	err := s.events.Delete(ctx, ownerID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
