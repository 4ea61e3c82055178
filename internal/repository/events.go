package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evently-app/evently/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event owned by ownerID and returns it with a
// generated UUID. The request is already validated by the service layer.
func (r *EventRepository) Create(ctx context.Context, ownerID string, req model.CreateEventRequest) (*model.Event, error) {
	event := &model.Event{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, owner_id, title, description, event_date, event_time, location, max_attendees, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID, event.OwnerID, event.Title, event.Description,
		event.Date, event.Time, event.Location, event.MaxAttendees, event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

// GetByID returns a single event or ErrNotFound. Read access is public:
// knowing the event id is the access token for the RSVP view.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, title, description, event_date, event_time, location, max_attendees, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.MaxAttendees, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// ListByOwner returns the owner's events ordered soonest first.
func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, title, description, event_date, event_time, location, max_attendees, created_at
		 FROM events
		 WHERE owner_id = $1
		 ORDER BY event_date ASC, event_time ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.MaxAttendees, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delete removes an event and all of its RSVPs in one transaction, RSVPs
// first so that no orphaned RSVP can ever persist. Only the owner may
// delete; anyone else gets ErrUnauthorized.
func (r *EventRepository) Delete(ctx context.Context, ownerID, eventID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the event row so a concurrent RSVP submission cannot slip a
	// fresh row in between the two deletes.
	var dbOwner string
	err = tx.QueryRow(ctx,
		`SELECT owner_id FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&dbOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}
	if dbOwner != ownerID {
		err = ErrUnauthorized
		return err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM rsvps WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("delete rsvps: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
