package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/evently-app/evently/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RsvpRepository handles persistence for RSVPs.
type RsvpRepository struct {
	db *pgxpool.Pool
}

// NewRsvpRepository constructs an RsvpRepository.
func NewRsvpRepository(db *pgxpool.Pool) *RsvpRepository {
	return &RsvpRepository{db: db}
}

// Reconcile applies one RSVP submission atomically: it either inserts a
// fresh row, overwrites the submitter's existing row, or rejects the
// submission, enforcing the capacity rule throughout.
//
// A naive read-then-write here is racy: two concurrent submissions can
// both observe free capacity (or both observe "no existing row") and
// both write. Reconcile therefore takes SELECT ... FOR UPDATE on the
// event row, which serialises all submissions for the same event for the
// duration of the transaction. The UNIQUE (event_id, email) index is the
// schema-level backstop for the one-row-per-respondent invariant.
//
// The capacity count excludes the submitter's own email, so a respondent
// who already holds an accepted spot can re-affirm or edit their answer
// even when the event is full; only a new respondent is turned away.
func (r *RsvpRepository) Reconcile(ctx context.Context, eventID string, sub model.RsvpSubmission) (*model.RSVP, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Step 1: lock the event row. Also tells us whether the event exists
	// and what its capacity is.
	var maxAttendees *int32
	err = tx.QueryRow(ctx,
		`SELECT max_attendees FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&maxAttendees)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	// Step 2: capacity guard. Only accepted answers consume a spot and
	// only finite capacities can fill up.
	if sub.Status == model.StatusAccepted && maxAttendees != nil {
		var acceptedCount int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM rsvps
			 WHERE event_id = $1 AND status = $2 AND email <> $3`,
			eventID, model.StatusAccepted, sub.Email,
		).Scan(&acceptedCount)
		if err != nil {
			return nil, fmt.Errorf("count accepted rsvps: %w", err)
		}
		if acceptedCount >= int(*maxAttendees) {
			err = ErrCapacityFull
			return nil, err
		}
	}

	// Step 3: upsert. A resubmission keeps the original id and
	// created_at and fully replaces name, status and message.
	rsvp := &model.RSVP{}
	err = tx.QueryRow(ctx,
		`INSERT INTO rsvps (id, event_id, name, email, status, message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		 ON CONFLICT (event_id, email) DO UPDATE SET
		 	name = EXCLUDED.name,
		 	status = EXCLUDED.status,
		 	message = EXCLUDED.message,
		 	updated_at = now()
		 RETURNING id, event_id, name, email, status, message, created_at, updated_at`,
		uuid.New().String(), eventID, sub.Name, sub.Email, sub.Status, sub.Message,
	).Scan(&rsvp.ID, &rsvp.EventID, &rsvp.Name, &rsvp.Email, &rsvp.Status, &rsvp.Message, &rsvp.CreatedAt, &rsvp.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert rsvp: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return rsvp, nil
}

// ListByEvent returns all RSVPs for an event, newest first.
func (r *RsvpRepository) ListByEvent(ctx context.Context, eventID string) ([]model.RSVP, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, name, email, status, message, created_at, updated_at
		 FROM rsvps
		 WHERE event_id = $1
		 ORDER BY created_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	defer rows.Close()

	var rsvps []model.RSVP
	for rows.Next() {
		var rv model.RSVP
		if err := rows.Scan(&rv.ID, &rv.EventID, &rv.Name, &rv.Email, &rv.Status, &rv.Message, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rsvp: %w", err)
		}
		rsvps = append(rsvps, rv)
	}
	return rsvps, rows.Err()
}

// CountAccepted returns how many accepted RSVPs an event currently has.
// Used by the public event view; the authoritative check during a
// submission happens inside Reconcile under the row lock.
func (r *RsvpRepository) CountAccepted(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM rsvps WHERE event_id = $1 AND status = $2`,
		eventID, model.StatusAccepted,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count accepted rsvps: %w", err)
	}
	return n, nil
}
