package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/evently-app/evently/internal/model"
	"github.com/evently-app/evently/internal/repository"
)

// memStore is an in-memory implementation of all four store interfaces.
// Reconcile mirrors the SQL semantics of repository.RsvpRepository:
// capacity counted excluding the submitter's own email, upsert keyed on
// (event, email) preserving id and created_at.
type memStore struct {
	users    map[string]*model.User    // keyed by email
	sessions map[string]*model.Session // keyed by token
	events   map[string]*model.Event
	rsvps    []*model.RSVP

	base time.Time
	seq  int // monotonic fake clock so ordering is deterministic
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*model.User),
		sessions: make(map[string]*model.Session),
		events:   make(map[string]*model.Event),
		base:     time.Now().UTC(),
	}
}

func (m *memStore) now() time.Time {
	m.seq++
	return m.base.Add(time.Duration(m.seq) * time.Second)
}

func (m *memStore) nextID() string {
	m.seq++
	return fmt.Sprintf("id-%04d", m.seq)
}

// ── UserStore ────────────────────────────────────────────────────────────

func (m *memStore) Create(ctx context.Context, email, passwordHash, fullName string) (*model.User, error) {
	if _, ok := m.users[email]; ok {
		return nil, repository.ErrDuplicateEmail
	}
	u := &model.User{
		ID:           m.nextID(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		CreatedAt:    m.now(),
	}
	m.users[email] = u
	return u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ── SessionStore ─────────────────────────────────────────────────────────

func (m *memStore) CreateSession(ctx context.Context, userID string, ttl time.Duration) (*model.Session, error) {
	now := m.now()
	s := &model.Session{
		Token:     "tok-" + m.nextID(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	m.sessions[s.Token] = s
	return s, nil
}

func (m *memStore) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return nil, repository.ErrSessionExpired
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) Refresh(ctx context.Context, token string, ttl time.Duration) (*model.Session, error) {
	s, err := m.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}
	delete(m.sessions, token)
	next := &model.Session{
		Token:     "tok-" + m.nextID(),
		UserID:    s.UserID,
		ExpiresAt: m.now().Add(ttl),
		CreatedAt: s.CreatedAt,
	}
	m.sessions[next.Token] = next
	return next, nil
}

func (m *memStore) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

// ── EventStore ───────────────────────────────────────────────────────────

func (m *memStore) CreateEvent(ctx context.Context, ownerID string, req model.CreateEventRequest) (*model.Event, error) {
	e := &model.Event{
		ID:           m.nextID(),
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		CreatedAt:    m.now(),
	}
	m.events[e.ID] = e
	return e, nil
}

func (m *memStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) ListByOwner(ctx context.Context, ownerID string) ([]model.Event, error) {
	var out []model.Event
	for _, e := range m.events {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (m *memStore) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	e, ok := m.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	if e.OwnerID != ownerID {
		return repository.ErrUnauthorized
	}
	kept := m.rsvps[:0]
	for _, rv := range m.rsvps {
		if rv.EventID != eventID {
			kept = append(kept, rv)
		}
	}
	m.rsvps = kept
	delete(m.events, eventID)
	return nil
}

// ── RsvpStore ────────────────────────────────────────────────────────────

func (m *memStore) Reconcile(ctx context.Context, eventID string, sub model.RsvpSubmission) (*model.RSVP, error) {
	event, ok := m.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if sub.Status == model.StatusAccepted && event.MaxAttendees != nil {
		accepted := 0
		for _, rv := range m.rsvps {
			if rv.EventID == eventID && rv.Status == model.StatusAccepted && rv.Email != sub.Email {
				accepted++
			}
		}
		if accepted >= int(*event.MaxAttendees) {
			return nil, repository.ErrCapacityFull
		}
	}

	for _, rv := range m.rsvps {
		if rv.EventID == eventID && rv.Email == sub.Email {
			rv.Name = sub.Name
			rv.Status = sub.Status
			rv.Message = sub.Message
			rv.UpdatedAt = m.now()
			cp := *rv
			return &cp, nil
		}
	}

	now := m.now()
	rv := &model.RSVP{
		ID:        m.nextID(),
		EventID:   eventID,
		Name:      sub.Name,
		Email:     sub.Email,
		Status:    sub.Status,
		Message:   sub.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.rsvps = append(m.rsvps, rv)
	cp := *rv
	return &cp, nil
}

func (m *memStore) ListByEvent(ctx context.Context, eventID string) ([]model.RSVP, error) {
	var out []model.RSVP
	for _, rv := range m.rsvps {
		if rv.EventID == eventID {
			out = append(out, *rv)
		}
	}
	// Newest first, matching the repository's created_at DESC ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CountAccepted(ctx context.Context, eventID string) (int, error) {
	n := 0
	for _, rv := range m.rsvps {
		if rv.EventID == eventID && rv.Status == model.StatusAccepted {
			n++
		}
	}
	return n, nil
}

// Adapters so one memStore can stand in for every interface despite the
// overlapping method names on the real repositories.

type memUsers struct{ *memStore }

type memSessions struct{ *memStore }

func (m memSessions) Create(ctx context.Context, userID string, ttl time.Duration) (*model.Session, error) {
	return m.CreateSession(ctx, userID, ttl)
}

func (m memSessions) Get(ctx context.Context, token string) (*model.Session, error) {
	return m.GetSession(ctx, token)
}

type memEvents struct{ *memStore }

func (m memEvents) Create(ctx context.Context, ownerID string, req model.CreateEventRequest) (*model.Event, error) {
	return m.CreateEvent(ctx, ownerID, req)
}

func (m memEvents) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return m.GetEvent(ctx, id)
}

func (m memEvents) Delete(ctx context.Context, ownerID, eventID string) error {
	return m.DeleteEvent(ctx, ownerID, eventID)
}
