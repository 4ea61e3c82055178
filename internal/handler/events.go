package handler

import (
	"errors"
	"net/http"

	"github.com/evently-app/evently/internal/model"
	"github.com/evently-app/evently/internal/repository"
	"github.com/evently-app/evently/internal/service"
	"github.com/go-chi/chi/v5"
)

// EventHandler holds all HTTP handlers for event management.
type EventHandler struct {
	events *service.EventService
	rsvps  *service.RsvpService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *service.EventService, rsvps *service.RsvpService) *EventHandler {
	return &EventHandler{events: events, rsvps: rsvps}
}

// Create handles POST /events
// Creates a new event owned by the authenticated caller.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.events.CreateEvent(r.Context(), UserID(r.Context()), req)
	if err != nil {
		writeDomainError(w, err, "failed to create event")
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// List handles GET /events
// Returns the caller's own events, soonest first.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.ListEvents(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles GET /events/{id}
// Public RSVP-link view: event details plus how full it is.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.events.GetEventDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /events/{id}
// Removes the event and all of its RSVPs; owner only.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.events.DeleteEvent(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to delete event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListRsvps handles GET /events/{id}/rsvps
// Returns the guest list, newest first; owner only.
func (h *EventHandler) ListRsvps(w http.ResponseWriter, r *http.Request) {
	rsvps, err := h.rsvps.ListRsvps(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to list rsvps")
		return
	}

	if rsvps == nil {
		rsvps = []model.RSVP{}
	}
	writeJSON(w, http.StatusOK, rsvps)
}

// Summary handles GET /events/{id}/summary
// Returns accepted/declined counts and remaining spots; owner only.
func (h *EventHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.rsvps.Summary(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "failed to summarize rsvps")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
