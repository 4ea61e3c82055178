package handler

import (
	"net/http"

	"github.com/evently-app/evently/internal/model"
	"github.com/evently-app/evently/internal/service"
	"github.com/go-chi/chi/v5"
)

// RsvpHandler holds the public RSVP submission endpoint.
type RsvpHandler struct {
	svc *service.RsvpService
}

// NewRsvpHandler constructs an RsvpHandler.
func NewRsvpHandler(svc *service.RsvpService) *RsvpHandler {
	return &RsvpHandler{svc: svc}
}

// Submit handles POST /events/{id}/rsvp
// Anonymous endpoint: the event id in the RSVP link is the access token.
func (h *RsvpHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRsvpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rsvp, err := h.svc.Submit(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "failed to submit rsvp")
		return
	}
	writeJSON(w, http.StatusOK, rsvp)
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
