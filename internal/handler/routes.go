package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the full route table with the global middleware
// stack. Public routes (event view, RSVP submission) sit outside the
// auth group.
func NewRouter(auth *AuthHandler, events *EventHandler, rsvps *RsvpHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger)                  // structured access log
	r.Use(CORS)                    // RSVP links get opened from anywhere

	r.Get("/health", HealthCheck)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Post("/refresh", auth.Refresh)
		r.Post("/logout", auth.Logout)
		r.With(auth.RequireAuth).Get("/me", auth.Me)
	})

	r.Route("/events", func(r chi.Router) {
		// Public: anyone holding the link can view and respond.
		r.Get("/{id}", events.Get)
		r.Post("/{id}/rsvp", rsvps.Submit)

		// Owner-side management.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Post("/", events.Create)
			r.Get("/", events.List)
			r.Delete("/{id}", events.Delete)
			r.Get("/{id}/rsvps", events.ListRsvps)
			r.Get("/{id}/summary", events.Summary)
		})
	})

	return r
}
