package handler

import (
	"net/http"

	"github.com/evently-app/evently/internal/model"
	"github.com/evently-app/evently/internal/service"
	"github.com/gorilla/sessions"
)

const sessionCookieName = "evently_session"

// AuthHandler holds the HTTP surface of account and session management.
type AuthHandler struct {
	svc     *service.AuthService
	cookies *sessions.CookieStore
}

// NewAuthHandler constructs an AuthHandler. The cookie store signs the
// session cookie; the token inside it is still validated server-side on
// every request.
func NewAuthHandler(svc *service.AuthService, cookies *sessions.CookieStore) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "failed to register")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "failed to log in")
		return
	}

	h.setSessionCookie(w, r, resp.Token)
	writeJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh
// Rotates the session token and extends its expiry.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(r)
	resp, err := h.svc.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.setSessionCookie(w, r, resp.Token)
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.sessionToken(r); token != "" {
		if err := h.svc.Logout(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}

	sess, _ := h.cookies.Get(r, sessionCookieName)
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.CurrentUser(r.Context(), UserID(r.Context()))
	if err != nil {
		writeDomainError(w, err, "failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	sess, _ := h.cookies.Get(r, sessionCookieName)
	sess.Values["token"] = token
	sess.Options.HttpOnly = true
	sess.Options.SameSite = http.SameSiteLaxMode
	sess.Options.Path = "/"
	_ = sess.Save(r, w)
}
