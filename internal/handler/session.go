package handler

import (
	"log/slog"
	"net/http"

	"github.com/ashirpar/clubserver/internal/auth"
	"github.com/ashirpar/clubserver/internal/metrics"
	"github.com/ashirpar/clubserver/internal/service"
)

// SessionHandler issues and clears the session cookie.
//
//   - HandleIssue  → POST /jwt
//   - HandleLogout → GET /logout
type SessionHandler struct {
	sessions *service.SessionService
	cookies  auth.CookiePolicy
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(
	sessions *service.SessionService,
	cookies auth.CookiePolicy,
	m *metrics.Metrics,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{sessions: sessions, cookies: cookies, metrics: m, logger: logger}
}

type issueRequest struct {
	Email string `json:"email"`
}

type sessionResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// HandleIssue signs a token for a registered email.
//
// HTTP: POST /jwt
// REQUEST BODY: {"email": "a@x.com"}
//
// The token goes both in the body and in the HttpOnly "token" cookie.
// An unknown email gets 404 and no cookie.
func (h *SessionHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.sessions.Issue(r.Context(), req.Email)
	if err != nil {
		h.logger.Info("session refused",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	h.metrics.SessionIssued()
	http.SetCookie(w, h.cookies.SessionCookie(token))
	writeJSON(w, http.StatusOK, sessionResponse{Success: true, Token: token})
}

// HandleLogout expires the session cookie.
//
// HTTP: GET /logout
//
// The token itself stays valid until it expires; only the browser copy is
// dropped.
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookies.ClearedCookie())
	writeJSON(w, http.StatusOK, sessionResponse{Success: true})
}
