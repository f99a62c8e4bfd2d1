package handler

import (
	"log/slog"
	"net/http"

	"github.com/ashirpar/clubserver/internal/apperror"
	"github.com/ashirpar/clubserver/internal/auth"
	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/service"
)

// PlayerHandler serves the squad list.
type PlayerHandler struct {
	players *service.PlayerService
	logger  *slog.Logger
}

// NewPlayerHandler creates a PlayerHandler.
func NewPlayerHandler(players *service.PlayerService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{players: players, logger: logger}
}

// HandleList returns every player.
//
// HTTP: GET /players
func (h *PlayerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleCreate adds a player.
//
// HTTP: POST /players
// Auth: session cookie with the admin role
// REQUEST BODY: {"name": "P", "image": "https://...", "role": "fwd"}
func (h *PlayerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		// Only reachable if the route was mounted without RequireAuth.
		writeError(w, apperror.Unauthorized("unauthorized access"))
		return
	}

	var in service.PlayerInput
	if err := decodeBody(w, r, &in); err != nil {
		// A non-admin still gets 403, whatever the body looks like.
		if !caller.IsAdmin() {
			writeError(w, apperror.Forbidden("forbidden access"))
			return
		}
		writeError(w, err)
		return
	}

	player, err := h.players.Create(r.Context(), caller, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.InsertResult{Acknowledged: true, InsertedID: player.ID})
}
