package handler

import (
	"log/slog"
	"net/http"

	"github.com/ashirpar/clubserver/internal/model"
	"github.com/ashirpar/clubserver/internal/service"
)

// UserHandler serves registration and profile lookups.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type registerResponse struct {
	Created    bool        `json:"created"`
	InsertedID *string     `json:"insertedId"`
	User       *model.User `json:"user"`
}

// HandleRegister registers a user, or returns the existing one.
//
// HTTP: POST /users
// REQUEST BODY: {"name": "...", "email": "...", "photoURL": "...", "role": "user"}
//
// Both the first and every repeated call answer 200; insertedId is null
// when nothing new was written.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := registerResponse{Created: res.Created, User: res.User}
	if res.Created {
		resp.InsertedID = &res.User.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGet returns one user.
//
// HTTP: GET /users/{email}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	email, err := pathParam(r, "email")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
