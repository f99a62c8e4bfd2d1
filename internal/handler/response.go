package handler

// Every handler answers through writeJSON or writeError, so the club
// front-end always sees one error shape:
//
//	{"error": "not_found", "message": "user not found with email a@x.com", "field": "email"}

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ashirpar/clubserver/internal/apperror"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`           // machine-readable kind, e.g. "not_found"
	Message string `json:"message"`         // human-readable description
	Field   string `json:"field,omitempty"` // offending input field, if any
}

// errorKinds maps apperror sentinels to status and kind, checked in order.
var errorKinds = []struct {
	sentinel error
	status   int
	kind     string
}{
	{apperror.ErrValidation, http.StatusBadRequest, "validation_error"},
	{apperror.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{apperror.ErrForbidden, http.StatusForbidden, "forbidden"},
	{apperror.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperror.ErrConflict, http.StatusConflict, "conflict"},
}

// internalError hides store and driver failures from the caller.
var internalError = ErrorResponse{
	Error:   "internal_error",
	Message: "An internal error occurred",
}

// writeJSON sets the content type, then the status, then encodes data.
// Headers written after the status line are ignored by net/http.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status is already sent.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError translates err into a status code and ErrorResponse.
//
// Only *apperror.AppError values carry a message safe to show. Anything
// else, and any AppError wrapping an unknown sentinel, becomes a 500.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, internalError)
		return
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.sentinel) {
			writeJSON(w, k.status, ErrorResponse{
				Error:   k.kind,
				Message: appErr.Message,
				Field:   appErr.Field,
			})
			return
		}
	}
	writeJSON(w, http.StatusInternalServerError, internalError)
}

// maxBodyBytes caps request bodies. Club documents are small.
const maxBodyBytes = 1 << 20

// decodeBody reads exactly one JSON value from the request body into dst.
// A malformed body, or anything after the value, becomes an
// apperror.ErrValidation.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "request body must be valid JSON")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperror.ValidationFailed("body", "request body must contain a single JSON value")
	}
	return nil
}

// pathParam returns the decoded URL parameter name. chi matches on the
// escaped path when the request carries one (a%40club.com), so the value
// is unescaped here.
func pathParam(r *http.Request, name string) (string, error) {
	v := r.PathValue(name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", apperror.ValidationFailed(name, "malformed "+name+" in path")
	}
	return decoded, nil
}
