package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashirpar/clubserver/internal/apperror"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantField  string
	}{
		{"validation", apperror.ValidationFailed("name", "name is required"), http.StatusBadRequest, "validation_error", "name"},
		{"unauthorized", apperror.Unauthorized("unauthorized access"), http.StatusUnauthorized, "unauthorized", ""},
		{"forbidden", apperror.Forbidden("admins only"), http.StatusForbidden, "forbidden", ""},
		{"not found wrapped", fmt.Errorf("news: %w", apperror.NotFound("news", "x")), http.StatusNotFound, "not_found", "id"},
		{"conflict", apperror.Conflict("user", "a@x.com"), http.StatusConflict, "conflict", ""},
		{"raw store error", errors.New("connection refused"), http.StatusInternalServerError, "internal_error", ""},
		{"app error with unknown sentinel", &apperror.AppError{Err: errors.New("x"), Message: "leak"}, http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantKind, body.Error)
			assert.Equal(t, tt.wantField, body.Field)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Equal(t, internalError.Message, body.Message)
			}
		})
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"a":1}`, false},
		{"object with trailing newline", "{\"a\":1}\n", false},
		{"trailing garbage", `{"a":1}xyz`, true},
		{"second object", `{"a":1}{"b":2}`, true},
		{"stray brace", `{"a":1}}`, true},
		{"truncated", `{"a":`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/news", bytes.NewBufferString(tt.body))
			var dst map[string]any

			err := decodeBody(httptest.NewRecorder(), req, &dst)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, float64(1), dst["a"])
		})
	}
}

func TestPathParam(t *testing.T) {
	t.Run("plain value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/a@club.com", nil)
		req.SetPathValue("email", "a@club.com")

		got, err := pathParam(req, "email")
		require.NoError(t, err)
		assert.Equal(t, "a@club.com", got)
	})

	t.Run("percent-encoded value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/a%40club.com", nil)
		require.NotEmpty(t, req.URL.RawPath)
		req.SetPathValue("email", "a%40club.com")

		got, err := pathParam(req, "email")
		require.NoError(t, err)
		assert.Equal(t, "a@club.com", got)
	})

	t.Run("malformed escape", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/x", nil)
		req.URL.RawPath = "/users/a%ZZ"
		req.SetPathValue("email", "a%ZZ")

		_, err := pathParam(req, "email")
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})
}
