package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructorsMatchSentinel(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"NotFound", NotFound("news", "abc123"), ErrNotFound, true},
		{"NotFoundBy", NotFoundBy("user", "email", "a@x.com"), ErrNotFound, true},
		{"ValidationFailed", ValidationFailed("name", "name is required"), ErrValidation, true},
		{"Conflict", Conflict("user", "a@x.com"), ErrConflict, true},
		{"Forbidden", Forbidden("admins only"), ErrForbidden, true},
		{"Unauthorized", Unauthorized("unauthorized access"), ErrUnauthorized, true},
		{"Forbidden is not Unauthorized", Forbidden("admins only"), ErrUnauthorized, false},
		{"NotFound is not Validation", NotFound("news", "abc123"), ErrValidation, false},
		{"wrapped by a service", fmt.Errorf("finding player: %w", NotFound("player", "p1")), ErrNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		err  *AppError
		want string
	}{
		{NotFound("news", "abc123"), "news not found with id abc123"},
		{NotFoundBy("user", "email", "a@x.com"), "user not found with email a@x.com"},
		{ValidationFailed("image", "image is required"), "image is required"},
		{Conflict("user", "a@x.com"), "user conflict with id a@x.com"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestFieldIsRecorded(t *testing.T) {
	if f := ValidationFailed("email", "email is required").Field; f != "email" {
		t.Errorf("ValidationFailed Field = %q, want email", f)
	}
	if f := NotFoundBy("user", "email", "a@x.com").Field; f != "email" {
		t.Errorf("NotFoundBy Field = %q, want email", f)
	}
}

func TestAsExtractsAppError(t *testing.T) {
	err := fmt.Errorf("registering: %w", ValidationFailed("role", "role must be user or admin"))

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As did not find *AppError")
	}
	if appErr.Unwrap() != ErrValidation {
		t.Errorf("Unwrap() = %v, want %v", appErr.Unwrap(), ErrValidation)
	}
}
