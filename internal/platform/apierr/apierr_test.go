package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/yungbote/tripcraft-backend/internal/pkg/errors"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"typed", New(http.StatusTeapot, "teapot", errors.New("x")), http.StatusTeapot, "teapot"},
		{"wrapped typed", fmt.Errorf("outer: %w", NotFound("trip")), http.StatusNotFound, "trip_not_found"},
		{"sentinel not found", fmt.Errorf("load: %w", pkgerrors.ErrNotFound), http.StatusNotFound, "not_found"},
		{"sentinel conflict", pkgerrors.ErrConflict, http.StatusConflict, "conflict"},
		{"sentinel invalid", pkgerrors.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := Resolve(tc.err)
			if status != tc.status || code != tc.code {
				t.Fatalf("Resolve: want=(%d,%q) got=(%d,%q)", tc.status, tc.code, status, code)
			}
		})
	}
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	if !errors.Is(NotFound("location"), pkgerrors.ErrNotFound) {
		t.Fatalf("NotFound: expected errors.Is ErrNotFound")
	}
}
