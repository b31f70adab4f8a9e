package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Validation("bad"), http.StatusBadRequest},
		{BadRequest("malformed"), http.StatusBadRequest},
		{InvalidState("draft"), http.StatusConflict},
		{Conflict("dup"), http.StatusConflict},
		{Forbidden("no"), http.StatusForbidden},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Gone("expired"), http.StatusGone},
		{Internal("boom"), http.StatusInternalServerError},
		{New(Kind("made_up"), "odd"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.err.Message, tc.want, got)
		}
	}
}

func TestIsSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("approve: %w", InvalidState("message must be draft"))
	if !Is(err, KindInvalidState) {
		t.Fatal("expected wrapped error to report KindInvalidState")
	}
	if Is(err, KindNotFound) {
		t.Fatal("did not expect KindNotFound")
	}
}

func TestUntypedErrorsHaveNoKind(t *testing.T) {
	err := errors.New("connection reset")
	if KindOf(err) != KindUnknown || Is(err, KindUnknown) {
		t.Fatal("untyped errors must not match any kind")
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("flagged").WithDetails(map[string][]string{"violations": {"Risk-free claim"}})
	details, ok := err.Details.(map[string][]string)
	if !ok || len(details["violations"]) != 1 {
		t.Fatalf("unexpected details: %#v", err.Details)
	}
}
