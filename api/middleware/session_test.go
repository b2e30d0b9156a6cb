package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestSessionMintsIDWhenAbsent(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if captured == "" {
		t.Fatalf("expected a minted session id")
	}
	if err := uuid.Validate(captured); err != nil {
		t.Fatalf("minted id is not a uuid: %v", err)
	}
	if rec.Header().Get(SessionHeader) != captured {
		t.Fatalf("session id should echo on the response")
	}
}

func TestSessionKeepsProvidedID(t *testing.T) {
	provided := uuid.NewString()
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, provided)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured != provided {
		t.Fatalf("expected %q, got %q", provided, captured)
	}
}

func TestSessionReplacesMalformedID(t *testing.T) {
	var captured string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "../../etc/passwd")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured == "../../etc/passwd" {
		t.Fatalf("malformed session id should be replaced")
	}
	if err := uuid.Validate(captured); err != nil {
		t.Fatalf("replacement id is not a uuid: %v", err)
	}
}
