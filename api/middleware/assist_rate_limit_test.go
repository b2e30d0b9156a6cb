package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubLimiter struct {
	allowed bool
	err     error
	scopes  []string
}

func (l *stubLimiter) FixedWindowAllow(_ context.Context, scope string, _ int64, _ time.Duration) (bool, int64, error) {
	l.scopes = append(l.scopes, scope)
	return l.allowed, 1, l.err
}

func limitedHandler(limiter RateLimiter) http.Handler {
	return AssistRateLimit(limiter, 5, time.Minute, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestAssistRateLimitAllows(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithSessionID(req.Context(), "sess-1"))

	limitedHandler(limiter).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
	if len(limiter.scopes) != 1 || limiter.scopes[0] != "assist:sess-1" {
		t.Fatalf("unexpected scopes %v", limiter.scopes)
	}
}

func TestAssistRateLimitBlocks(t *testing.T) {
	rec := httptest.NewRecorder()
	limitedHandler(&stubLimiter{allowed: false}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAssistRateLimitFailsOpen(t *testing.T) {
	rec := httptest.NewRecorder()
	limitedHandler(&stubLimiter{err: errors.New("redis down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("limiter errors should fail open, got %d", rec.Code)
	}
}

func TestAssistRateLimitNilLimiterDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	limitedHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("nil limiter should disable limiting, got %d", rec.Code)
	}
}
