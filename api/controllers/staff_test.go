package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/assist"
	staffsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/staff"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/auth"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
)

func newStaffService(t *testing.T) *staffsvc.Service {
	t.Helper()
	svc, err := staffsvc.NewService(
		config.StaffConfig{Username: "admin", Password: "admin123"},
		config.JWTConfig{Secret: "test-secret", Issuer: "smartcart-test", ExpirationMinutes: 5},
		testCatalog(),
	)
	if err != nil {
		t.Fatalf("building staff service: %v", err)
	}
	return svc
}

func TestStaffLogin(t *testing.T) {
	handler := StaffLogin(newStaffService(t), testLogger())

	t.Run("valid credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/staff/login", "", 0, staffLoginRequest{Username: "admin", Password: "admin123"}))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body map[string]string
		decodeEnvelope(t, rec, &body)
		claims, err := auth.ParseStaffToken(config.JWTConfig{Secret: "test-secret", Issuer: "smartcart-test"}, body["token"])
		if err != nil {
			t.Fatalf("token should parse: %v", err)
		}
		if claims.Username != "admin" {
			t.Fatalf("unexpected claims %+v", claims)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/staff/login", "", 0, staffLoginRequest{Username: "admin", Password: "wrong"}))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/staff/login", "", 0, map[string]string{"username": "admin"}))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestStaffDashboard(t *testing.T) {
	rec := httptest.NewRecorder()
	StaffDashboard(newStaffService(t), testLogger()).ServeHTTP(rec, newRequest(t, http.MethodGet, "/api/v1/staff/dashboard", "", 0, nil))

	var stats staffsvc.DashboardStats
	decodeEnvelope(t, rec, &stats)
	if stats.TotalProducts != 3 || stats.ActiveCategories != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(stats.Inventory) != 3 {
		t.Fatalf("expected full inventory listing, got %d", len(stats.Inventory))
	}
}

func TestStaffInsightsFallsBackWithoutModel(t *testing.T) {
	svc, err := assist.NewService(nil, testCatalog(), nil, 0, testLogger())
	if err != nil {
		t.Fatalf("building assist service: %v", err)
	}

	rec := httptest.NewRecorder()
	StaffInsights(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodGet, "/api/v1/staff/insights", "", 0, nil))

	var body map[string]string
	decodeEnvelope(t, rec, &body)
	if body["insights"] != "AI consultant unavailable." {
		t.Fatalf("unexpected insights %q", body["insights"])
	}
}
