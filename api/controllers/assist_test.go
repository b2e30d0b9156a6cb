package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/assist"
)

type stubGenerator struct {
	text     string
	jsonText string
}

func (g *stubGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return g.text, nil
}

func (g *stubGenerator) GenerateJSON(_ context.Context, _ string, _ json.RawMessage, out any) error {
	return json.Unmarshal([]byte(g.jsonText), out)
}

func newAssistService(t *testing.T, gen *stubGenerator) *assist.Service {
	t.Helper()
	var svc *assist.Service
	var err error
	if gen == nil {
		svc, err = assist.NewService(nil, testCatalog(), nil, 0, testLogger())
	} else {
		svc, err = assist.NewService(gen, testCatalog(), nil, 0, testLogger())
	}
	if err != nil {
		t.Fatalf("building assist service: %v", err)
	}
	return svc
}

func TestProductDescribe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := newAssistService(t, &stubGenerator{text: "Crisp sound, all day."})
		rec := httptest.NewRecorder()
		ProductDescribe(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/products/1/describe", "sess-1", 1, nil))

		var body map[string]string
		decodeEnvelope(t, rec, &body)
		if body["description"] != "Crisp sound, all day." {
			t.Fatalf("unexpected description %q", body["description"])
		}
	})

	t.Run("model offline falls back", func(t *testing.T) {
		svc := newAssistService(t, nil)
		rec := httptest.NewRecorder()
		ProductDescribe(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/products/1/describe", "sess-1", 1, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("fallback should be a 200, got %d", rec.Code)
		}
		var body map[string]string
		decodeEnvelope(t, rec, &body)
		if body["description"] != "AI generation failed. Please try again later." {
			t.Fatalf("unexpected fallback %q", body["description"])
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := newAssistService(t, nil)
		rec := httptest.NewRecorder()
		ProductDescribe(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/products/99/describe", "sess-1", 99, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestProductAsk(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := newAssistService(t, &stubGenerator{text: "Yes, it pairs over Bluetooth 5.3."})
		rec := httptest.NewRecorder()
		ProductAsk(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/products/1/ask", "sess-1", 1, askRequest{Question: "Does it pair with Android?"}))

		var body map[string]string
		decodeEnvelope(t, rec, &body)
		if body["answer"] != "Yes, it pairs over Bluetooth 5.3." {
			t.Fatalf("unexpected answer %q", body["answer"])
		}
	})

	t.Run("missing question", func(t *testing.T) {
		svc := newAssistService(t, nil)
		rec := httptest.NewRecorder()
		ProductAsk(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodPost, "/api/v1/products/1/ask", "sess-1", 1, map[string]string{}))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestRecommendations(t *testing.T) {
	t.Run("model picks filtered to catalog", func(t *testing.T) {
		gen := &stubGenerator{jsonText: `[{"id":1,"reason":"Top seller"},{"id":42,"reason":"Ghost"},{"id":3,"reason":""}]`}
		svc := newAssistService(t, gen)
		rec := httptest.NewRecorder()
		Recommendations(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodGet, "/api/v1/recommendations", "sess-1", 0, nil))

		var body struct {
			Recommendations []assist.Recommendation `json:"recommendations"`
		}
		decodeEnvelope(t, rec, &body)
		if len(body.Recommendations) != 1 || body.Recommendations[0].ID != 1 {
			t.Fatalf("unexpected picks %+v", body.Recommendations)
		}
	})

	t.Run("model offline yields empty list", func(t *testing.T) {
		svc := newAssistService(t, nil)
		rec := httptest.NewRecorder()
		Recommendations(svc, testLogger()).ServeHTTP(rec, newRequest(t, http.MethodGet, "/api/v1/recommendations", "sess-1", 0, nil))

		var body struct {
			Recommendations []assist.Recommendation `json:"recommendations"`
		}
		decodeEnvelope(t, rec, &body)
		if body.Recommendations == nil || len(body.Recommendations) != 0 {
			t.Fatalf("expected empty non-nil list, got %+v", body.Recommendations)
		}
	})
}
