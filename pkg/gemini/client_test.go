package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
)

func candidateBody(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func newTestClient(t *testing.T, serverURL string, maxAttempts int) *Client {
	t.Helper()
	client, err := NewClient(config.GeminiConfig{
		APIKey:      "test-key",
		Model:       "gemini-test",
		BaseURL:     serverURL,
		Timeout:     5 * time.Second,
		MaxAttempts: maxAttempts,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(config.GeminiConfig{}); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestGenerateText(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Goog-Api-Key")
		fmt.Fprint(w, candidateBody("a concise pitch"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	text, err := client.GenerateText(context.Background(), "describe the product")
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if text != "a concise pitch" {
		t.Fatalf("unexpected text %q", text)
	}
	if gotPath != "/models/gemini-test:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected api key header %q", gotKey)
	}
}

func TestGenerateTextRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "quota", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, candidateBody("after retry"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	text, err := client.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText failed: %v", err)
	}
	if text != "after retry" {
		t.Fatalf("unexpected text %q", text)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestGenerateTextDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad prompt", http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("client errors should not retry, got %d calls", calls.Load())
	}
}

func TestGenerateJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			GenerationConfig struct {
				ResponseMIMEType string `json:"responseMimeType"`
			} `json:"generationConfig"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Errorf("expected json mime type, got %q", req.GenerationConfig.ResponseMIMEType)
		}
		fmt.Fprint(w, candidateBody(`[{"id":3,"reason":"pairs well"}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	var out []struct {
		ID     int    `json:"id"`
		Reason string `json:"reason"`
	}
	schema := json.RawMessage(`{"type":"ARRAY"}`)
	if err := client.GenerateJSON(context.Background(), "recommend", schema, &out); err != nil {
		t.Fatalf("GenerateJSON failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != 3 || out[0].Reason != "pairs well" {
		t.Fatalf("unexpected decoded output %+v", out)
	}
}

func TestGenerateTextEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	if _, err := client.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty candidates")
	}
}
