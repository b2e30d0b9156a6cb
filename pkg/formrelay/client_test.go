package formrelay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
)

func TestNewClientRequiresEndpoint(t *testing.T) {
	if _, err := NewClient(config.FormRelayConfig{}); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}

func TestSubmitEncodesSubjectAndFields(t *testing.T) {
	var gotForm url.Values
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(config.FormRelayConfig{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	err = client.Submit(context.Background(), Submission{
		Subject: "New SmartCart Order",
		Fields: map[string]string{
			"name":         "Ada",
			"email":        "ada@example.com",
			"total_amount": "$129.99",
		},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
	if got := gotForm.Get("_subject"); got != "New SmartCart Order" {
		t.Fatalf("unexpected subject %q", got)
	}
	if got := gotForm.Get("total_amount"); got != "$129.99" {
		t.Fatalf("unexpected total %q", got)
	}
}

func TestSubmitRequiresSubject(t *testing.T) {
	client, err := NewClient(config.FormRelayConfig{Endpoint: "http://localhost"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := client.Submit(context.Background(), Submission{}); err == nil {
		t.Fatalf("expected error for missing subject")
	}
}

func TestSubmitSurfacesRelayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "form disabled", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client, err := NewClient(config.FormRelayConfig{Endpoint: server.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := client.Submit(context.Background(), Submission{Subject: "x"}); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}
