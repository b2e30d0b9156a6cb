package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/middleware"
	cartsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/cart"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func testCatalog() *catalog.Store {
	return catalog.New([]catalog.Product{
		{ID: 1, Name: "Wireless Earbuds Pro", Category: "Audio", Price: decimal.RequireFromString("129.99"), Featured: true},
		{ID: 2, Name: "Smart Watch X", Category: "Wearables", Price: decimal.RequireFromString("249.00")},
		{ID: 3, Name: "Studio Headphones", Category: "Audio", Price: decimal.RequireFromString("349.50"), Featured: true},
	})
}

type memoryCartStore struct {
	carts map[string][]cartsvc.Item
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[string][]cartsvc.Item)}
}

func (s *memoryCartStore) SaveCart(_ context.Context, sessionID string, items []cartsvc.Item) error {
	saved := make([]cartsvc.Item, len(items))
	copy(saved, items)
	s.carts[sessionID] = saved
	return nil
}

func (s *memoryCartStore) LoadCart(_ context.Context, sessionID string) ([]cartsvc.Item, error) {
	return s.carts[sessionID], nil
}

func newCartManager(t *testing.T) *cartsvc.Manager {
	t.Helper()
	manager, err := cartsvc.NewManager(newMemoryCartStore(), testLogger())
	if err != nil {
		t.Fatalf("building cart manager: %v", err)
	}
	return manager
}

// newRequest builds a request carrying a session id and an optional productID
// route param, with the body JSON-encoded when present.
func newRequest(t *testing.T, method, target, sessionID string, productID int, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := req.Context()
	if sessionID != "" {
		ctx = middleware.WithSessionID(ctx, sessionID)
	}
	routeCtx := chi.NewRouteContext()
	if productID != 0 {
		routeCtx.URLParams.Add("productID", strconv.Itoa(productID))
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	return req.WithContext(ctx)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.Error != nil {
		t.Fatalf("unexpected error envelope: %s", env.Error.Code)
	}
	if out == nil {
		return
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}
