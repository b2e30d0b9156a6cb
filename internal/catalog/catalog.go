package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/config"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Product is a single catalog record. Records are immutable once loaded.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Featured    bool            `json:"featured,omitempty"`
}

// Store holds the loaded catalog. It is read-only after construction, so
// concurrent access needs no locking.
type Store struct {
	products   []Product
	byID       map[int]Product
	categories []string
}

// New builds a store from already validated products, preserving input order.
func New(products []Product) *Store {
	s := &Store{
		products: products,
		byID:     make(map[int]Product, len(products)),
	}
	seen := map[string]struct{}{}
	for _, p := range products {
		s.byID[p.ID] = p
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			s.categories = append(s.categories, p.Category)
		}
	}
	return s
}

// Load reads the catalog from the configured URL or file path. Any failure
// degrades to an empty catalog; the service must come up regardless.
func Load(ctx context.Context, cfg config.CatalogConfig, logg *logger.Logger) *Store {
	var (
		raw    []byte
		source string
		err    error
	)
	if cfg.URL != "" {
		source = cfg.URL
		raw, err = fetchCatalog(ctx, cfg.URL)
	} else {
		source = cfg.Path
		raw, err = os.ReadFile(cfg.Path)
	}
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "loading catalog from "+source+", continuing with empty catalog", err)
		}
		return New(nil)
	}

	products, issues := parseProducts(raw)
	if issues != nil && logg != nil {
		logg.Warn(ctx, "some catalog records were skipped: "+issues.Error())
	}
	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("catalog loaded: %d products from %s", len(products), source))
	}
	return New(products)
}

func fetchCatalog(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseProducts decodes the raw catalog, dropping records that fail the shape
// check and accumulating one issue per dropped record.
func parseProducts(raw []byte) ([]Product, error) {
	var decoded []Product
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	var issues error
	products := make([]Product, 0, len(decoded))
	for i, p := range decoded {
		if err := validateProduct(p); err != nil {
			issues = multierr.Append(issues, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		products = append(products, p)
	}
	return products, issues
}

func validateProduct(p Product) error {
	if p.ID < 1 {
		return fmt.Errorf("id must be >= 1, got %d", p.ID)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price must be >= 0, got %s", p.Price)
	}
	return nil
}

// All returns the catalog in load order. The returned slice is shared; callers
// must not mutate it.
func (s *Store) All() []Product {
	return s.products
}

// Get returns the product with the given id.
func (s *Store) Get(id int) (Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Featured returns up to limit featured products in load order. A limit <= 0
// returns all of them.
func (s *Store) Featured(limit int) []Product {
	var out []Product
	for _, p := range s.products {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (s *Store) Categories() []string {
	return s.categories
}

// Len reports the number of loaded products.
func (s *Store) Len() int {
	return len(s.products)
}
