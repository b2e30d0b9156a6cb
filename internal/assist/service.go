package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// Fallback copy returned when the model misbehaves. The strings are part of
// the storefront's UX contract; do not reword them.
const (
	fallbackDescribeEmpty = "Could not generate description at this time."
	fallbackDescribeError = "AI generation failed. Please try again later."
	fallbackAskEmpty      = "I'm sorry, I couldn't process that question."
	fallbackAskError      = "The AI assistant is currently offline."
	fallbackInsightsEmpty = "No insights available."
	fallbackInsightsError = "AI consultant unavailable."
)

const (
	cacheScopeRecommend = "recommend"
	cacheScopeInsights  = "insights"
)

// recommendationSchema constrains the model to an ordered {id, reason} list.
var recommendationSchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"id": {"type": "INTEGER"},
			"reason": {"type": "STRING", "description": "Why this is a top pick"}
		},
		"required": ["id", "reason"]
	}
}`)

type generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, schema json.RawMessage, out any) error
}

type cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Service answers storefront AI requests, degrading to fixed fallback copy on
// any model failure. A nil generator (no API key configured) behaves like a
// permanently failing model.
type Service struct {
	gen      generator
	catalog  *catalog.Store
	cache    cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds the assist service. The cache is optional.
func NewService(gen generator, store *catalog.Store, responseCache cache, cacheTTL time.Duration, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	return &Service{
		gen:      gen,
		catalog:  store,
		cache:    responseCache,
		cacheTTL: cacheTTL,
		logg:     logg,
	}, nil
}

// DescribeProduct generates marketing copy for a catalog product.
func (s *Service) DescribeProduct(ctx context.Context, productID int) (string, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", productID))
	}

	if s.gen == nil {
		return fallbackDescribeError, nil
	}
	prompt := fmt.Sprintf(
		"Write a catchy, professional, and SEO-friendly product description for a %s in the %s category for a tech gadgets store. Keep it under 100 words.",
		product.Name, product.Category,
	)
	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logModelError(ctx, "generating product description", err)
		return fallbackDescribeError, nil
	}
	if strings.TrimSpace(text) == "" {
		return fallbackDescribeEmpty, nil
	}
	return text, nil
}

// AskAboutProduct answers a shopper question about a catalog product.
func (s *Service) AskAboutProduct(ctx context.Context, productID int, question string) (string, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", productID))
	}
	if strings.TrimSpace(question) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "question is required")
	}

	if s.gen == nil {
		return fallbackAskError, nil
	}
	details, err := json.Marshal(product)
	if err != nil {
		return fallbackAskError, nil
	}
	prompt := fmt.Sprintf(
		"You are an expert sales assistant for SmartCart TechGadgets Store. Answer the following question about this product: %s. Question: %s",
		details, question,
	)
	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logModelError(ctx, "answering product question", err)
		return fallbackAskError, nil
	}
	if strings.TrimSpace(text) == "" {
		return fallbackAskEmpty, nil
	}
	return text, nil
}

// Recommendation is one model pick with its sales pitch.
type Recommendation struct {
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

// Recommendations asks the model for its top picks. It never fails; any
// problem yields an empty list. Results are cached since the catalog is
// static for the process lifetime.
func (s *Service) Recommendations(ctx context.Context) []Recommendation {
	if cached, ok := s.cacheGet(ctx, cacheScopeRecommend); ok {
		var out []Recommendation
		if json.Unmarshal([]byte(cached), &out) == nil {
			return out
		}
	}

	if s.gen == nil || s.catalog.Len() == 0 {
		return []Recommendation{}
	}

	type slimProduct struct {
		ID       int    `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	slim := make([]slimProduct, 0, s.catalog.Len())
	for _, p := range s.catalog.All() {
		slim = append(slim, slimProduct{ID: p.ID, Name: p.Name, Category: p.Category})
	}
	listing, err := json.Marshal(slim)
	if err != nil {
		return []Recommendation{}
	}

	prompt := fmt.Sprintf(
		"Based on these products: %s. Pick the top 3 tech gadgets people would love right now. Return your response as JSON.",
		listing,
	)

	var raw []Recommendation
	if err := s.gen.GenerateJSON(ctx, prompt, recommendationSchema, &raw); err != nil {
		s.logModelError(ctx, "generating recommendations", err)
		return []Recommendation{}
	}

	picks := make([]Recommendation, 0, len(raw))
	for _, rec := range raw {
		if _, ok := s.catalog.Get(rec.ID); !ok {
			continue
		}
		if strings.TrimSpace(rec.Reason) == "" {
			continue
		}
		picks = append(picks, rec)
	}

	s.cachePut(ctx, cacheScopeRecommend, picks)
	return picks
}

// BusinessInsights produces strategic advice over the full inventory for the
// staff dashboard.
func (s *Service) BusinessInsights(ctx context.Context) string {
	if cached, ok := s.cacheGet(ctx, cacheScopeInsights); ok {
		return cached
	}

	if s.gen == nil {
		return fallbackInsightsError
	}
	inventory, err := json.Marshal(s.catalog.All())
	if err != nil {
		return fallbackInsightsError
	}
	prompt := fmt.Sprintf(
		"You are a business consultant. Review this store inventory: %s. Provide 3 strategic insights for the store owner to increase sales. Keep it brief.",
		inventory,
	)
	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logModelError(ctx, "generating business insights", err)
		return fallbackInsightsError
	}
	if strings.TrimSpace(text) == "" {
		return fallbackInsightsEmpty
	}

	s.cachePut(ctx, cacheScopeInsights, text)
	return text
}

func (s *Service) cacheGet(ctx context.Context, scope string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	value, err := s.cache.Get(ctx, s.cache.CacheKey("assist", scope))
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (s *Service) cachePut(ctx context.Context, scope string, value any) {
	if s.cache == nil {
		return
	}
	var payload string
	switch v := value.(type) {
	case string:
		payload = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return
		}
		payload = string(raw)
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey("assist", scope), payload, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "caching assist response failed: "+err.Error())
	}
}

func (s *Service) logModelError(ctx context.Context, msg string, err error) {
	if s.logg != nil {
		s.logg.Error(ctx, msg, err)
	}
}
