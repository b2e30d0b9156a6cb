package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"

	// CategoryAll disables category filtering.
	CategoryAll = "All"
)

// Query is the storefront's filter/sort selection. Zero values mean "no
// constraint"; applying a zero Query returns the catalog unchanged.
type Query struct {
	Category string
	Search   string
	MaxPrice *decimal.Decimal
	Sort     string
}

// Apply derives the visible product list. The input is never mutated and the
// relative load order is kept wherever the sort does not dictate otherwise.
func (q Query) Apply(products []Product) []Product {
	result := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range products {
		if q.Category != "" && q.Category != CategoryAll && p.Category != q.Category {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
			continue
		}
		result = append(result, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.LessThan(result[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.GreaterThan(result[j].Price)
		})
	default:
		// newest keeps load order
	}

	return result
}

func matchesSearch(p Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered)
}
