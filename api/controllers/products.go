package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/responses"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// ProductList serves the filtered, sorted storefront view of the catalog. The
// category list rides along so the client can render its filter bar.
func ProductList(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		params := r.URL.Query()

		if featured := params.Get("featured"); featured == "true" {
			limit := 0
			if raw := params.Get("limit"); raw != "" {
				parsed, err := strconv.Atoi(raw)
				if err != nil || parsed < 1 {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
					return
				}
				limit = parsed
			}
			responses.WriteSuccess(w, map[string]any{
				"products":   store.Featured(limit),
				"categories": store.Categories(),
			})
			return
		}

		query := catalog.Query{
			Category: strings.TrimSpace(params.Get("category")),
			Search:   params.Get("search"),
		}

		if raw := params.Get("max_price"); raw != "" {
			maxPrice, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid max_price"))
				return
			}
			query.MaxPrice = &maxPrice
		}

		switch sortKey := params.Get("sort"); sortKey {
		case "", catalog.SortNewest, catalog.SortPriceLow, catalog.SortPriceHigh:
			query.Sort = sortKey
		default:
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sort must be newest, price-low or price-high"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products":   query.Apply(store.All()),
			"categories": store.Categories(),
		})
	}
}

// ProductDetail serves a single catalog product by id.
func ProductDetail(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := store.Get(productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func productIDParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return id, nil
}
