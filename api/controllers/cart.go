package controllers

import (
	"net/http"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/middleware"
	"github.com/SvAkshayKumar/SmartCart-GenAI/api/responses"
	"github.com/SvAkshayKumar/SmartCart-GenAI/api/validators"
	cartsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/cart"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/catalog"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/pricing"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

type cartView struct {
	Items   []cartsvc.Item  `json:"items"`
	Count   int             `json:"count"`
	Coupon  *pricing.Coupon `json:"coupon,omitempty"`
	Pricing pricing.Result  `json:"pricing"`
}

func newCartView(engine *cartsvc.Engine) cartView {
	return cartView{
		Items:   engine.Items(),
		Count:   engine.Count(),
		Coupon:  engine.Coupon(),
		Pricing: engine.Totals(),
	}
}

// CartFetch returns the session's cart with the current pricing breakdown.
func CartFetch(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(engine))
	}
}

type addItemRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
	Quantity  int `json:"quantity"`
}

// CartAddItem merges a catalog product into the session's cart.
func CartAddItem(carts *cartsvc.Manager, store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := store.Get(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		engine.AddItem(r.Context(), product, payload.Quantity)
		responses.WriteSuccess(w, newCartView(engine))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdateItem sets the quantity for one cart line. A non-positive quantity
// removes the line.
func CartUpdateItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.UpdateQuantity(r.Context(), productID, payload.Quantity)
		responses.WriteSuccess(w, newCartView(engine))
	}
}

// CartRemoveItem drops one cart line.
func CartRemoveItem(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.RemoveItem(r.Context(), productID)
		responses.WriteSuccess(w, newCartView(engine))
	}
}

// CartClear empties the session's cart and drops the active coupon.
func CartClear(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		engine.Clear(r.Context())
		responses.WriteSuccess(w, newCartView(engine))
	}
}

type applyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

type couponResponse struct {
	Valid   bool            `json:"valid"`
	Message string          `json:"message"`
	Coupon  *pricing.Coupon `json:"coupon,omitempty"`
	Pricing pricing.Result  `json:"pricing"`
}

// CartApplyCoupon activates a coupon for the session. An unknown code is a
// 200 with valid=false, matching the storefront's inline feedback.
func CartApplyCoupon(carts *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine, err := sessionEngine(r, carts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload applyCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, ok := engine.ApplyCoupon(payload.Code)
		if !ok {
			responses.WriteSuccess(w, couponResponse{
				Valid:   false,
				Message: "Invalid coupon code.",
				Pricing: engine.Totals(),
			})
			return
		}

		responses.WriteSuccess(w, couponResponse{
			Valid:   true,
			Message: "Coupon " + coupon.Code + " applied.",
			Coupon:  &coupon,
			Pricing: engine.Totals(),
		})
	}
}

func sessionEngine(r *http.Request, carts *cartsvc.Manager) (*cartsvc.Engine, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return carts.Engine(r.Context(), sessionID), nil
}
