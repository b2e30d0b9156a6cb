package controllers

import (
	"net/http"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/responses"
	"github.com/SvAkshayKumar/SmartCart-GenAI/api/validators"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/assist"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// ProductDescribe generates marketing copy for one catalog product.
func ProductDescribe(svc *assist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assist service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID)
		}

		description, err := svc.DescribeProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"description": description})
	}
}

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

// ProductAsk answers a shopper question about one catalog product.
func ProductAsk(svc *assist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assist service unavailable"))
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload askRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID)
		}

		answer, err := svc.AskAboutProduct(ctx, productID, payload.Question)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"answer": answer})
	}
}

// Recommendations serves the model's current top picks. The service never
// fails, an unhappy model shows up as an empty list.
func Recommendations(svc *assist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assist service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{"recommendations": svc.Recommendations(r.Context())})
	}
}
