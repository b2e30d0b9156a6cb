package controllers

import (
	"net/http"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/middleware"
	"github.com/SvAkshayKumar/SmartCart-GenAI/api/responses"
	"github.com/SvAkshayKumar/SmartCart-GenAI/api/validators"
	checkoutsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/checkout"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// CheckoutSubmit relays the order form plus the session's cart to the form
// endpoint.
func CheckoutSubmit(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		var form checkoutsvc.OrderForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.PlaceOrder(r.Context(), sessionID, form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "order received"})
	}
}

// ContactSubmit relays a contact-form message.
func ContactSubmit(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var form checkoutsvc.ContactForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Contact(r.Context(), form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "message sent"})
	}
}

type newsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterSubscribe relays a newsletter signup.
func NewsletterSubscribe(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload newsletterRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Subscribe(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "subscribed"})
	}
}
