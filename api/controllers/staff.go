package controllers

import (
	"net/http"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/responses"
	"github.com/SvAkshayKumar/SmartCart-GenAI/api/validators"
	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/assist"
	staffsvc "github.com/SvAkshayKumar/SmartCart-GenAI/internal/staff"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

type staffLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StaffLogin verifies the staff credential pair and returns an access token.
func StaffLogin(svc *staffsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		var payload staffLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Login(r.Context(), payload.Username, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"token": token})
	}
}

// StaffDashboard serves inventory stats for the staff portal.
func StaffDashboard(svc *staffsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "staff service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.Dashboard(r.Context()))
	}
}

// StaffInsights serves AI business advice for the staff portal.
func StaffInsights(svc *assist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assist service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"insights": svc.BusinessInsights(r.Context())})
	}
}
