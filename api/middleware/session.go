package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// SessionHeader carries the shopper's session identity. The middleware mints
// one when the client has none and echoes it back so the client can persist
// it, the browser-storage equivalent of this service.
const SessionHeader = "X-Session-Id"

func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionHeader)
			if sessionID == "" || uuid.Validate(sessionID) != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionHeader, sessionID)

			ctx := context.WithValue(r.Context(), ctxSessionID, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
