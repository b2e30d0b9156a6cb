package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/api/responses"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// RateLimiter is the window-counter surface the assist limiter needs.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AssistRateLimit applies a per-session fixed window to the AI endpoints. A
// nil limiter (redis not configured) disables limiting, and limiter errors
// fail open; the model quota is the real backstop.
func AssistRateLimit(limiter RateLimiter, limit int64, window time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			scope := "assist:" + SessionIDFromContext(r.Context())
			allowed, _, err := limiter.FixedWindowAllow(r.Context(), scope, limit, window)
			if err != nil {
				if logg != nil {
					logg.Error(r.Context(), "assist rate limit check failed, allowing request", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many AI requests, slow down"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
