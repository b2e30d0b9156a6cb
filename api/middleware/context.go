package middleware

import "context"

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxStaffUser contextKey = "staff_user"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

func StaffUserFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxStaffUser).(string); ok {
		return v
	}
	return ""
}

// WithSessionID injects the session identifier, mainly for tests.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
