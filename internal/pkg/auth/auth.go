package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"appdownloader/internal/models"
)

type contextKey string

const (
	// ContextUserID holds the authenticated user ID in the request context.
	ContextUserID contextKey = "contextUserID"
	// ContextIsStaff holds the staff flag of the authenticated user.
	ContextIsStaff contextKey = "contextIsStaff"
)

// Scheme is the Authorization header scheme expected by CheckTokenMiddleware.
const Scheme = "token"

// CheckTokenMiddleware rejects requests without a valid "token <t>" Authorization header with
// 401 and stores the user ID and staff flag of valid ones in the request context.
func CheckTokenMiddleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, "Authentication credentials were not provided.", http.StatusUnauthorized)
				return
			}
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], Scheme) {
				writeErrorResponse(w, "Invalid token header.", http.StatusUnauthorized)
				return
			}

			claims, err := ParseToken(parts[1])
			if err != nil {
				writeErrorResponse(w, "Invalid token.", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, claims.UserID)
			ctx = context.WithValue(ctx, ContextIsStaff, claims.IsStaff)
			h.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

// RequireStaff answers 403 unless CheckTokenMiddleware marked the caller as staff.
func RequireStaff(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			writeErrorResponse(w, "You do not have permission to perform this action.", http.StatusForbidden)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user ID from ctx.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ContextUserID).(int)
	return id, ok
}

// IsStaff reports whether ctx belongs to a staff caller.
func IsStaff(ctx context.Context) bool {
	staff, _ := ctx.Value(ContextIsStaff).(bool)
	return staff
}

func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Error: errorInfo})
}
