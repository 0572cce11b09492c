package middleware

import (
	"context"
	"net/http"
	"strings"

	"audiosurvey/internal/service"

	"github.com/gorilla/mux"
)

type contextKey string

const SessionIDKey contextKey = "sessionId"

// AuthMiddleware checks session-scoped tokens
type AuthMiddleware struct {
	tokens *service.TokenService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens *service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireSession validates the bearer token and that it belongs to the
// session named in the path
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		if id, ok := mux.Vars(r)["id"]; ok && id != claims.SessionID {
			http.Error(w, `{"error":"token not valid for this session"}`, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts session ID from context
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
