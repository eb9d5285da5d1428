package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"biosphere-server/internal/auth"
	"biosphere-server/internal/shared/errors"
	"biosphere-server/internal/shared/response"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// RequireToken admits requests carrying a valid write-scoped bearer token.
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "token",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing token authentication")

		token := bearerToken(r)
		if token == "" {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		if !claims.CanWrite() {
			response.Error(w, r, logger, errors.Forbidden("token lacks write scope"))
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		logger.Debug("Token authentication successful", "subject", claims.Subject)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalToken attaches claims when a bearer token is present. A present
// but invalid token is still rejected.
func OptionalToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger := slog.With("middleware", "optional_token", "method", r.Method, "path", r.URL.Path)
			response.Error(w, r, logger, errors.Unauthorized("invalid token"))
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func GetClaimsFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
