package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/markdave123-py/Chunkwise/internal/logger"
)

type ctxKey string

const clientIDKey ctxKey = "client_id"

// JWTMiddleware validates the bearer token against secret and attaches the
// caller's client id to the request context and logger.
func JWTMiddleware(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			clientID, err := claims.GetSubject()
			if err != nil || clientID == "" {
				clientID, _ = claims["client_id"].(string)
			}
			if clientID == "" {
				http.Error(w, "invalid token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), clientIDKey, clientID)
			ctx = logger.ContextWithLogger(ctx, logger.FromContext(ctx).With("client_id", clientID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientID returns the authenticated client, if any.
func ClientID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey).(string)
	return id, ok
}
