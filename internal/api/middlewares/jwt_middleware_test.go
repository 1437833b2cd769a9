package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJWTMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClientID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := JWTMiddleware("topsecret")(next)

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/list-strategies", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Should pass a valid token and expose the subject", func(t *testing.T) {
		seen = ""
		tok := signed(t, "topsecret", jwt.MapClaims{"sub": "client-7", "exp": time.Now().Add(time.Hour).Unix()})
		rec := call("Bearer " + tok)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "client-7", seen)
	})

	t.Run("Should accept a client_id claim", func(t *testing.T) {
		seen = ""
		rec := call("Bearer " + signed(t, "topsecret", jwt.MapClaims{"client_id": "legacy"}))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "legacy", seen)
	})

	t.Run("Should reject a missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("").Code)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		rec := call("Bearer " + signed(t, "other", jwt.MapClaims{"sub": "x"}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		rec := call("Bearer " + signed(t, "topsecret", jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Should reject tokens without a subject", func(t *testing.T) {
		rec := call("Bearer " + signed(t, "topsecret", jwt.MapClaims{"role": "admin"}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
