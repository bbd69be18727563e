package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, method jwt.SigningMethod) string {
	t.Helper()

	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authHandler(secret string) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mw := BearerAuthMiddleware(secret, logger)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestBearerAuthMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("empty secret disables the check", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		authHandler("").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/flashcards", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, jwt.SigningMethodHS256))

		rec := httptest.NewRecorder()
		authHandler(testSecret).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		authHandler(testSecret).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/flashcards", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()

		for _, header := range []string{"Bearer", "Bearer ", "Basic abc", signToken(t, testSecret, jwt.SigningMethodHS256)} {
			req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil)
			req.Header.Set("Authorization", header)

			rec := httptest.NewRecorder()
			authHandler(testSecret).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		}
	})

	t.Run("token signed with the wrong secret is rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "another-secret-another-secret-xx", jwt.SigningMethodHS256))

		rec := httptest.NewRecorder()
		authHandler(testSecret).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		t.Parallel()

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iat": time.Now().Add(-2 * time.Hour).Unix(),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil)
		req.Header.Set("Authorization", "Bearer "+signed)

		rec := httptest.NewRecorder()
		authHandler(testSecret).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
