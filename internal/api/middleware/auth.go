package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
)

// BearerAuthMiddleware requires a bearer JWT with a valid HS256 signature
// over the configured secret. There is no per-user identity: any token
// signed with the secret is accepted. An empty secret disables the check
// entirely, which is the local/file mode.
func BearerAuthMiddleware(tokenSecret string, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "bearer_auth"))

	return func(next http.Handler) http.Handler {
		if tokenSecret == "" {
			return next
		}

		secret := []byte(tokenSecret)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				log.Debug("missing or malformed authorization header", "path", r.URL.Path)
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}

			if err := verifyToken(token, secret); err != nil {
				log.Debug("rejected bearer token", "path", r.URL.Path, "error", err)
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func verifyToken(tokenString string, secret []byte) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}
