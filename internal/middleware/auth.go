package middleware

import (
	"net/http"
	"strings"

	"github.com/SergeyBogomolovv/store-orders/internal/auth"
	"github.com/SergeyBogomolovv/store-orders/internal/entities"
	"github.com/SergeyBogomolovv/store-orders/pkg/utils"
)

type TokenVerifier interface {
	Verify(token string) (entities.Identity, error)
}

// Auth пропускает дальше только запросы с валидным Bearer токеном.
func Auth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.WriteError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				utils.WriteErrorMessage(w, "authentication required", "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
