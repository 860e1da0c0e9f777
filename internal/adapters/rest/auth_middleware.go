package rest

import (
	"net/http"
	"strings"

	"listing-admin-service/internal/contextkeys"
	"listing-admin-service/internal/core/domain"
)

// AuthMiddleware - middleware для админских маршрутов. Bearer-токен из заголовка
// становится сессией администратора и уходит апстриму вместе с запросами.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		ctx := contextkeys.ContextWithSession(r.Context(), domain.Session{AccessToken: token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
