package middleware

import (
	"net/http"

	"github.com/Dan9191/deploy-mock/internal/service"
	"github.com/gorilla/mux"
)

// AuthMiddleware resolves the raw Authorization header to a user.
// Requests without a valid token are rejected with 401.
func AuthMiddleware(svc *service.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := svc.ResolveToken(r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(service.WithUser(r.Context(), user)))
		})
	}
}
