package middleware

import (
	"context"
	"net/http"

	"github.com/iqurastudy/quizapi/internal/handlers"
	"github.com/iqurastudy/quizapi/internal/handlers/render"
	"github.com/iqurastudy/quizapi/internal/models"
)

type sessionService interface {
	UserFromRequest(ctx context.Context, r *http.Request) (models.User, error)
}

// AuthMiddleware authenticates the request by its bearer token and puts
// the acting user into the request context
func AuthMiddleware(s sessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := s.UserFromRequest(r.Context(), r)
			if err != nil {
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := handlers.NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
