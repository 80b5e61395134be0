package middleware

import (
	"context"
	"errors"
	"net/http"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/utils"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if errors.Is(err, utils.ErrNoToken) {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: no token provided")
			return
		}
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
			return
		}

		// Claims are trusted as-is; role changes apply when the token is refreshed.
		user := &domain.User{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}
		setRequestUser(r.Context(), user.ID)

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the caller set by AuthMiddleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(domain.UserContextKey).(*domain.User)
	return user, ok && user != nil
}
