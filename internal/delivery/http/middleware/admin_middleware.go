package middleware

import (
	"net/http"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/pkg/utils"
)

// AdminMiddleware ensures the authenticated user has the 'admin' role.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
		if !ok || user == nil {
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: no user in context")
			return
		}

		if user.Role != domain.RoleAdmin {
			utils.WriteError(w, http.StatusForbidden, "Forbidden: admins only")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin chains AuthMiddleware and AdminMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return AuthMiddleware(AdminMiddleware(next))
}
