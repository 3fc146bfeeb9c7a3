package middleware

import (
	"net/http"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/transport"
	"github.com/vnphone/staff-portal/pkg/logger"
)

// RequireRole lets the request through when the verified caller holds one of roles.
func RequireRole(base *transport.BaseHandler, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := internal.IdentityFromContext(r.Context())
			if !ok {
				base.WriteAppError(w, r, internal.ErrNotAuthenticated)
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.From(r.Context()).Warn("access denied: role not allowed",
				"staff_id", identity.StaffID,
				"role", identity.Role,
				"required_roles", roles)
			base.WriteAppError(w, r, internal.ErrAdminOnly)
		})
	}
}
