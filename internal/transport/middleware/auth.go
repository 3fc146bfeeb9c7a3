package middleware

import (
	"net/http"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/pkg/logger"
)

// IdentityLogger adds the verified caller to the request logger. It must run after the gate.
func IdentityLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := internal.IdentityFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.With(r.Context(),
			"staff_id", identity.StaffID,
			"role", identity.Role,
			"company", identity.Company,
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
