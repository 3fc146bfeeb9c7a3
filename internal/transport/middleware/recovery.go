package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/transport"
)

// RecoveryMiddleware turns a handler panic into the generic 500 envelope. The panic value
// and stack only reach the log.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()))

					base.WriteJSON(w, http.StatusInternalServerError, internal.Response{
						Error: internal.NewInternalError(internal.MsgGenericFailure, nil),
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
