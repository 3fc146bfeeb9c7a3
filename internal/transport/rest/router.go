package rest

import (
	"log/slog"
	"net/http"

	"github.com/vnphone/staff-portal/internal/activity"
	"github.com/vnphone/staff-portal/internal/auth"
	"github.com/vnphone/staff-portal/internal/catalog"
	"github.com/vnphone/staff-portal/internal/portal"
	"github.com/vnphone/staff-portal/internal/quote"
	"github.com/vnphone/staff-portal/internal/staff"
	"github.com/vnphone/staff-portal/internal/transport"
	"github.com/vnphone/staff-portal/internal/transport/middleware"
	"github.com/vnphone/staff-portal/internal/transport/swagger"
	"github.com/vnphone/staff-portal/pkg/logger"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups everything the router mounts. Nil handlers leave their routes unregistered.
type Handlers struct {
	Gate     *auth.Gate
	Auth     *auth.Handler
	Staff    *staff.Handler
	Catalog  *catalog.Handler
	Activity *activity.Handler
	Quote    *quote.Handler
	Portal   *portal.Handler
	Health   *HealthHandler
	Base     *transport.BaseHandler
	Logger   *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, h Handlers) {
	if h.Logger == nil {
		h.Logger = logger.LoggerWrapper()
	}
	if h.Health == nil {
		h.Health = NewHealthHandler(nil)
	}
	if h.Base == nil {
		h.Base = transport.NewBaseHandler(h.Logger)
	}

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(h.Logger))
	router.Use(middleware.LoggingMiddleware(h.Logger))
	if h.Gate != nil {
		router.Use(h.Gate.Middleware)
	}
	router.Use(middleware.IdentityLogger)

	// OpenAPI document and Swagger UI
	router.Method(http.MethodGet, swagger.DocumentPath, swagger.DocumentHandler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", h.Health.healthCheckHandler)
	router.Get("/ping", h.Health.pingHandler)

	if h.Portal != nil {
		router.Get("/login", h.Portal.LoginPage)
		router.Get("/register", h.Portal.RegisterPage)
		router.Get("/dashboard", h.Portal.Dashboard)
		router.Get("/admin", h.Portal.Admin)
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(ar chi.Router) {
			if h.Auth != nil {
				ar.Post("/login", h.Auth.Login)
				ar.Post("/logout", h.Auth.Logout)
				ar.Get("/me", h.Auth.Me)
			}
			if h.Staff != nil {
				ar.Post("/register", h.Staff.Register)
			}
		})

		if h.Catalog != nil {
			r.Get("/sheets/cash", h.Catalog.GetCash)
			r.Get("/sheets/installment", h.Catalog.GetInstallment)
		}

		// Staff administration; the gate already limits /api/staff to admins.
		if h.Staff != nil {
			r.Route("/staff", func(sr chi.Router) {
				sr.Use(middleware.RequireRole(h.Base, string(staff.RoleAdmin)))
				sr.Get("/", h.Staff.ListStaff)
				sr.Put("/{id}", h.Staff.UpdateStaff)
			})
		}

		if h.Activity != nil {
			r.Route("/logs", func(lr chi.Router) {
				lr.With(middleware.RequireRole(h.Base, string(staff.RoleAdmin))).Get("/", h.Activity.ListLogs)
				lr.Post("/", h.Activity.AppendLog)
			})
		}

		if h.Quote != nil {
			r.Post("/quotes/summary", h.Quote.Summary)
		}
	})
}
