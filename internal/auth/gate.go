package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/staff"
	"github.com/vnphone/staff-portal/internal/transport"
)

var (
	DefaultPublicPrefixes = []string{
		"/login",
		"/register",
		"/api/auth/login",
		"/api/auth/register",
		"/api/auth/logout",
		"/health",
		"/ping",
		"/swagger",
		"/openapi.yml",
	}
	DefaultAdminPrefixes = []string{"/admin", "/api/staff"}
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type GateConfig struct {
	PublicPrefixes []string
	AdminPrefixes  []string
	// RecheckSession re-reads the account on every request so status and role
	// changes apply before the token expires.
	RecheckSession bool
}

// SessionChecker is satisfied by SessionResolver.
type SessionChecker interface {
	Resolve(ctx context.Context, staffID string) (*staff.Staff, error)
}

// Gate classifies every request as public, protected or admin-only and attaches
// the verified identity to the request context.
type Gate struct {
	*transport.BaseHandler
	codec    *TokenCodec
	cookie   SessionCookie
	sessions SessionChecker
	cfg      GateConfig
}

func NewGate(codec *TokenCodec, cookie SessionCookie, sessions SessionChecker, cfg GateConfig, logger *slog.Logger) *Gate {
	if cfg.PublicPrefixes == nil {
		cfg.PublicPrefixes = DefaultPublicPrefixes
	}
	if cfg.AdminPrefixes == nil {
		cfg.AdminPrefixes = DefaultAdminPrefixes
	}
	return &Gate{
		BaseHandler: transport.NewBaseHandler(logger),
		codec:       codec,
		cookie:      cookie,
		sessions:    sessions,
		cfg:         cfg,
	}
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (g *Gate) IsPublic(path string) bool {
	return hasAnyPrefix(path, g.cfg.PublicPrefixes)
}

func (g *Gate) IsAdminOnly(path string) bool {
	return hasAnyPrefix(path, g.cfg.AdminPrefixes)
}

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.IsPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token := g.cookie.Token(r)
		if token == "" {
			g.unauthenticated(w, r)
			return
		}

		payload, ok := g.codec.Verify(token)
		if !ok {
			g.Logger.Info("gate: rejected session token", "path", r.URL.Path)
			g.cookie.Clear(w)
			g.unauthenticated(w, r)
			return
		}

		identity := internal.Identity{
			StaffID: payload.StaffID,
			Role:    payload.Role,
			Company: payload.Company,
		}

		if g.cfg.RecheckSession && g.sessions != nil {
			member, err := g.sessions.Resolve(r.Context(), payload.StaffID)
			if err != nil {
				if errors.Is(err, ErrNoSession) {
					g.cookie.Clear(w)
					g.unauthenticated(w, r)
					return
				}
				g.WriteAppError(w, r, internal.NewInternalError(internal.MsgGenericFailure, err))
				return
			}
			identity.Role = string(member.Role)
			identity.Company = string(member.Company)
		}

		if g.IsAdminOnly(r.URL.Path) && !identity.IsAdmin() {
			g.forbidden(w, r)
			return
		}

		ctx := internal.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gate) unauthenticated(w http.ResponseWriter, r *http.Request) {
	if transport.IsAPIRequest(r) {
		g.WriteAppError(w, r, internal.ErrNotAuthenticated)
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

func (g *Gate) forbidden(w http.ResponseWriter, r *http.Request) {
	if transport.IsAPIRequest(r) {
		g.WriteAppError(w, r, internal.ErrAdminOnly)
		return
	}
	http.Redirect(w, r, DashboardPath, http.StatusFound)
}
