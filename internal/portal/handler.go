package portal

import (
	"context"
	"errors"
	"net/http"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/auth"
	"github.com/vnphone/staff-portal/internal/transport"
)

type ServiceAPI interface {
	Dashboard(ctx context.Context, staffID string) (*DashboardResponse, error)
	Admin(ctx context.Context) (*AdminResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Cookie  auth.SessionCookie
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, cookie auth.SessionCookie) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Cookie:      cookie,
	}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, auth.LoginPath, http.StatusFound)
		return
	}

	resp, err := h.Service.Dashboard(r.Context(), identity.StaffID)
	if err != nil {
		if errors.Is(err, auth.ErrNoSession) {
			h.Cookie.Clear(w)
			http.Redirect(w, r, auth.LoginPath, http.StatusFound)
			return
		}
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

// Admin serves GET /admin. The gate has already limited it to admins.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Admin(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, LoginPage)
}

func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, RegisterPage)
}
