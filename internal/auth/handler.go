package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/staff"
	"github.com/vnphone/staff-portal/internal/transport"
)

type SessionAPI interface {
	Login(ctx context.Context, identifier string) (*LoginResult, error)
	Resolve(ctx context.Context, staffID string) (*staff.Staff, error)
}

type Handler struct {
	*transport.BaseHandler
	Sessions SessionAPI
	Cookie   SessionCookie
}

func NewHandler(baseHandler *transport.BaseHandler, sessions SessionAPI, cookie SessionCookie) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Sessions:    sessions,
		Cookie:      cookie,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	result, err := h.Sessions.Login(r.Context(), dto.Identifier)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	h.Cookie.Set(w, result.Token)
	h.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: MsgLoggedIn,
		Staff: SessionStaff{
			ID:       result.Staff.ID,
			Nickname: result.Staff.Nickname,
			Role:     result.Staff.Role,
			Company:  result.Staff.Company,
		},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Cookie.Clear(w)
	h.WriteJSON(w, http.StatusOK, LogoutResponse{Message: MsgLoggedOut})
}

// Me returns the full account of the signed-in caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, r, internal.ErrNotAuthenticated)
		return
	}

	member, err := h.Sessions.Resolve(r.Context(), identity.StaffID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			h.Cookie.Clear(w)
			h.WriteAppError(w, r, internal.ErrNotAuthenticated)
			return
		}
		h.WriteAppError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MeResponse{Staff: member})
}
