package staff

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/transport"
)

type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*Staff, error)
	List(ctx context.Context) ([]*Staff, error)
	Update(ctx context.Context, adminID, id string, dto UpdateStaffDTO) (*Staff, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Register serves POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	created, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: MsgRegistered,
		Staff: RegisteredStaff{
			ID:       created.ID,
			Nickname: created.Nickname,
			Status:   created.Status,
		},
	})
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.List(r.Context())
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ListResponse{Staff: members})
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, r, internal.ErrNotAuthenticated)
		return
	}

	var dto UpdateStaffDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), identity.StaffID, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, UpdateResponse{Staff: updated})
}
