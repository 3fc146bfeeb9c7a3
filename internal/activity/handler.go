package activity

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, limit int) ([]*Entry, error)
	Append(ctx context.Context, staffID string, dto AppendDTO) error
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

// ListLogs serves GET /api/logs. Admin only, guarded at the router.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}
	limit = ClampLimit(limit)

	entries, err := h.Service.List(r.Context(), limit)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Logs: entries, Limit: limit})
}

// AppendLog serves POST /api/logs for any signed-in staff member.
func (h *Handler) AppendLog(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, r, internal.ErrNotAuthenticated)
		return
	}

	var dto AppendDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	if err := h.Service.Append(r.Context(), identity.StaffID, dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusAccepted, AppendResponse{Accepted: true})
}
