package quote

import (
	"context"
	"net/http"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/transport"
)

type ServiceAPI interface {
	Summarize(ctx context.Context, staffID string, dto SummaryDTO) (*Quote, error)
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

// Summary serves POST /api/quotes/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := internal.IdentityFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, r, internal.ErrNotAuthenticated)
		return
	}

	var dto SummaryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, r, err)
		return
	}

	q, err := h.Service.Summarize(r.Context(), identity.StaffID, dto)
	if err != nil {
		h.WriteAppError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, q)
}
