package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/transport"
)

type ServiceAPI interface {
	CashProducts(ctx context.Context) ([]CashProduct, error)
	InstallmentProducts(ctx context.Context) ([]InstallmentProduct, error)
	GroupedCash(ctx context.Context, brand string) ([]ModelGroup, error)
	GroupedInstallment(ctx context.Context, brand string) ([]ModelGroup, error)
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

// GetCash serves GET /api/sheets/cash. ?brand= filters, ?grouped=true returns model groups.
func (h *Handler) GetCash(w http.ResponseWriter, r *http.Request) {
	brand := r.URL.Query().Get("brand")

	if grouped(r) {
		groups, err := h.Service.GroupedCash(r.Context(), brand)
		if err != nil {
			h.WriteAppError(w, r, internal.ErrCatalogUnavailable.WithCause(err))
			return
		}
		h.WriteJSON(w, http.StatusOK, GroupedResponse{Kind: KindCash, Brand: brand, Groups: groups})
		return
	}

	products, err := h.Service.CashProducts(r.Context())
	if err != nil {
		h.WriteAppError(w, r, internal.ErrCatalogUnavailable.WithCause(err))
		return
	}
	h.WriteJSON(w, http.StatusOK, FilterBrand(products, brand))
}

// GetInstallment serves GET /api/sheets/installment.
func (h *Handler) GetInstallment(w http.ResponseWriter, r *http.Request) {
	brand := r.URL.Query().Get("brand")

	if grouped(r) {
		groups, err := h.Service.GroupedInstallment(r.Context(), brand)
		if err != nil {
			h.WriteAppError(w, r, internal.ErrCatalogUnavailable.WithCause(err))
			return
		}
		h.WriteJSON(w, http.StatusOK, GroupedResponse{Kind: KindInstallment, Brand: brand, Groups: groups})
		return
	}

	products, err := h.Service.InstallmentProducts(r.Context())
	if err != nil {
		h.WriteAppError(w, r, internal.ErrCatalogUnavailable.WithCause(err))
		return
	}
	h.WriteJSON(w, http.StatusOK, FilterBrand(products, brand))
}

func grouped(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("grouped"))
	return err == nil && v
}
