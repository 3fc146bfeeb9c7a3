package quote

import (
	"context"
	"log/slog"
	"time"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/activity"
	"github.com/vnphone/staff-portal/internal/catalog"
)

// PriceList is the cash catalog the quote is priced from.
type PriceList interface {
	CashProducts(ctx context.Context) ([]catalog.CashProduct, error)
}

type Service struct {
	prices   PriceList
	recorder activity.RecorderAPI
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(prices PriceList, recorder activity.RecorderAPI, logger *slog.Logger) *Service {
	return &Service{
		prices:   prices,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Summarize(ctx context.Context, staffID string, dto SummaryDTO) (*Quote, error) {
	if len(dto.Items) == 0 {
		return nil, internal.ErrEmptyQuote
	}

	products, err := s.prices.CashProducts(ctx)
	if err != nil {
		s.logger.Error("failed to load cash catalog for quote", "error", err)
		return nil, internal.ErrCatalogUnavailable.WithCause(err)
	}

	q, err := Summarize(products, dto.Items, s.now())
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, staffID, activity.ActionOpenQuote, map[string]interface{}{
		"item_count":  len(q.Items),
		"grand_total": q.GrandTotal,
	})
	return q, nil
}
