package quote

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/catalog"
)

type CartItem struct {
	ID         string  `json:"id"`
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	Storage    string  `json:"storage"`
	Color      string  `json:"color"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Line is one requested cart row before pricing.
type Line struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Storage  string `json:"storage"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

type Quote struct {
	Items          []CartItem `json:"items"`
	TotalQuantity  int        `json:"total_quantity"`
	GrandTotal     float64    `json:"grand_total"`
	GrandTotalText string     `json:"grand_total_text"`
	IssuedAt       time.Time  `json:"issued_at"`
}

// findProduct matches brand and model case-insensitively. An empty storage takes the
// first listing of the model.
func findProduct(products []catalog.CashProduct, l Line) (catalog.CashProduct, bool) {
	for _, p := range products {
		if !strings.EqualFold(p.Brand, l.Brand) || !strings.EqualFold(p.Model, l.Model) {
			continue
		}
		if l.Storage != "" && !strings.EqualFold(p.Storage, l.Storage) {
			continue
		}
		return p, true
	}
	return catalog.CashProduct{}, false
}

// Summarize prices every line against the cash catalog. Nothing is persisted.
func Summarize(products []catalog.CashProduct, lines []Line, issuedAt time.Time) (*Quote, error) {
	if len(lines) == 0 {
		return nil, internal.ErrEmptyQuote
	}

	q := &Quote{Items: make([]CartItem, 0, len(lines)), IssuedAt: issuedAt}
	for i, l := range lines {
		l.Brand = strings.TrimSpace(l.Brand)
		l.Model = strings.TrimSpace(l.Model)
		l.Storage = strings.TrimSpace(l.Storage)

		if l.Quantity < 1 {
			return nil, internal.ErrInvalidQuantity.WithDetails(map[string]int{"line": i})
		}
		p, ok := findProduct(products, l)
		if !ok {
			return nil, internal.ErrUnknownProduct.WithDetails(map[string]int{"line": i})
		}

		storage := l.Storage
		if storage == "" {
			storage = p.Storage
		}
		item := CartItem{
			ID:         uuid.NewString(),
			Brand:      p.Brand,
			Model:      p.Model,
			Storage:    storage,
			Color:      strings.TrimSpace(l.Color),
			Quantity:   l.Quantity,
			UnitPrice:  p.Price,
			TotalPrice: p.Price * float64(l.Quantity),
		}
		q.Items = append(q.Items, item)
		q.TotalQuantity += item.Quantity
		q.GrandTotal += item.TotalPrice
	}
	q.GrandTotalText = catalog.FormatPrice(q.GrandTotal)
	return q, nil
}
