package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind string

const (
	KindCash        Kind = "cash"
	KindInstallment Kind = "installment"
)

func (k Kind) Valid() bool {
	return k == KindCash || k == KindInstallment
}

type CashProduct struct {
	Brand   string  `json:"brand"`
	Model   string  `json:"model"`
	Storage string  `json:"storage"`
	Price   float64 `json:"price"`
	Color   string  `json:"color,omitempty"`
}

type InstallmentProduct struct {
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Storage     string   `json:"storage"`
	DownPayment *float64 `json:"downPayment"`
	Month6      *float64 `json:"month6"`
	Month8      *float64 `json:"month8"`
	Month10     *float64 `json:"month10"`
	Month12     *float64 `json:"month12"`
	Note        string   `json:"note"`
}

// Listing is the shape grouping works on, shared by both catalogs.
type Listing interface {
	ListingBrand() string
	ListingModel() string
	ListingStorage() string
	// ListingPrice is the price used for min/max; ok is false when the row has none.
	ListingPrice() (price float64, ok bool)
}

func (p CashProduct) ListingBrand() string   { return p.Brand }
func (p CashProduct) ListingModel() string   { return p.Model }
func (p CashProduct) ListingStorage() string { return p.Storage }
func (p CashProduct) ListingPrice() (float64, bool) {
	return p.Price, true
}

func (p InstallmentProduct) ListingBrand() string   { return p.Brand }
func (p InstallmentProduct) ListingModel() string   { return p.Model }
func (p InstallmentProduct) ListingStorage() string { return p.Storage }
func (p InstallmentProduct) ListingPrice() (float64, bool) {
	if p.DownPayment == nil {
		return 0, false
	}
	return *p.DownPayment, true
}

var (
	numberCleaner = strings.NewReplacer(`"`, "", ",", "", "฿", "")
	// plain decimals only: no exponents, hex, underscores or inf/nan spellings
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
)

// ParseNumber cleans a spreadsheet price cell. Empty, "-" and non-numeric cells have no value.
func ParseNumber(raw string) (float64, bool) {
	cleaned := strings.Join(strings.Fields(numberCleaner.Replace(raw)), "")
	if !decimalPattern.MatchString(cleaned) {
		return 0, false
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseOptional(raw string) *float64 {
	n, ok := ParseNumber(raw)
	if !ok {
		return nil
	}
	return &n
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// NormalizeCash maps rows of the cash tab: brand, model, storage, price, (unused), color.
// The first row is the header.
func NormalizeCash(rows [][]string) []CashProduct {
	if len(rows) <= 1 {
		return []CashProduct{}
	}

	products := make([]CashProduct, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if cell(row, 0) == "" || cell(row, 1) == "" {
			continue
		}
		price, ok := ParseNumber(cell(row, 3))
		if !ok {
			continue
		}
		products = append(products, CashProduct{
			Brand:   strings.ToUpper(cell(row, 0)),
			Model:   cell(row, 1),
			Storage: cell(row, 2),
			Price:   price,
			Color:   cell(row, 5),
		})
	}
	return products
}

// NormalizeInstallment maps rows of the installment tab: brand, model, storage, down
// payment, 6/8/10/12 month amounts, note. The first row is the header.
func NormalizeInstallment(rows [][]string) []InstallmentProduct {
	if len(rows) <= 1 {
		return []InstallmentProduct{}
	}

	products := make([]InstallmentProduct, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if cell(row, 0) == "" || cell(row, 1) == "" {
			continue
		}
		products = append(products, InstallmentProduct{
			Brand:       strings.ToUpper(cell(row, 0)),
			Model:       cell(row, 1),
			Storage:     cell(row, 2),
			DownPayment: parseOptional(cell(row, 3)),
			Month6:      parseOptional(cell(row, 4)),
			Month8:      parseOptional(cell(row, 5)),
			Month10:     parseOptional(cell(row, 6)),
			Month12:     parseOptional(cell(row, 7)),
			Note:        cell(row, 8),
		})
	}
	return products
}
