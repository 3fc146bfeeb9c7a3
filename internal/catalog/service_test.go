package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/vnphone/staff-portal/internal"
	"github.com/vnphone/staff-portal/internal/catalog"
	"github.com/vnphone/staff-portal/internal/transport"
	"github.com/vnphone/staff-portal/pkg/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	cashCSV = `ยี่ห้อ,รุ่น,ความจุ,ราคา,-,สี
IPHONE,IPHONE 15,128GB,"25,900",,Black
IPHONE,IPHONE 15 PRO MAX,256GB,"45,900",,Natural
samsung,GALAXY S24,256GB,"27,900",,Gray
OPPO,A78,128GB,-,,Blue
`
	installmentCSV = `ยี่ห้อ,รุ่น,ความจุ,ดาวน์,6,8,10,12,หมายเหตุ
IPHONE,IPHONE 15,128GB,"3,000","4,200","3,300","2,700","2,300",
IPHONE,IPHONE 15 PRO MAX,256GB,"6,000","7,900",-,-,"4,200",ฟรีฟิล์ม
`
)

// MockSource serves fixed CSV per tab and counts fetches.
type MockSource struct {
	mu         sync.Mutex
	tabs       map[string]string
	calls      map[string]int
	shouldFail bool
	failError  error
}

func NewMockSource() *MockSource {
	return &MockSource{
		tabs: map[string]string{
			"cash":        cashCSV,
			"installment": installmentCSV,
		},
		calls: make(map[string]int),
	}
}

func (m *MockSource) FetchCSV(_ context.Context, tab string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[tab]++
	if m.shouldFail {
		return "", m.failError
	}
	return m.tabs[tab], nil
}

func (m *MockSource) SetShouldFail(shouldFail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockSource) Calls(tab string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[tab]
}

var _ = Describe("Catalog Service", func() {
	var (
		source  *MockSource
		now     time.Time
		service *catalog.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		source = NewMockSource()
		now = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		cache := catalog.NewMemoryCache().WithClock(func() time.Time { return now })
		service = catalog.NewService(source, cache, catalog.Tabs{Cash: "cash", Installment: "installment"}, 5*time.Minute, logger.Discard())
	})

	Describe("CashProducts", func() {
		It("should parse and normalize the cash tab", func() {
			products, err := service.CashProducts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(HaveLen(3))
			Expect(products[2].Brand).To(Equal("SAMSUNG"))
		})

		It("should reuse the catalog inside the revalidation window", func() {
			_, err := service.CashProducts(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CashProducts(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(source.Calls("cash")).To(Equal(1))
		})

		It("should refetch after the window", func() {
			_, _ = service.CashProducts(ctx)
			now = now.Add(6 * time.Minute)
			_, _ = service.CashProducts(ctx)

			Expect(source.Calls("cash")).To(Equal(2))
		})

		It("should surface fetch failures without a stale fallback", func() {
			_, err := service.CashProducts(ctx)
			Expect(err).NotTo(HaveOccurred())

			now = now.Add(6 * time.Minute)
			source.SetShouldFail(true, &catalog.FetchError{Tab: "cash", Status: 500})

			products, err := service.CashProducts(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to fetch cash tab: 500"))
			Expect(products).To(BeNil())
		})
	})

	Describe("GroupedInstallment", func() {
		It("should put the Pro Max before the base model of the same generation", func() {
			groups, err := service.GroupedInstallment(ctx, "IPHONE")
			Expect(err).NotTo(HaveOccurred())
			Expect(models(groups)).To(Equal([]string{"IPHONE 15 PRO MAX", "IPHONE 15"}))
			Expect(*groups[0].MinPrice).To(Equal(6000.0))
		})
	})

	Describe("Brands", func() {
		It("should list each brand once in sheet order", func() {
			brands, err := service.Brands(ctx, catalog.KindCash)
			Expect(err).NotTo(HaveOccurred())
			Expect(brands).To(Equal([]string{"IPHONE", "SAMSUNG"}))
		})

		It("should reject an unknown catalog kind", func() {
			_, err := service.Brands(ctx, catalog.Kind("trade-in"))
			Expect(err).To(MatchError(ContainSubstring("unknown catalog kind")))
		})
	})
})

var _ = Describe("Catalog Handler", func() {
	var (
		source  *MockSource
		handler *catalog.Handler
	)

	BeforeEach(func() {
		source = NewMockSource()
		service := catalog.NewService(source, nil, catalog.Tabs{Cash: "cash", Installment: "installment"}, time.Minute, logger.Discard())
		handler = catalog.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
	})

	It("should return the cash catalog filtered by brand", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/sheets/cash?brand=samsung", nil)
		w := httptest.NewRecorder()

		handler.GetCash(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var products []catalog.CashProduct
		Expect(json.NewDecoder(w.Body).Decode(&products)).To(Succeed())
		Expect(products).To(HaveLen(1))
		Expect(products[0].Model).To(Equal("GALAXY S24"))
	})

	It("should return grouped installment models", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/sheets/installment?brand=IPHONE&grouped=true", nil)
		w := httptest.NewRecorder()

		handler.GetInstallment(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp catalog.GroupedResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Kind).To(Equal(catalog.KindInstallment))
		Expect(models(resp.Groups)).To(Equal([]string{"IPHONE 15 PRO MAX", "IPHONE 15"}))
	})

	It("should hide the upstream detail on failure", func() {
		source.SetShouldFail(true, errors.New("dial tcp: connection refused"))
		req := httptest.NewRequest(http.MethodGet, "/api/sheets/cash", nil)
		w := httptest.NewRecorder()

		handler.GetCash(w, req)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeCatalogUnavailable)))
		Expect(w.Body.String()).To(ContainSubstring("ไม่สามารถโหลดข้อมูลสินค้าได้"))
		Expect(w.Body.String()).NotTo(ContainSubstring("connection refused"))
	})
})
