package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/vnphone/staff-portal/internal/catalog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SheetsSource", func() {
	var (
		server   *httptest.Server
		lastPath string
		lastTab  string
		status   int
	)

	BeforeEach(func() {
		status = http.StatusOK
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastPath = r.URL.Path
			lastTab = r.URL.Query().Get("sheet")
			Expect(r.URL.Query().Get("tqx")).To(Equal("out:csv"))
			w.WriteHeader(status)
			_, _ = w.Write([]byte("brand,model\nIPHONE,IPHONE 15\n"))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	It("should fetch the CSV export of a tab", func() {
		source := catalog.NewSheetsSource(catalog.SheetsConfig{BaseURL: server.URL + "/", SheetID: "sheet-1"}, server.Client())

		body, err := source.FetchCSV(context.Background(), "ซื้อ สด")
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(ContainSubstring("IPHONE 15"))
		Expect(lastPath).To(Equal("/spreadsheets/d/sheet-1/gviz/tq"))
		Expect(lastTab).To(Equal("ซื้อ สด"))
	})

	It("should report non-success statuses", func() {
		status = http.StatusForbidden
		source := catalog.NewSheetsSource(catalog.SheetsConfig{BaseURL: server.URL, SheetID: "sheet-1"}, server.Client())

		_, err := source.FetchCSV(context.Background(), "ผ่อน")
		Expect(err).To(HaveOccurred())

		var fetchErr *catalog.FetchError
		Expect(errors.As(err, &fetchErr)).To(BeTrue())
		Expect(fetchErr.Status).To(Equal(http.StatusForbidden))
		Expect(fetchErr.Tab).To(Equal("ผ่อน"))
	})

	It("should refuse to fetch without a sheet id", func() {
		source := catalog.NewSheetsSource(catalog.SheetsConfig{BaseURL: server.URL}, nil)

		_, err := source.FetchCSV(context.Background(), "cash")
		Expect(err).To(MatchError(catalog.ErrSheetNotConfigured))
	})
})
