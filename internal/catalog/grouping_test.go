package catalog_test

import (
	"github.com/vnphone/staff-portal/internal/catalog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func models(groups []catalog.ModelGroup) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Model
	}
	return out
}

var _ = Describe("Display grouping", func() {
	cash := []catalog.CashProduct{
		{Brand: "IPHONE", Model: "IPHONE 15", Storage: "256GB", Price: 29900},
		{Brand: "IPHONE", Model: "IPHONE 15", Storage: "128GB", Price: 25900},
		{Brand: "IPHONE", Model: "IPHONE 15", Storage: "128GB", Price: 26500, Color: "Pink"},
		{Brand: "IPHONE", Model: "IPHONE 15 PRO MAX", Storage: "1TB", Price: 59900},
		{Brand: "IPHONE", Model: "IPHONE 15 PRO MAX", Storage: "256GB", Price: 45900},
		{Brand: "SAMSUNG", Model: "GALAXY S24", Storage: "256GB", Price: 27900},
	}

	Describe("GroupByModel", func() {
		It("should track min, max and distinct storages per model", func() {
			groups := catalog.GroupByModel(catalog.FilterBrand(cash, "iphone"))
			Expect(groups).To(HaveLen(2))

			base := groups[0]
			Expect(base.Model).To(Equal("IPHONE 15"))
			Expect(*base.MinPrice).To(Equal(25900.0))
			Expect(*base.MaxPrice).To(Equal(29900.0))
			Expect(base.Storages).To(Equal([]string{"128GB", "256GB"}))
			Expect(base.Count).To(Equal(3))

			proMax := groups[1]
			Expect(proMax.Storages).To(Equal([]string{"256GB", "1TB"}))
		})

		It("should give the same groups for any input order", func() {
			reversed := make([]catalog.CashProduct, len(cash))
			for i, p := range cash {
				reversed[len(cash)-1-i] = p
			}

			Expect(catalog.GroupByModel(reversed)).To(Equal(catalog.GroupByModel(cash)))
		})

		It("should not mutate the input", func() {
			before := append([]catalog.CashProduct(nil), cash...)
			_ = catalog.SortGroups("IPHONE", catalog.GroupByModel(cash))
			Expect(cash).To(Equal(before))
		})

		It("should leave prices empty when no row carries one", func() {
			groups := catalog.GroupByModel([]catalog.InstallmentProduct{
				{Brand: "OPPO", Model: "A78", Storage: "128GB"},
			})
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].MinPrice).To(BeNil())
			Expect(groups[0].MaxPrice).To(BeNil())
		})
	})

	Describe("IPhoneSortKey", func() {
		It("should rank tiers within a generation", func() {
			Expect(catalog.IPhoneSortKey("IPHONE 15 PRO MAX")).To(Equal(-150))
			Expect(catalog.IPhoneSortKey("IPHONE 15 PRO")).To(Equal(-149))
			Expect(catalog.IPhoneSortKey("IPHONE 15 PLUS")).To(Equal(-148))
			Expect(catalog.IPhoneSortKey("IPHONE 15")).To(Equal(-147))
			Expect(catalog.IPhoneSortKey("iPhone 16e")).To(Equal(-156))
		})

		It("should treat models without a generation as generation zero", func() {
			Expect(catalog.IPhoneSortKey("IPAD AIR")).To(Equal(3))
		})
	})

	Describe("SortGroups", func() {
		It("should order iPhones by generation then tier", func() {
			groups := catalog.GroupByModel([]catalog.InstallmentProduct{
				{Brand: "IPHONE", Model: "IPHONE 15", DownPayment: ptr(3000)},
				{Brand: "IPHONE", Model: "IPHONE 16E", DownPayment: ptr(2000)},
				{Brand: "IPHONE", Model: "IPHONE 15 PRO MAX", DownPayment: ptr(6000)},
				{Brand: "IPHONE", Model: "IPHONE 16 PRO", DownPayment: ptr(7000)},
				{Brand: "IPHONE", Model: "IPHONE 16", DownPayment: ptr(4000)},
			})

			Expect(models(catalog.SortGroups("IPHONE", groups))).To(Equal([]string{
				"IPHONE 16 PRO", "IPHONE 16", "IPHONE 16E", "IPHONE 15 PRO MAX", "IPHONE 15",
			}))
		})

		It("should order other brands by max price descending", func() {
			groups := catalog.GroupByModel([]catalog.CashProduct{
				{Brand: "SAMSUNG", Model: "GALAXY A15", Price: 5990},
				{Brand: "SAMSUNG", Model: "GALAXY S24 ULTRA", Price: 46900},
				{Brand: "SAMSUNG", Model: "GALAXY S24", Price: 27900},
				{Brand: "SAMSUNG", Model: "GALAXY S24", Price: 31900},
			})

			Expect(models(catalog.SortGroups("SAMSUNG", groups))).To(Equal([]string{
				"GALAXY S24 ULTRA", "GALAXY S24", "GALAXY A15",
			}))
		})

		It("should put unpriced groups last", func() {
			groups := []catalog.ModelGroup{
				{Brand: "OPPO", Model: "A18"},
				{Brand: "OPPO", Model: "RENO 12", MaxPrice: ptr(15990)},
			}
			Expect(models(catalog.SortGroups("OPPO", groups))).To(Equal([]string{"RENO 12", "A18"}))
		})
	})

	Describe("Brands", func() {
		It("should list distinct brands uppercased in first-seen order", func() {
			Expect(catalog.Brands(cash)).To(Equal([]string{"IPHONE", "SAMSUNG"}))
		})
	})
})
