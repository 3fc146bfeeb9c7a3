package catalog_test

import (
	"github.com/vnphone/staff-portal/internal/catalog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CSV parser", func() {
	Describe("ParseLine", func() {
		It("should keep commas inside quoted fields", func() {
			Expect(catalog.ParseLine(`A,"B, C",D`)).To(Equal([]string{"A", "B, C", "D"}))
		})

		It("should turn doubled quotes into one literal quote", func() {
			Expect(catalog.ParseLine(`"He said ""hi"""`)).To(Equal([]string{`He said "hi"`}))
		})

		It("should trim surrounding whitespace", func() {
			Expect(catalog.ParseLine(`  IPHONE , IPHONE 15 ,128GB `)).To(Equal([]string{"IPHONE", "IPHONE 15", "128GB"}))
		})

		It("should keep empty fields", func() {
			Expect(catalog.ParseLine(`a,,b,`)).To(Equal([]string{"a", "", "b", ""}))
		})

		It("should read Thai text and currency glyphs unchanged", func() {
			Expect(catalog.ParseLine(`ซัมซุง,"฿12,900",ผ่อน`)).To(Equal([]string{"ซัมซุง", "฿12,900", "ผ่อน"}))
		})

		It("should not fail on an unterminated quote", func() {
			Expect(catalog.ParseLine(`a,"b,c`)).To(Equal([]string{"a", "b,c"}))
		})

		It("should return one empty field for an empty line", func() {
			Expect(catalog.ParseLine("")).To(Equal([]string{""}))
		})
	})

	Describe("ParseDocument", func() {
		It("should drop blank lines and carriage returns", func() {
			doc := "brand,model\r\n\r\nIPHONE,IPHONE 15\r\n   \nOPPO,A78\n"

			Expect(catalog.ParseDocument(doc)).To(Equal([][]string{
				{"brand", "model"},
				{"IPHONE", "IPHONE 15"},
				{"OPPO", "A78"},
			}))
		})

		It("should return no rows for empty input", func() {
			Expect(catalog.ParseDocument("")).To(BeEmpty())
		})
	})
})
