package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	proMaxPattern = regexp.MustCompile(` PRO MAX`)
	proPattern    = regexp.MustCompile(` PRO\b`)
	plusPattern   = regexp.MustCompile(` PLUS`)
	applePrefix   = regexp.MustCompile(`^APPLE `)

	thaiPrinter = message.NewPrinter(language.Thai)
)

// FormatModelName turns sheet model names into display names, e.g. "IPHONE 15 PRO MAX" to "iPhone 15 Pro Max".
func FormatModelName(model string) string {
	if strings.HasPrefix(model, "IPHONE") {
		name := strings.Replace(model, "IPHONE ", "iPhone ", 1)
		name = proMaxPattern.ReplaceAllString(name, " Pro Max")
		name = proPattern.ReplaceAllString(name, " Pro")
		return plusPattern.ReplaceAllString(name, " Plus")
	}
	return applePrefix.ReplaceAllString(model, "")
}

func ShortName(brand, model string) string {
	if strings.EqualFold(brand, IPhoneBrand) {
		return strings.Replace(FormatModelName(model), "iPhone ", "", 1)
	}
	return FormatModelName(model)
}

// FormatPrice renders a price with Thai digit grouping.
func FormatPrice(price float64) string {
	return thaiPrinter.Sprint(number.Decimal(price, number.MaxFractionDigits(2)))
}
