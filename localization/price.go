package localization

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders price amounts as locale-correct currency strings for the
// widget. One Formatter per configured shop locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter parses a BCP 47 locale ("en-US", "de"). Unparseable locales
// fall back to English rather than failing the render.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Format renders an amount in the given ISO 4217 currency. Unknown currency
// codes degrade to "<amount> <code>".
func (f *Formatter) Format(amount float64, currencyCode string) string {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return f.printer.Sprintf("%.2f %s", amount, currencyCode)
	}
	return f.printer.Sprint(currency.NarrowSymbol(unit.Amount(amount)))
}

// Locale returns the resolved locale tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}
