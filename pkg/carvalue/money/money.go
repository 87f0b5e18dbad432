// Package money renders price estimates for display.
package money

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts in one currency for one locale.
type Formatter struct {
	unit    currency.Unit
	symbol  string
	printer *message.Printer
}

// NewFormatter validates the ISO 4217 code and locale tag. symbol is the
// prefix printed before the amount, e.g. "₹".
func NewFormatter(code, symbol, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	if symbol == "" {
		symbol = unit.String()
	}
	return &Formatter{unit: unit, symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// Code returns the ISO 4217 currency code.
func (f *Formatter) Code() string { return f.unit.String() }

// Format renders amount with two decimals and locale digit grouping.
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("%s %.2f", f.symbol, amount)
}
