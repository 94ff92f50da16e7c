package sitedesk

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	dateTimeDisplay = "2/1/2006, 3:04:05 pm"
	dateDisplay     = "2/1/2006"
)

// Formatter renders dates and money for the activity tables.
type Formatter struct {
	printer  *message.Printer
	loc      *time.Location
	currency string
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "en-IN".
func NewFormatter(locale, currency string, loc *time.Location) (Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("locale %q: %w", locale, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return Formatter{printer: message.NewPrinter(tag), loc: loc, currency: currency}, nil
}

// Currency formats v with the locale's digit grouping and the currency symbol.
func (f Formatter) Currency(v float64) string {
	return f.currency + f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// DateTime formats t as day/month/year with a 12-hour clock.
func (f Formatter) DateTime(t time.Time) string {
	return t.In(f.loc).Format(dateTimeDisplay)
}

// Date formats t as day/month/year.
func (f Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format(dateDisplay)
}
