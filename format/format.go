// Package format holds the currency and date helpers used while rendering.
// None of them return errors: bad input becomes "N/A" or "".
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is printed for missing or unparseable values.
const NotAvailable = "N/A"

const displayLayout = "January 2, 2006"

// Layouts tried before falling back to free-text parsing. None of them carry
// a zone, so the wall-clock date is kept as written.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006",
	"1/2/2006",
}

var printer = message.NewPrinter(language.AmericanEnglish)

// ParseDate interprets s as a calendar date. Zone-less input is read in UTC
// so the day never shifts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		// Keep the date as written, not as seen from UTC.
		return t, true
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Date renders s as "March 1, 2025" or NotAvailable.
func Date(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return NotAvailable
	}
	return t.Format(displayLayout)
}

// ISODate converts s to YYYY-MM-DD, or returns "" when it cannot be parsed.
func ISODate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// ParseAmount keeps only digits and '.', then parses. Anything unparseable is 0.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Currency formats v as US dollars, e.g. "$1,250.00".
func Currency(v float64) string {
	return "$" + printer.Sprintf("%.2f", round2(v))
}

// SignedCurrency formats a delta with an explicit sign, e.g. "+$150.00".
func SignedCurrency(delta float64) string {
	if delta < 0 {
		return "-" + Currency(-delta)
	}
	return "+" + Currency(delta)
}

// MonthlyPremium divides total by term months. It returns "" when the total
// is zero or non-numeric, or when the term is zero or unparseable.
func MonthlyPremium(total, termMonths string) string {
	amount := ParseAmount(total)
	if amount == 0 {
		return ""
	}
	term, err := strconv.Atoi(strings.TrimSpace(termMonths))
	if err != nil || term <= 0 {
		return ""
	}
	return Currency(amount / float64(term))
}

// Or returns s, or fallback when s is blank.
func Or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
