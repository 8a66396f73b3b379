package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-01", "March 1, 2025"},
		{"2025-03-01T09:00", "March 1, 2025"},
		{"2025-03-01T00:01", "March 1, 2025"},
		{"2025-12-31T23:59:59", "December 31, 2025"},
		{"2025-03-01T00:30:00-05:00", "March 1, 2025"},
		{"03/15/2025", "March 15, 2025"},
		{"3/5/2025", "March 5, 2025"},
		{"", NotAvailable},
		{"   ", NotAvailable},
		{"not a date", NotAvailable},
		{"2025-13-45", NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestISODate(t *testing.T) {
	assert.Equal(t, "2025-07-04", ISODate("07/04/2025"))
	assert.Equal(t, "", ISODate("soon"))
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 1250.0, ParseAmount("$1,250"))
	assert.Equal(t, 1310.5, ParseAmount(" $1,310.50 /yr"))
	assert.Equal(t, 0.0, ParseAmount(""))
	assert.Equal(t, 0.0, ParseAmount("N/A"))
	assert.Equal(t, 0.0, ParseAmount("1.2.3"))
}

func TestMonthlyPremium(t *testing.T) {
	tests := []struct {
		name  string
		total string
		term  string
		want  string
	}{
		{"annual", "$1,310.00", "12", "$109.17"},
		{"six month", "$600", "6", "$100.00"},
		{"rounds half up", "$100.05", "1", "$100.05"},
		{"plain number", "1200", "12", "$100.00"},
		{"zero total", "$0.00", "12", ""},
		{"non numeric total", "call us", "12", ""},
		{"zero term", "$1,200", "0", ""},
		{"bad term", "$1,200", "twelve", ""},
		{"empty term", "$1,200", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthlyPremium(tt.total, tt.term))
		})
	}
}

func TestSignedCurrency(t *testing.T) {
	assert.Equal(t, "+$150.00", SignedCurrency(150))
	assert.Equal(t, "+$60.00", SignedCurrency(60))
	assert.Equal(t, "-$20.50", SignedCurrency(-20.5))
}

func TestOr(t *testing.T) {
	assert.Equal(t, "N/A", Or("", "N/A"))
	assert.Equal(t, "x", Or("x", "N/A"))
}
