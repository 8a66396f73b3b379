package prose

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
)

func testInput(f form.Data) Input {
	return Input{
		Form:   f,
		Agent:  config.Agent{ID: "stub", Name: "Stub Agent", Title: "Agent", Email: "stub@example.com", Phone: "336-555-0100"},
		Agency: config.DefaultAgency(),
	}
}

func TestNewRateChange(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		current  string
		delta    string
	}{
		{"increase", "$1,100", "$1,250", "$150.00"},
		{"decrease", "$1,250", "$1,100", ""},
		{"equal", "$900", "$900", ""},
		{"missing previous", "", "$900", ""},
		{"non numeric", "call", "$900", ""},
		{"zero current", "$900", "$0", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := NewRateChange(tt.previous, tt.current)
			if tt.delta == "" {
				assert.Nil(t, rc)
				return
			}
			require.NotNil(t, rc)
			assert.Equal(t, tt.delta, rc.Delta)
		})
	}
}

func TestRenewalEndToEnd(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.PolicyRenewal
	f.RenewalType = "Auto"
	f.QuoteAmount = "$1,310.00"
	f.PreviousQuoteAmount = "$1,250.00"
	f.PolicyTerm = "12"
	f.RenewalDue = "2025-03-01T09:00"
	f.PolicyNumber = "NW 123"

	out, err := Merge(testInput(f))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "$109.17")
	assert.Contains(t, html, "March 1, 2025")
	assert.Contains(t, html, "Change: +$60.00")
	assert.Contains(t, html, "Your 12-month premium is")
	assert.Contains(t, html, "Auto Coverage Summary")
	assert.Contains(t, html, "mailto:stub@example.com?subject=Question%20about%20my%20renewal%3A%20Policy%20%23NW%20123")
	assert.Contains(t, html, "Rates across the industry", "stock note when no explanation is given")
}

func TestRenewalDecreaseHasNoRateBlock(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.PolicyRenewal
	f.QuoteAmount = "$1,100"
	f.PreviousQuoteAmount = "$1,250"

	out, err := Renewal(testInput(f))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Change:")
	assert.Contains(t, string(out), "Your new annual premium is")
	assert.Contains(t, string(out), "Home Coverage Summary")
}

func TestHomeQuote(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.InsuranceQuote
	f.QuoteType = "Home"
	f.CarrierName = "Progressive Home"
	f.QuoteAmount = "$1,200"
	f.DwellingCoverage = "$250,000"
	f.IsUpdatedQuote = true
	f.RecipientName = "Jane"
	f.PolicyHolder = "Jane Doe"

	in := testInput(f)
	in.Prose = Prose{Greeting: "Here is your Updated quote, Jane & family", Intro: "Intro text", CTAText: "Call us"}
	out, err := Merge(in)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "Here is your <strong>UPDATED</strong> quote, Jane &amp; family")
	assert.Contains(t, html, "$100.00")
	assert.Contains(t, html, "Dwelling (Coverage A)")
	assert.Contains(t, html, "$250,000")
	assert.Equal(t, 5, strings.Count(html, ">N/A<"), "five empty coverages fall back to N/A")
	assert.Contains(t, html, "#003F64", "progressive theme")
	assert.Contains(t, html, "https://i.imgur.com/7N1vfo0.png")
	assert.Contains(t, html, "Intro text")
	assert.Contains(t, html, "Call us")
	assert.NotContains(t, html, "Change:")
}

func TestGreetingNotUpdated(t *testing.T) {
	assert.Equal(t, template.HTML("An updated quote &lt;b&gt;"), greeting("An updated quote <b>", false))
}

func TestAutoQuoteCoverages(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.InsuranceQuote
	f.QuoteType = "Auto"
	f.QuoteAmount = "$600"
	f.PolicyTerm = "6"
	f.AutoVehicles = "2023 Toyota Camry"

	out, err := Merge(testInput(f))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Detailed coverages are attached in the PDF document.")
	assert.Contains(t, string(out), "2023 Toyota Camry")
	assert.Contains(t, string(out), "$100.00")

	f.ItemizedCoveragesHTML = `<table class="vehicle-coverage-table"><tr><td>Liability</td></tr></table><script>alert(1)</script>`
	in := testInput(f)
	in.Sanitize = func(s string) string { return strings.ReplaceAll(s, "<script>alert(1)</script>", "") }
	out, err = Merge(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<table class="vehicle-coverage-table">`)
	assert.NotContains(t, string(out), "<script>")
}

func TestWelcomeUsesCarrierContact(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.NewPolicyWelcome
	f.CarrierName = "nc_grange"
	f.RenewalType = "Home"
	f.PolicyEffectiveDate = "2025-06-15"

	out, err := Merge(testInput(f))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Important Contacts for NC Grange")
	assert.Contains(t, html, `href="tel:8006627777"`)
	assert.Contains(t, html, "June 15, 2025")
	assert.Contains(t, html, "Home Insurance")
}

func TestLatePayment(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.LatePaymentNotice
	f.CarrierName = "dairyland"
	f.LateAmountDue = "$88.10"
	f.LateCancellationDate = "2025-04-02"

	out, err := Merge(testInput(f))
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "https://www.dairylandinsurance.com/make-a-payment")
	assert.Contains(t, html, "Pay Online at Dairyland")
	assert.Contains(t, html, "Call to Pay: 800-334-0090")
	assert.Contains(t, html, "April 2, 2025")
	assert.Contains(t, html, "$88.10")

	f.LatePaymentLink = "https://pay.example.com/x"
	out, err = Merge(testInput(f))
	require.NoError(t, err)
	assert.Contains(t, string(out), "https://pay.example.com/x")
}

func TestReceiptDefaults(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.Receipt
	out, err := Merge(testInput(f))
	require.NoError(t, err)
	assert.Contains(t, string(out), "$0.00")
	assert.Contains(t, string(out), "Auto Insurance")
	assert.Contains(t, string(out), "Thank you for your payment, Valued Client!")
}

func TestGenericBody(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.CustomMessage
	in := testInput(f)
	in.Body = "<p>Hello</p>"
	out, err := Merge(in)
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<p>Hello</p>"), out)
}

func TestBulkPlaceholdersSurviveRendering(t *testing.T) {
	f := form.Defaults().ForBulk()
	f.DocumentType = form.Receipt
	out, err := Merge(testInput(f))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Thank you for your payment, {{recipientName}}!")
	assert.Contains(t, string(out), "{{policyHolder}}")
}
