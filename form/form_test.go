package form

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const short = "Bill Layne Ins"

func TestDefaultSubject(t *testing.T) {
	tests := []struct {
		docType      DocumentType
		policyHolder string
		changeType   string
		want         string
	}{
		{AutoDocumentation, "Jane Doe", "", "Your Auto Ins Docs from Bill Layne Ins - Jane Doe"},
		{AutoDocumentation, "", "", "Your Auto Ins Docs from Bill Layne Ins"},
		{NewPolicyWelcome, "Jane Doe", "", "Welcome! Your New Policy from Bill Layne Ins Is Here"},
		{ChangeRequest, "Jane", ChangeTypeRequest, "Policy Change Request from Bill Layne Ins - Jane"},
		{ChangeRequest, "Jane", ChangeTypeConfirmation, "Confirmation of Policy Change from Bill Layne Ins - Jane"},
		{LatePaymentNotice, "Jane", "", "URGENT: Your insurance policy is pending cancellation"},
		{Newsletter, "Jane", "", "News & Offers from Bill Layne Ins"},
		{PolicyRenewal, PlaceholderPolicyHolder, "", "Important: Policy Renewal Info from Bill Layne Ins - {{policyHolder}}"},
		{"", "Jane", "", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultSubject(tt.docType, tt.policyHolder, tt.changeType, short))
		})
	}
}

func TestPreheader(t *testing.T) {
	d := Defaults()
	d.DocumentType = InsuranceQuote
	d.PolicyHolder = "Jane Doe"
	assert.Equal(t, "Your personalized insurance quote is ready for Jane Doe!", d.Preheader("Agency"))

	d.DocumentType = AIPrompt
	assert.Equal(t, "An important update regarding your policy is inside.", d.Preheader("Agency"))

	d.DocumentType = ""
	assert.Equal(t, "Important information from Agency.", d.Preheader("Agency"))

	d.EmailPreheader = "custom"
	assert.Equal(t, "custom", d.Preheader("Agency"))
}

func TestWithMonthlyPremium(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Data)
		want string
	}{
		{"auto renewal uses term", func(d *Data) {
			d.DocumentType, d.RenewalType, d.QuoteAmount, d.PolicyTerm = PolicyRenewal, "Auto", "$600", "6"
		}, "$100.00"},
		{"home renewal is annual", func(d *Data) {
			d.DocumentType, d.RenewalType, d.QuoteAmount, d.PolicyTerm = PolicyRenewal, "Home", "$1,200", "6"
		}, "$100.00"},
		{"auto quote", func(d *Data) {
			d.DocumentType, d.QuoteType, d.QuoteAmount, d.PolicyTerm = InsuranceQuote, "Auto", "$1,310.00", "12"
		}, "$109.17"},
		{"zero amount clears", func(d *Data) {
			d.DocumentType, d.QuoteAmount, d.MonthlyPremium = InsuranceQuote, "$0", "$5.00"
		}, ""},
		{"bad term keeps value", func(d *Data) {
			d.DocumentType, d.QuoteType, d.QuoteAmount, d.PolicyTerm, d.MonthlyPremium = InsuranceQuote, "Auto", "$600", "x", "$1.00"
		}, "$1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Defaults()
			tt.edit(&d)
			assert.Equal(t, tt.want, d.WithMonthlyPremium().MonthlyPremium)
		})
	}
}

func TestProductName(t *testing.T) {
	d := Defaults()
	d.DocumentType = InsuranceQuote
	assert.Equal(t, "Home Quote", d.ProductName())
	d.DocumentType = NewPolicyWelcome
	d.RenewalType = "Auto"
	assert.Equal(t, "New Auto Policy", d.ProductName())
	d.DocumentType = Receipt
	assert.Equal(t, "Auto Receipt", d.ProductName())
	d.DocumentType = CustomMessage
	assert.Equal(t, "Custom Message", d.ProductName())
}

func TestStripCustomerData(t *testing.T) {
	d := Defaults()
	d.DocumentType = PolicyRenewal
	d.PolicyHolder = "Jane Doe"
	d.RecipientEmail = "jane@example.com"
	d.QuoteAmount = "$1,000"
	d.CarrierName = "progressive"
	d.IsUpdatedQuote = true
	d.Tone = "Direct"
	d.CustomPrompt = "keep me"

	got := StripCustomerData(d, short)
	assert.Empty(t, got.PolicyHolder)
	assert.Empty(t, got.RecipientEmail)
	assert.Empty(t, got.QuoteAmount)
	assert.False(t, got.IsUpdatedQuote)
	assert.Equal(t, "nationwide", got.CarrierName)
	assert.Equal(t, "Direct", got.Tone)
	assert.Equal(t, "keep me", got.CustomPrompt)
	assert.Equal(t, "Important: Policy Renewal Info from Bill Layne Ins", got.EmailSubject)
}

func TestApplyCancellation(t *testing.T) {
	got := ApplyCancellation(Defaults(), Cancellation{
		PolicyNumber:     "AB 123 456",
		NamedInsured:     "Jane Q Doe",
		CancellationDate: "3/7/2025",
		AmountDue:        "$88.10",
	})
	assert.Equal(t, LatePaymentNotice, got.DocumentType)
	assert.Equal(t, "Jane", got.RecipientName)
	assert.Equal(t, "Jane Q Doe", got.PolicyHolder)
	assert.Equal(t, "AB123456", got.PolicyNumber)
	assert.Equal(t, "2025-03-07", got.LateCancellationDate)
	assert.Equal(t, "$88.10", got.LateAmountDue)
	assert.Empty(t, got.RecipientEmail)

	got = ApplyCancellation(Defaults(), Cancellation{CancellationDate: "next week"})
	assert.Empty(t, got.LateCancellationDate)
}

func TestValidate(t *testing.T) {
	d := Defaults()
	assert.ErrorIs(t, Validate(d), ErrMissingField)

	d.DocumentType = CustomMessage
	assert.ErrorIs(t, Validate(d), ErrMissingField)

	d.CustomPrompt = "Say hello"
	assert.NoError(t, Validate(d))

	d.RecipientEmail = "not-an-email"
	assert.ErrorIs(t, Validate(d), ErrInvalidEmail)

	d.RecipientEmail = "jane@example.com"
	assert.NoError(t, Validate(d))

	renewal := Defaults()
	renewal.DocumentType = PolicyRenewal
	assert.NoError(t, Validate(renewal), "fixed layouts need no prompt")
}

func TestApply(t *testing.T) {
	d := Defaults()
	d.PolicyHolder = "Keep"
	got, err := d.Apply(map[string]string{
		"carrierName":  "Progressive",
		"quoteAmount":  "$900",
		"policyHolder": "",
		"notAField":    "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "Progressive", got.CarrierName)
	assert.Equal(t, "$900", got.QuoteAmount)
	assert.Equal(t, "Keep", got.PolicyHolder)
	assert.Equal(t, "nationwide", d.CarrierName, "receiver is untouched")
}

func TestOverlayKeepsMissingKeys(t *testing.T) {
	base := Defaults()
	base.RecipientEmail = "keep@example.com"
	got, err := base.Overlay(json.RawMessage(`{"documentType":"Auto Documentation","tone":"Direct"}`))
	require.NoError(t, err)
	assert.Equal(t, AutoDocumentation, got.DocumentType)
	assert.Equal(t, "Direct", got.Tone)
	assert.Equal(t, "keep@example.com", got.RecipientEmail)
	assert.True(t, got.EnableUTM)
}

func TestForBulk(t *testing.T) {
	d := Defaults()
	d.RecipientEmail = "jane@example.com"
	b := d.ForBulk()
	assert.Equal(t, PlaceholderRecipientName, b.RecipientName)
	assert.Equal(t, PlaceholderPolicyHolder, b.PolicyHolder)
	assert.Empty(t, b.RecipientEmail)
}
