package form

import "github.com/billlayne/mailcomposer/format"

// promptTypes are the document types whose body is written by the AI from
// CustomPrompt.
var promptTypes = map[DocumentType]bool{
	CustomMessage:           true,
	Newsletter:              true,
	AIPrompt:                true,
	AutoDocumentation:       true,
	HomeDocumentation:       true,
	CommercialDocumentation: true,
	GeneralDocumentation:    true,
	ChangeRequest:           true,
}

// NeedsPrompt reports whether docType requires a custom prompt before an
// email body can be generated.
func NeedsPrompt(docType DocumentType) bool {
	return promptTypes[docType]
}

// UsesAIBody reports whether the body of d comes from the generic AI body
// rather than one of the fixed layouts.
func (d Data) UsesAIBody() bool {
	switch {
	case d.IsQuote("Home"), d.IsQuote("Auto"):
		return false
	case d.DocumentType == PolicyRenewal, d.DocumentType == NewPolicyWelcome,
		d.DocumentType == LatePaymentNotice, d.DocumentType == Receipt:
		return false
	}
	return true
}

// TermMonths is the number of months the quote amount covers. Only auto
// policies honour PolicyTerm; everything else is annual.
func (d Data) TermMonths() string {
	auto := d.IsQuote("Auto") ||
		((d.DocumentType == PolicyRenewal || d.DocumentType == NewPolicyWelcome) && d.RenewalType == "Auto")
	if auto {
		return d.PolicyTerm
	}
	return "12"
}

// WithMonthlyPremium fills MonthlyPremium from QuoteAmount and TermMonths.
// A zero or non-numeric amount clears it; a bad term leaves it alone.
func (d Data) WithMonthlyPremium() Data {
	if format.ParseAmount(d.QuoteAmount) == 0 {
		d.MonthlyPremium = ""
		return d
	}
	if monthly := format.MonthlyPremium(d.QuoteAmount, d.TermMonths()); monthly != "" {
		d.MonthlyPremium = monthly
	}
	return d
}

// ProductName describes what the email is about, for filenames and the
// preview title.
func (d Data) ProductName() string {
	switch d.DocumentType {
	case InsuranceQuote:
		return d.QuoteType + " Quote"
	case PolicyRenewal:
		return d.RenewalType + " Renewal"
	case NewPolicyWelcome:
		return "New " + d.RenewalType + " Policy"
	case Receipt:
		return d.ReceiptProduct + " Receipt"
	}
	return string(d.DocumentType)
}

// ForBulk swaps the recipient fields for merge placeholders so one render
// can be personalized per recipient.
func (d Data) ForBulk() Data {
	d.RecipientName = PlaceholderRecipientName
	d.PolicyHolder = PlaceholderPolicyHolder
	d.RecipientEmail = ""
	return d
}
