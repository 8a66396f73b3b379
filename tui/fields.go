package tui

import (
	"github.com/billlayne/mailcomposer/carrier"
	"github.com/billlayne/mailcomposer/form"
)

// field is one input of the compose form bound to a string in form.Data.
// Fields with options render as drop-downs.
type field struct {
	label   string
	width   int
	options []string
	value   func(d *form.Data) *string
	// rebuild marks inputs that change which other fields are shown.
	rebuild bool
}

func textField(label string, width int, value func(d *form.Data) *string) field {
	return field{label: label, width: width, value: value}
}

func choiceField(label string, options []string, value func(d *form.Data) *string) field {
	return field{label: label, options: options, value: value}
}

var yesNo = []string{"yes", "no"}

var carrierField = choiceField("Carrier", carrier.Keys(), func(d *form.Data) *string { return &d.CarrierName })

var commonFields = []field{
	textField("Policy holder", 40, func(d *form.Data) *string { return &d.PolicyHolder }),
	textField("Recipient name", 40, func(d *form.Data) *string { return &d.RecipientName }),
	textField("Recipient email", 40, func(d *form.Data) *string { return &d.RecipientEmail }),
	choiceField("Tone", form.Tones, func(d *form.Data) *string { return &d.Tone }),
	textField("Subject", 60, func(d *form.Data) *string { return &d.EmailSubject }),
	textField("Preheader", 60, func(d *form.Data) *string { return &d.EmailPreheader }),
}

var homeCoverageFields = []field{
	textField("Property address", 50, func(d *form.Data) *string { return &d.PropertyAddress }),
	textField("Policy form", 20, func(d *form.Data) *string { return &d.HomePolicyType }),
	textField("Dwelling", 16, func(d *form.Data) *string { return &d.DwellingCoverage }),
	textField("Other structures", 16, func(d *form.Data) *string { return &d.OtherStructuresCoverage }),
	textField("Personal property", 16, func(d *form.Data) *string { return &d.PersonalPropertyCoverage }),
	textField("Loss of use", 16, func(d *form.Data) *string { return &d.LossOfUseCoverage }),
	textField("Personal liability", 16, func(d *form.Data) *string { return &d.PersonalLiabilityCoverage }),
	textField("Medical payments", 16, func(d *form.Data) *string { return &d.MedicalPaymentsCoverage }),
	textField("Deductible", 16, func(d *form.Data) *string { return &d.Deductible }),
	textField("Endorsements", 60, func(d *form.Data) *string { return &d.Endorsements }),
}

var autoCoverageFields = []field{
	textField("Vehicles", 60, func(d *form.Data) *string { return &d.AutoVehicles }),
	textField("Drivers", 60, func(d *form.Data) *string { return &d.AutoDrivers }),
	textField("Bodily injury", 20, func(d *form.Data) *string { return &d.AutoBodilyInjury }),
	textField("Property damage", 20, func(d *form.Data) *string { return &d.AutoPropertyDamage }),
	textField("Medical payments", 20, func(d *form.Data) *string { return &d.AutoMedicalPayments }),
	textField("Uninsured motorist", 20, func(d *form.Data) *string { return &d.AutoUninsuredMotorist }),
	textField("Comprehensive ded.", 16, func(d *form.Data) *string { return &d.AutoComprehensiveDeductible }),
	textField("Collision ded.", 16, func(d *form.Data) *string { return &d.AutoCollisionDeductible }),
	textField("Extra coverages", 60, func(d *form.Data) *string { return &d.AutoExtraCoverages }),
}

var heroFields = []field{
	textField("Hero image URL", 60, func(d *form.Data) *string { return &d.HeroURL }),
	textField("Hero alt text", 60, func(d *form.Data) *string { return &d.HeroAlt }),
	textField("Hero link", 60, func(d *form.Data) *string { return &d.HeroLink }),
}

var promptField = textField("Prompt", 80, func(d *form.Data) *string { return &d.CustomPrompt })

// fieldsFor lists the inputs shown for d, common fields first.
func fieldsFor(d form.Data) []field {
	out := append([]field(nil), commonFields...)
	switch d.DocumentType {
	case form.InsuranceQuote:
		out = append(out,
			field{label: "Quote type", options: form.QuoteTypes, rebuild: true,
				value: func(d *form.Data) *string { return &d.QuoteType }},
			textField("Quote amount", 16, func(d *form.Data) *string { return &d.QuoteAmount }),
			choiceField("Term (months)", form.PolicyTerms, func(d *form.Data) *string { return &d.PolicyTerm }),
			textField("Coverage start", 16, func(d *form.Data) *string { return &d.CoverageStart }),
			textField("Quote expires", 16, func(d *form.Data) *string { return &d.QuoteExpires }),
			carrierField,
		)
		switch d.QuoteType {
		case "Home":
			out = append(out, homeCoverageFields...)
		case "Auto":
			out = append(out, autoCoverageFields...)
		default:
			out = append(out, promptField)
		}
	case form.NewPolicyWelcome:
		out = append(out,
			choiceField("Policy type", form.PolicyTypes, func(d *form.Data) *string { return &d.RenewalType }),
			textField("Policy number", 20, func(d *form.Data) *string { return &d.PolicyNumber }),
			textField("Effective date", 16, func(d *form.Data) *string { return &d.PolicyEffectiveDate }),
			textField("Premium", 16, func(d *form.Data) *string { return &d.QuoteAmount }),
			choiceField("Term (months)", form.PolicyTerms, func(d *form.Data) *string { return &d.PolicyTerm }),
			carrierField,
		)
	case form.PolicyRenewal:
		out = append(out,
			choiceField("Policy type", form.PolicyTypes, func(d *form.Data) *string { return &d.RenewalType }),
			textField("Policy number", 20, func(d *form.Data) *string { return &d.PolicyNumber }),
			textField("Renewal due", 16, func(d *form.Data) *string { return &d.RenewalDue }),
			textField("New premium", 16, func(d *form.Data) *string { return &d.QuoteAmount }),
			textField("Previous premium", 16, func(d *form.Data) *string { return &d.PreviousQuoteAmount }),
			choiceField("Term (months)", form.PolicyTerms, func(d *form.Data) *string { return &d.PolicyTerm }),
			choiceField("Calendar invite", yesNo, func(d *form.Data) *string { return &d.IncludeICS }),
			carrierField,
			textField("Rate explanation", 80, func(d *form.Data) *string { return &d.RenewalRateExplanation }),
		)
	case form.LatePaymentNotice:
		out = append(out,
			choiceField("Policy type", form.PolicyTypes, func(d *form.Data) *string { return &d.LatePolicyType }),
			textField("Policy number", 20, func(d *form.Data) *string { return &d.PolicyNumber }),
			textField("Cancellation date", 16, func(d *form.Data) *string { return &d.LateCancellationDate }),
			textField("Amount due", 16, func(d *form.Data) *string { return &d.LateAmountDue }),
			textField("Payment link", 60, func(d *form.Data) *string { return &d.LatePaymentLink }),
		)
	case form.Receipt:
		out = append(out,
			choiceField("Product", form.ReceiptProducts, func(d *form.Data) *string { return &d.ReceiptProduct }),
			textField("Amount", 16, func(d *form.Data) *string { return &d.ReceiptAmount }),
			textField("Date paid", 16, func(d *form.Data) *string { return &d.ReceiptDatePaid }),
			textField("Confirmation #", 24, func(d *form.Data) *string { return &d.ReceiptConfirmationNumber }),
			textField("Payment method", 24, func(d *form.Data) *string { return &d.ReceiptPaymentMethod }),
			textField("Policy number", 20, func(d *form.Data) *string { return &d.PolicyNumber }),
		)
	case form.ChangeRequest:
		out = append(out,
			choiceField("Change type", form.ChangeTypes, func(d *form.Data) *string { return &d.ChangeRequestType }),
			promptField,
		)
	case form.Newsletter:
		out = append(out, promptField)
		out = append(out, heroFields...)
	default:
		if form.NeedsPrompt(d.DocumentType) {
			out = append(out, promptField)
		}
	}
	return out
}

// optionIndex returns the index of v in options, or -1.
func optionIndex(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}
