package form

import (
	"fmt"
	"strings"
)

// StripCustomerData resets every customer-specific field to its default so
// the remaining data can be saved as a reusable template. The subject is
// regenerated without a policyholder.
func StripCustomerData(d Data, agencyShort string) Data {
	def := Defaults()

	d.PolicyHolder = def.PolicyHolder
	d.RecipientEmail = def.RecipientEmail
	d.RecipientName = def.RecipientName
	d.PolicyNumber = def.PolicyNumber

	d.QuoteAmount = def.QuoteAmount
	d.MonthlyPremium = def.MonthlyPremium
	d.CoverageStart = def.CoverageStart
	d.QuoteExpires = def.QuoteExpires
	d.IsUpdatedQuote = def.IsUpdatedQuote
	d.PolicyEffectiveDate = def.PolicyEffectiveDate
	d.RenewalDue = def.RenewalDue

	d.LateCancellationDate = def.LateCancellationDate
	d.LateAmountDue = def.LateAmountDue
	d.LatePaymentLink = def.LatePaymentLink

	d.CarrierName = def.CarrierName
	d.HomePolicyType = def.HomePolicyType
	d.PropertyAddress = def.PropertyAddress
	d.DwellingCoverage = def.DwellingCoverage
	d.OtherStructuresCoverage = def.OtherStructuresCoverage
	d.PersonalPropertyCoverage = def.PersonalPropertyCoverage
	d.LossOfUseCoverage = def.LossOfUseCoverage
	d.PersonalLiabilityCoverage = def.PersonalLiabilityCoverage
	d.MedicalPaymentsCoverage = def.MedicalPaymentsCoverage
	d.Deductible = def.Deductible
	d.Endorsements = def.Endorsements

	d.AutoVehicles = def.AutoVehicles
	d.AutoDrivers = def.AutoDrivers
	d.AutoBodilyInjury = def.AutoBodilyInjury
	d.AutoPropertyDamage = def.AutoPropertyDamage
	d.AutoMedicalPayments = def.AutoMedicalPayments
	d.AutoUninsuredMotorist = def.AutoUninsuredMotorist
	d.AutoComprehensiveDeductible = def.AutoComprehensiveDeductible
	d.AutoCollisionDeductible = def.AutoCollisionDeductible
	d.AutoExtraCoverages = def.AutoExtraCoverages
	d.ItemizedCoveragesHTML = def.ItemizedCoveragesHTML

	d.ReceiptAmount = def.ReceiptAmount
	d.ReceiptDatePaid = def.ReceiptDatePaid
	d.ReceiptConfirmationNumber = def.ReceiptConfirmationNumber
	d.ReceiptPaymentMethod = def.ReceiptPaymentMethod

	d.EmailSubject = DefaultSubject(d.DocumentType, "", d.ChangeRequestType, agencyShort)
	return d
}

// Cancellation is one row of a carrier's pending cancellation report.
type Cancellation struct {
	PolicyNumber     string `json:"policyNumber"`
	NamedInsured     string `json:"namedInsured"`
	CancellationDate string `json:"cancellationDate"`
	AmountDue        string `json:"amountDue"`
}

// ApplyCancellation fills the late payment fields of d from c. The recipient
// email is cleared so it has to be entered for the new customer.
func ApplyCancellation(d Data, c Cancellation) Data {
	d.DocumentType = LatePaymentNotice
	d.PolicyHolder = c.NamedInsured
	d.RecipientName = firstWord(c.NamedInsured)
	d.PolicyNumber = strings.Join(strings.Fields(c.PolicyNumber), "")
	d.LateCancellationDate = slashDateToISO(c.CancellationDate)
	d.LateAmountDue = c.AmountDue
	d.RecipientEmail = ""
	return d
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

// slashDateToISO turns M/D/YYYY into YYYY-MM-DD, or "" for anything else.
func slashDateToISO(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[0]), pad2(parts[1]))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
