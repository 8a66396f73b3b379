package form

import "fmt"

// DefaultSubject is the subject line a document type starts with. agencyShort
// is the agency's short name; policyHolder may be a placeholder in bulk mode.
func DefaultSubject(docType DocumentType, policyHolder, changeType, agencyShort string) string {
	ph := ""
	if policyHolder != "" {
		ph = " - " + policyHolder
	}
	switch docType {
	case AutoDocumentation:
		return fmt.Sprintf("Your Auto Ins Docs from %s%s", agencyShort, ph)
	case HomeDocumentation:
		return fmt.Sprintf("Your Home Ins Docs from %s%s", agencyShort, ph)
	case CommercialDocumentation:
		return fmt.Sprintf("Your Commercial Ins Docs from %s%s", agencyShort, ph)
	case GeneralDocumentation:
		return fmt.Sprintf("Ins Documentation from %s%s", agencyShort, ph)
	case InsuranceQuote:
		return fmt.Sprintf("Your Insurance Quote from %s%s", agencyShort, ph)
	case NewPolicyWelcome:
		return fmt.Sprintf("Welcome! Your New Policy from %s Is Here", agencyShort)
	case PolicyRenewal:
		return fmt.Sprintf("Important: Policy Renewal Info from %s%s", agencyShort, ph)
	case ChangeRequest:
		if changeType == ChangeTypeConfirmation {
			return fmt.Sprintf("Confirmation of Policy Change from %s%s", agencyShort, ph)
		}
		return fmt.Sprintf("Policy Change Request from %s%s", agencyShort, ph)
	case LatePaymentNotice:
		return "URGENT: Your insurance policy is pending cancellation"
	case Receipt:
		return fmt.Sprintf("Your Payment Receipt from %s%s", agencyShort, ph)
	case AIPrompt:
		return fmt.Sprintf("Important Update Regarding Your Policy from %s%s", agencyShort, ph)
	case CustomMessage:
		return fmt.Sprintf("Message from %s%s", agencyShort, ph)
	case Newsletter:
		return fmt.Sprintf("News & Offers from %s", agencyShort)
	}
	return ""
}

// DefaultPreheader is the inbox snippet used when the form leaves it blank.
func DefaultPreheader(docType DocumentType, policyHolder, agencyName string) string {
	ph := ""
	if policyHolder != "" {
		ph = " for " + policyHolder
	}
	switch docType {
	case AutoDocumentation:
		return "Find your auto insurance documents attached" + ph + "."
	case HomeDocumentation:
		return "Your home insurance documents are here" + ph + "."
	case CommercialDocumentation:
		return "Attached: Commercial insurance documents" + ph + "."
	case GeneralDocumentation:
		return "Important insurance documentation enclosed" + ph + "."
	case InsuranceQuote:
		return "Your personalized insurance quote is ready" + ph + "!"
	case NewPolicyWelcome:
		return "Welcome! We're thrilled to have you as a client."
	case PolicyRenewal:
		return "Action needed: Review your policy renewal info" + ph + "."
	case LatePaymentNotice:
		return "Immediate action is required to avoid a lapse in your coverage."
	case Receipt:
		return "Thank you for your payment. Your receipt is enclosed."
	case AIPrompt:
		return "An important update regarding your policy is inside."
	case CustomMessage:
		return "A message from " + agencyName + " regarding your account."
	case Newsletter:
		return "See our latest updates, tips, and special offers."
	}
	return "Important information from " + agencyName + "."
}

// Preheader returns the form's own preheader or the default for its type.
func (d Data) Preheader(agencyName string) string {
	if d.EmailPreheader != "" {
		return d.EmailPreheader
	}
	return DefaultPreheader(d.DocumentType, d.PolicyHolder, agencyName)
}
