// Package form defines the composer's form record and the rules that derive
// values from it (subjects, preheaders, monthly premiums, filenames).
package form

// DocumentType selects which field group of Data is meaningful.
type DocumentType string

const (
	InsuranceQuote          DocumentType = "Insurance Quote"
	NewPolicyWelcome        DocumentType = "New Policy Welcome"
	PolicyRenewal           DocumentType = "Policy Renewal"
	ChangeRequest           DocumentType = "Change / Underwriting Request"
	LatePaymentNotice       DocumentType = "Late Payment Notice"
	Receipt                 DocumentType = "Receipt"
	AIPrompt                DocumentType = "AI Prompt"
	AutoDocumentation       DocumentType = "Auto Documentation"
	HomeDocumentation       DocumentType = "Home Documentation"
	CommercialDocumentation DocumentType = "Commercial Documentation"
	GeneralDocumentation    DocumentType = "General Documentation"
	CustomMessage           DocumentType = "Custom Message"
	Newsletter              DocumentType = "Promotional / Newsletter"
)

// DocumentTypes lists every type in menu order.
var DocumentTypes = []DocumentType{
	InsuranceQuote, NewPolicyWelcome, PolicyRenewal, ChangeRequest, LatePaymentNotice,
	Receipt, AIPrompt, AutoDocumentation, HomeDocumentation, CommercialDocumentation,
	GeneralDocumentation, CustomMessage, Newsletter,
}

var (
	Tones           = []string{"Warm", "Direct", "Short"}
	QuoteTypes      = []string{"Home", "Auto", "Life", "Renters", "Business", "General"}
	PolicyTypes     = []string{"Home", "Auto", "Other"}
	ReceiptProducts = []string{"Auto", "Home", "Commercial", "Other"}
	PolicyTerms     = []string{"6", "12"}
	ChangeTypes     = []string{ChangeTypeRequest, ChangeTypeConfirmation}
)

const (
	ChangeTypeRequest      = "request"
	ChangeTypeConfirmation = "confirmation"
)

// Placeholders substituted per recipient in bulk mode.
const (
	PlaceholderRecipientName = "{{recipientName}}"
	PlaceholderFirstName     = "{{firstName}}"
	PlaceholderPolicyHolder  = "{{policyHolder}}"
)

// Data is one email's worth of form input. Only the group that belongs to
// DocumentType is rendered; the others are carried along untouched.
//
// The JSON keys match the persisted template blobs, so every field is always
// written; partial templates are applied by unmarshalling over Defaults.
type Data struct {
	DocumentType   DocumentType `json:"documentType" yaml:"documentType"`
	PolicyHolder   string       `json:"policyHolder" yaml:"policyHolder"`
	RecipientEmail string       `json:"recipientEmail" yaml:"recipientEmail"`
	RecipientName  string       `json:"recipientName" yaml:"recipientName"`
	Tone           string       `json:"tone" yaml:"tone"`
	EmailSubject   string       `json:"emailSubject" yaml:"emailSubject"`
	EmailPreheader string       `json:"emailPreheader" yaml:"emailPreheader"`
	AgentID        string       `json:"agentId" yaml:"agentId"`

	// Quote
	QuoteType      string `json:"quoteType" yaml:"quoteType"`
	QuoteAmount    string `json:"quoteAmount" yaml:"quoteAmount"`
	MonthlyPremium string `json:"monthlyPremium" yaml:"monthlyPremium"`
	PolicyTerm     string `json:"policyTerm" yaml:"policyTerm"`
	CoverageStart  string `json:"coverageStart" yaml:"coverageStart"`
	QuoteExpires   string `json:"quoteExpires" yaml:"quoteExpires"`
	IsUpdatedQuote bool   `json:"isUpdatedQuote" yaml:"isUpdatedQuote"`

	// Renewal
	RenewalDue             string `json:"renewalDue" yaml:"renewalDue"`
	IncludeICS             string `json:"includeIcs" yaml:"includeIcs"`
	PolicyNumber           string `json:"policyNumber" yaml:"policyNumber"`
	RenewalType            string `json:"renewalType" yaml:"renewalType"`
	PreviousQuoteAmount    string `json:"previousQuoteAmount" yaml:"previousQuoteAmount"`
	RenewalRateExplanation string `json:"renewalRateExplanation" yaml:"renewalRateExplanation"`

	// Welcome
	PolicyEffectiveDate string `json:"policyEffectiveDate" yaml:"policyEffectiveDate"`

	// Late payment
	LateCancellationDate string `json:"lateCancellationDate" yaml:"lateCancellationDate"`
	LateAmountDue        string `json:"lateAmountDue" yaml:"lateAmountDue"`
	LatePaymentLink      string `json:"latePaymentLink" yaml:"latePaymentLink"`
	LatePolicyType       string `json:"latePolicyType" yaml:"latePolicyType"`

	// Receipt
	ReceiptAmount             string `json:"receiptAmount" yaml:"receiptAmount"`
	ReceiptDatePaid           string `json:"receiptDatePaid" yaml:"receiptDatePaid"`
	ReceiptConfirmationNumber string `json:"receiptConfirmationNumber" yaml:"receiptConfirmationNumber"`
	ReceiptPaymentMethod      string `json:"receiptPaymentMethod" yaml:"receiptPaymentMethod"`
	ReceiptProduct            string `json:"receiptProduct" yaml:"receiptProduct"`

	ChangeRequestType string `json:"changeRequestType" yaml:"changeRequestType"`
	CustomPrompt      string `json:"customPrompt" yaml:"customPrompt"`

	// Hero image
	HeroURL  string `json:"heroUrl" yaml:"heroUrl"`
	HeroAlt  string `json:"heroAlt" yaml:"heroAlt"`
	HeroLink string `json:"heroLink" yaml:"heroLink"`

	// Marketing
	EnableUTM   bool   `json:"enableUtm" yaml:"enableUtm"`
	UTMSource   string `json:"utmSource" yaml:"utmSource"`
	UTMMedium   string `json:"utmMedium" yaml:"utmMedium"`
	UTMCampaign string `json:"utmCampaign" yaml:"utmCampaign"`
	UTMContent  string `json:"utmContent" yaml:"utmContent"`

	IncludeFacebookBanner bool `json:"includeFacebookBanner" yaml:"includeFacebookBanner"`

	// Home coverage
	CarrierName               string `json:"carrierName" yaml:"carrierName"`
	HomePolicyType            string `json:"homePolicyType" yaml:"homePolicyType"`
	PropertyAddress           string `json:"propertyAddress" yaml:"propertyAddress"`
	DwellingCoverage          string `json:"dwellingCoverage" yaml:"dwellingCoverage"`
	OtherStructuresCoverage   string `json:"otherStructuresCoverage" yaml:"otherStructuresCoverage"`
	PersonalPropertyCoverage  string `json:"personalPropertyCoverage" yaml:"personalPropertyCoverage"`
	LossOfUseCoverage         string `json:"lossOfUseCoverage" yaml:"lossOfUseCoverage"`
	PersonalLiabilityCoverage string `json:"personalLiabilityCoverage" yaml:"personalLiabilityCoverage"`
	MedicalPaymentsCoverage   string `json:"medicalPaymentsCoverage" yaml:"medicalPaymentsCoverage"`
	Deductible                string `json:"deductible" yaml:"deductible"`
	Endorsements              string `json:"endorsements" yaml:"endorsements"`

	// Auto coverage
	AutoVehicles                string `json:"autoVehicles" yaml:"autoVehicles"`
	AutoDrivers                 string `json:"autoDrivers" yaml:"autoDrivers"`
	AutoBodilyInjury            string `json:"autoBodilyInjury" yaml:"autoBodilyInjury"`
	AutoPropertyDamage          string `json:"autoPropertyDamage" yaml:"autoPropertyDamage"`
	AutoMedicalPayments         string `json:"autoMedicalPayments" yaml:"autoMedicalPayments"`
	AutoUninsuredMotorist       string `json:"autoUninsuredMotorist" yaml:"autoUninsuredMotorist"`
	AutoComprehensiveDeductible string `json:"autoComprehensiveDeductible" yaml:"autoComprehensiveDeductible"`
	AutoCollisionDeductible     string `json:"autoCollisionDeductible" yaml:"autoCollisionDeductible"`
	AutoExtraCoverages          string `json:"autoExtraCoverages" yaml:"autoExtraCoverages"`
	ItemizedCoveragesHTML       string `json:"itemizedCoveragesHtml" yaml:"itemizedCoveragesHtml"`

	SelectedOpportunityPrompt string `json:"selectedOpportunityPrompt" yaml:"selectedOpportunityPrompt"`
}

// Defaults returns the values a fresh form starts with.
func Defaults() Data {
	return Data{
		Tone:              "Warm",
		AgentID:           "team",
		QuoteType:         "Home",
		PolicyTerm:        "12",
		IncludeICS:        "yes",
		RenewalType:       "Home",
		LatePolicyType:    "Auto",
		ReceiptProduct:    "Auto",
		ChangeRequestType: ChangeTypeRequest,
		EnableUTM:         true,
		UTMSource:         "email",
		UTMMedium:         "email",
		CarrierName:       "nationwide",
	}
}

// WantsICS reports whether a renewal invite should accompany the email.
func (d Data) WantsICS() bool {
	return d.IncludeICS == "yes"
}

// IsQuote reports whether d is an insurance quote of the given quote type.
func (d Data) IsQuote(quoteType string) bool {
	return d.DocumentType == InsuranceQuote && d.QuoteType == quoteType
}
