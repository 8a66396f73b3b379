package ai

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

type promptData struct {
	Form   form.Data
	Agent  config.Agent
	Agency config.Agency

	RecipientName      string
	ChangeRequest      bool
	ChangeConfirmation bool
	Quote              bool
	Renewal            bool
	Prompted           bool
	Bundled            bool

	Previous string
	Current  string
	Idea     string
	SignOff  string
}

func render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := prompts.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("ai: prompt %s: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), nil
}

func formPrompt(d form.Data, agent config.Agent, agency config.Agency) promptData {
	p := promptData{
		Form:          d,
		Agent:         agent,
		Agency:        agency,
		RecipientName: d.RecipientName,
		Quote:         d.DocumentType == form.InsuranceQuote,
		Renewal:       d.DocumentType == form.PolicyRenewal,
		Prompted:      form.NeedsPrompt(d.DocumentType),
		Bundled:       d.DocumentType == form.PolicyRenewal && d.RenewalType == "Home" && d.AutoVehicles != "",
	}
	if p.RecipientName == "" {
		p.RecipientName = "Valued Client"
	}
	if d.DocumentType == form.ChangeRequest {
		if d.ChangeRequestType == form.ChangeTypeConfirmation {
			p.ChangeConfirmation = true
		} else {
			p.ChangeRequest = true
			p.RecipientName = "[IGNORE - Address to company/underwriting]"
		}
	}
	return p
}

// BodyPrompt is the instruction sent for an AI-authored email body.
func BodyPrompt(d form.Data, agent config.Agent, agency config.Agency) (string, error) {
	return render("body", formPrompt(d, agent, agency))
}

// ExtractPrompt is the instruction for kind. Pasted text, when given, is
// appended to it.
func ExtractPrompt(kind Kind, pasted string) (string, error) {
	if _, ok := extractFields[kind]; !ok {
		return "", fmt.Errorf("ai: unknown extraction %q", kind)
	}
	p, err := render("extract_"+string(kind), nil)
	if err != nil {
		return "", err
	}
	if pasted == "" {
		return p, nil
	}
	tail, err := render("pasted", pasted)
	if err != nil {
		return "", err
	}
	return p + "\n\n" + tail, nil
}

var (
	homeFields = []string{"propertyAddress", "dwellingCoverage", "otherStructuresCoverage", "personalPropertyCoverage",
		"lossOfUseCoverage", "personalLiabilityCoverage", "medicalPaymentsCoverage", "deductible"}
	autoFields = []string{"autoVehicles", "autoDrivers", "itemizedCoveragesHtml"}
)

type fieldSpec struct {
	fields   []string
	required []string
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// extractFields is the response schema of each extraction: the form fields
// returned and the subset the model must always fill.
var extractFields = map[Kind]fieldSpec{
	KindQuote: {
		fields: concat([]string{"carrierName", "homePolicyType", "policyHolder", "recipientName", "quoteAmount",
			"monthlyPremium", "coverageStart", "quoteExpires"}, homeFields),
	},
	KindAutoQuote: {
		fields: concat([]string{"carrierName", "policyHolder", "recipientName", "quoteAmount", "policyTerm", "monthlyPremium"}, autoFields),
	},
	KindRenewal: {
		fields: concat([]string{"carrierName", "policyHolder", "recipientName", "policyNumber", "quoteAmount",
			"previousQuoteAmount", "renewalDue", "renewalType", "monthlyPremium", "policyTerm"}, homeFields, autoFields),
		required: []string{"carrierName", "policyHolder", "recipientName", "policyNumber", "quoteAmount",
			"renewalDue", "renewalType", "monthlyPremium", "policyTerm", "previousQuoteAmount"},
	},
	KindNewPolicy: {
		fields: concat([]string{"carrierName", "policyHolder", "recipientName", "policyNumber", "policyEffectiveDate",
			"renewalType", "quoteAmount", "monthlyPremium", "policyTerm"}, homeFields, autoFields),
		required: []string{"carrierName", "policyHolder", "recipientName", "policyNumber", "policyEffectiveDate",
			"renewalType", "quoteAmount", "monthlyPremium", "policyTerm"},
	},
	KindReceipt: {
		fields: []string{"carrierName", "policyHolder", "recipientName", "policyNumber", "receiptAmount",
			"receiptDatePaid", "receiptConfirmationNumber", "receiptPaymentMethod", "receiptProduct"},
	},
	KindChange: {
		fields: []string{"carrierName", "policyHolder", "recipientName", "policyNumber", "customPrompt"},
	},
	KindPrompt: {
		fields: []string{"policyHolder", "recipientName", "customPrompt"},
	},
}

// requiredFields defaults to every field.
func (s fieldSpec) requiredFields() []string {
	if s.required != nil {
		return s.required
	}
	return s.fields
}

// normalizeExtraction keeps only the fields of kind and applies the
// fix-ups the form expects: a date-only renewal becomes a local time just
// after midnight.
func normalizeExtraction(kind Kind, raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for _, f := range extractFields[kind].fields {
		if v, ok := raw[f]; ok {
			out[f] = strings.TrimSpace(v)
		}
	}
	if due := out["renewalDue"]; len(due) == len("2006-01-02") {
		out["renewalDue"] = due + "T00:01"
	}
	return out
}
