// Package prose merges form data and AI-written copy into the HTML body of
// each document type. Nothing here calls the AI; quotes receive their copy
// through Input.Prose and AI-body types through Input.Body.
package prose

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/billlayne/mailcomposer/carrier"
	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/format"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"date": format.Date,
	"na": func(s string) string {
		return format.Or(s, format.NotAvailable)
	},
	"tel": func(phone string) template.URL {
		return template.URL("tel:" + digitsOnly(phone))
	},
}

var templates = template.Must(template.New("prose").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// Prose is the AI-written copy of a quote email.
type Prose struct {
	Greeting string `json:"greeting"`
	Intro    string `json:"intro"`
	CTAText  string `json:"ctaText"`
}

// Input is everything a merge needs.
type Input struct {
	Form   form.Data
	Agent  config.Agent
	Agency config.Agency
	Prose  Prose
	Body   template.HTML

	// Sanitize filters AI-authored HTML such as itemized auto coverages.
	// Nil trusts it verbatim.
	Sanitize func(string) string
}

// Row is one label/value line of a summary table.
type Row struct {
	Label  string
	Value  string
	Mono   bool
	Strong bool
	Color  string
}

type view struct {
	Form         form.Data
	Agent        config.Agent
	Agency       config.Agency
	Brand        carrier.Branding
	Contact      carrier.Contact
	CarrierLabel string
	Greeting     template.HTML
	Prose        Prose
	Rate         *RateChange
	Summary      []Row
	HomeRows     []Row
	Coverages    template.HTML
	Mailto       string
	Monthly      string
	PremiumLabel string
}

// Merge renders the body fragment for in.Form.DocumentType.
func Merge(in Input) (template.HTML, error) {
	f := in.Form
	switch {
	case f.IsQuote("Home"):
		return HomeQuote(in)
	case f.IsQuote("Auto"):
		return AutoQuote(in)
	case f.DocumentType == form.PolicyRenewal:
		return Renewal(in)
	case f.DocumentType == form.NewPolicyWelcome:
		return Welcome(in)
	case f.DocumentType == form.LatePaymentNotice:
		return LatePayment(in)
	case f.DocumentType == form.Receipt:
		return Receipt(in)
	}
	return Body(in), nil
}

// HomeQuote renders a homeowners quote with the six named coverages.
func HomeQuote(in Input) (template.HTML, error) {
	v := newView(in)
	v.Greeting = greeting(in.Prose.Greeting, in.Form.IsUpdatedQuote)
	v.Rate = quoteRateChange(in.Form.PreviousQuoteAmount, in.Form.QuoteAmount, in.Form.RenewalRateExplanation)
	v.HomeRows = homeRows(in.Form)
	v.Mailto = mailto(in.Agent.Email, fmt.Sprintf("Activate Home Quote for %s (%s)", in.Form.RecipientName, in.Form.PolicyHolder))
	v.Monthly = format.Or(v.Form.MonthlyPremium, "$0")
	return render("home_quote", v)
}

// AutoQuote renders an auto quote around the itemized coverage HTML.
func AutoQuote(in Input) (template.HTML, error) {
	v := newView(in)
	v.Greeting = greeting(in.Prose.Greeting, in.Form.IsUpdatedQuote)
	v.Rate = quoteRateChange(in.Form.PreviousQuoteAmount, in.Form.QuoteAmount, in.Form.RenewalRateExplanation)
	v.Coverages = coverages(in)
	v.Mailto = mailto(in.Agent.Email, fmt.Sprintf("Activate Auto Quote for %s (%s)", in.Form.RecipientName, in.Form.PolicyHolder))
	v.Monthly = v.Form.MonthlyPremium
	return render("auto_quote", v)
}

// Renewal renders the renewal notice. Rate changes are only shown for
// increases.
func Renewal(in Input) (template.HTML, error) {
	v := newView(in)
	v.Rate = renewalRateChange(in.Form.PreviousQuoteAmount, in.Form.QuoteAmount, in.Form.RenewalRateExplanation)
	v.Summary = []Row{
		{Label: "Policy Holder", Value: format.Or(in.Form.PolicyHolder, format.NotAvailable)},
		{Label: "Policy Number", Value: format.Or(in.Form.PolicyNumber, format.NotAvailable), Mono: true},
		{Label: "Renewal Effective Date", Value: format.Date(in.Form.RenewalDue), Strong: true},
		{Label: "New Total Premium", Value: format.Or(in.Form.QuoteAmount, format.NotAvailable), Strong: true, Color: v.Brand.Theme.Primary},
	}
	v.HomeRows = homeRows(in.Form)
	v.Coverages = coverages(in)
	v.Mailto = mailto(in.Agent.Email, "Question about my renewal: Policy #"+in.Form.PolicyNumber)
	v.Monthly = format.Or(v.Form.MonthlyPremium, "$0.00")
	v.PremiumLabel = "Your new annual premium is"
	if in.Form.RenewalType == "Auto" {
		v.PremiumLabel = fmt.Sprintf("Your %s-month premium is", in.Form.PolicyTerm)
	}
	return render("renewal", v)
}

// Welcome renders the new policy welcome with the carrier's contacts.
func Welcome(in Input) (template.HTML, error) {
	v := newView(in)
	v.CarrierLabel = v.Contact.Name
	v.Summary = []Row{
		{Label: "Policy Holder", Value: format.Or(in.Form.PolicyHolder, format.NotAvailable)},
		{Label: "Carrier", Value: format.Or(v.Contact.Name, format.NotAvailable)},
		{Label: "Policy Number", Value: format.Or(in.Form.PolicyNumber, format.NotAvailable), Mono: true},
		{Label: "Policy Type", Value: in.Form.RenewalType + " Insurance"},
		{Label: "Effective Date", Value: format.Date(in.Form.PolicyEffectiveDate), Strong: true},
		{Label: "Total Premium", Value: format.Or(in.Form.QuoteAmount, format.NotAvailable), Strong: true, Color: v.Brand.Theme.Primary},
	}
	v.HomeRows = homeRows(in.Form)
	v.Coverages = coverages(in)
	v.Mailto = mailto(in.Agent.Email, "Question about my new policy #"+in.Form.PolicyNumber)
	return render("welcome", v)
}

// LatePayment renders the pending cancellation notice. The payment link
// falls back to the carrier's own when the form leaves it blank.
func LatePayment(in Input) (template.HTML, error) {
	v := newView(in)
	v.CarrierLabel = v.Contact.Name
	if in.Form.LatePaymentLink != "" {
		v.Contact.PaymentLink = in.Form.LatePaymentLink
	}
	v.Summary = []Row{
		{Label: "Policy Holder", Value: format.Or(in.Form.PolicyHolder, format.NotAvailable)},
		{Label: "Policy Number", Value: format.Or(in.Form.PolicyNumber, format.NotAvailable), Mono: true},
		{Label: "Policy Type", Value: format.Or(in.Form.LatePolicyType, format.NotAvailable)},
		{Label: "Amount Due", Value: format.Or(in.Form.LateAmountDue, format.NotAvailable), Strong: true, Color: "#DC2626"},
		{Label: "Cancellation Date", Value: format.Date(in.Form.LateCancellationDate), Strong: true, Color: "#DC2626"},
	}
	v.Mailto = mailto(in.Agent.Email, "Payment Assistance for Policy #"+in.Form.PolicyNumber)
	return render("late_payment", v)
}

// Receipt renders a payment receipt.
func Receipt(in Input) (template.HTML, error) {
	v := newView(in)
	v.CarrierLabel = v.Contact.Name
	v.Summary = []Row{
		{Label: "Date Paid", Value: format.Date(in.Form.ReceiptDatePaid), Strong: true},
		{Label: "Confirmation #", Value: format.Or(in.Form.ReceiptConfirmationNumber, format.NotAvailable), Mono: true},
		{Label: "Payment Method", Value: format.Or(in.Form.ReceiptPaymentMethod, format.NotAvailable)},
		{Label: "Policy Holder", Value: format.Or(in.Form.PolicyHolder, format.NotAvailable)},
		{Label: "Policy Number", Value: format.Or(in.Form.PolicyNumber, format.NotAvailable), Mono: true},
		{Label: "Product / Service", Value: in.Form.ReceiptProduct + " Insurance"},
	}
	v.Mailto = mailto(in.Agent.Email, "Question about payment for Policy #"+in.Form.PolicyNumber)
	return render("receipt", v)
}

// Body returns the AI-authored body fragment unchanged.
func Body(in Input) template.HTML {
	return in.Body
}

func newView(in Input) view {
	f := in.Form
	if f.MonthlyPremium == "" {
		f = f.WithMonthlyPremium()
	}
	label := f.CarrierName
	if label == "" {
		label = "Insurance"
	}
	return view{
		Form:         f,
		Agent:        in.Agent,
		Agency:       in.Agency,
		Brand:        carrier.Resolve(f.CarrierName, in.Agency.LogoURL),
		Contact:      carrier.LookupContact(f.CarrierName, in.Agency.Phone),
		CarrierLabel: label,
		Prose:        in.Prose,
	}
}

func render(name string, v view) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

var updatedRe = regexp.MustCompile(`(?i)updated`)

// greeting escapes the AI greeting and, for updated quotes, bolds every
// "updated" regardless of case.
func greeting(s string, updated bool) template.HTML {
	escaped := template.HTMLEscapeString(s)
	if updated {
		escaped = updatedRe.ReplaceAllLiteralString(escaped, "<strong>UPDATED</strong>")
	}
	return template.HTML(escaped)
}

func homeRows(f form.Data) []Row {
	na := func(s string) string { return format.Or(s, format.NotAvailable) }
	return []Row{
		{Label: "Dwelling (Coverage A)", Value: na(f.DwellingCoverage)},
		{Label: "Other Structures (Coverage B)", Value: na(f.OtherStructuresCoverage)},
		{Label: "Personal Property (Coverage C)", Value: na(f.PersonalPropertyCoverage)},
		{Label: "Loss of Use (Coverage D)", Value: na(f.LossOfUseCoverage)},
		{Label: "Personal Liability", Value: na(f.PersonalLiabilityCoverage)},
		{Label: "Medical Payments", Value: na(f.MedicalPaymentsCoverage)},
	}
}

func coverages(in Input) template.HTML {
	raw := in.Form.ItemizedCoveragesHTML
	if raw == "" {
		return ""
	}
	if in.Sanitize != nil {
		raw = in.Sanitize(raw)
	}
	return template.HTML(raw)
}

// mailto builds a mailto link whose subject is percent-encoded the way
// browsers expect (spaces as %20).
func mailto(address, subject string) string {
	return "mailto:" + address + "?subject=" + strings.ReplaceAll(url.QueryEscape(subject), "+", "%20")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
