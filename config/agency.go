package config

import (
	"strings"
	"unicode"
)

// Agency holds the branding and contact details printed in every document.
type Agency struct {
	Name        string `yaml:"name" validate:"required"`
	ShortName   string `yaml:"shortName" validate:"required"`
	LogoURL     string `yaml:"logoUrl" validate:"required,url"`
	Address     string `yaml:"address" validate:"required"`
	Phone       string `yaml:"phone" validate:"required"`
	Email       string `yaml:"email" validate:"required,email"`
	Website     string `yaml:"website" validate:"required,url"`
	Tagline     string `yaml:"tagline"`
	ReviewURL   string `yaml:"reviewUrl" validate:"omitempty,url"`
	FacebookURL string `yaml:"facebookUrl" validate:"omitempty,url"`
}

// PhoneLink returns a tel: URI with every non-digit removed.
func (a Agency) PhoneLink() string {
	return "tel:" + digits(a.Phone)
}

func (a Agency) MailtoLink() string {
	return "mailto:" + a.Email
}

// WebsiteLabel is the website without scheme or trailing slash.
func (a Agency) WebsiteLabel() string {
	label := strings.TrimPrefix(a.Website, "https://")
	label = strings.TrimPrefix(label, "http://")
	return strings.TrimSuffix(label, "/")
}

// Agent is a person (or the shared team inbox) that signs outgoing emails.
type Agent struct {
	ID    string `yaml:"id" validate:"required"`
	Name  string `yaml:"name" validate:"required"`
	Title string `yaml:"title"`
	Email string `yaml:"email" validate:"required,email"`
	Phone string `yaml:"phone" validate:"required"`
}

func (a Agent) PhoneLink() string {
	return "tel:" + digits(a.Phone)
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// DefaultAgency is the agency written to a freshly created settings file.
func DefaultAgency() Agency {
	return Agency{
		Name:        "Bill Layne Insurance Agency",
		ShortName:   "Bill Layne Ins",
		LogoURL:     "https://i.imgur.com/uVVShPM.png",
		Address:     "1283 N Bridge St, Elkin, NC 28621",
		Phone:       "336-835-1993",
		Email:       "Bill@NCAutoandHome.com",
		Website:     "https://www.billlayneinsurance.com/",
		Tagline:     "Protecting North Carolina Families",
		ReviewURL:   "https://g.page/r/CXGq9B7-jzu7EBM/review",
		FacebookURL: "https://facebook.com/BillLayneInsurance",
	}
}

// DefaultAgents lists the team first; it doubles as the fallback agent.
func DefaultAgents() []Agent {
	phone := DefaultAgency().Phone
	return []Agent{
		{ID: "team", Name: "The Team at Bill Layne Insurance Agency", Title: "Your Service Team", Email: "Save@NCAutoandHome.com", Phone: phone},
		{ID: "robin", Name: "Robin Holbrook", Title: "Agent", Email: "Robin@BillLayneInsurance.com", Phone: phone},
		{ID: "tina", Name: "Tina Jennings", Title: "Agent", Email: "Tina@BillLayneInsurance.com", Phone: phone},
		{ID: "scott", Name: "Scott Holbrook", Title: "Agent", Email: "Scott@BillLayneInsurance.com", Phone: phone},
		{ID: "debbie", Name: "Debbie Garner", Title: "Agent", Email: "Debbie@BillLayneinsurance.com", Phone: phone},
		{ID: "bill", Name: "Bill Layne", Title: "Agent", Email: "Bill@BillLayneInsurance.com", Phone: phone},
	}
}
