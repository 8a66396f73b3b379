// Package carrier maps free-text carrier names to branding and contact data.
package carrier

import "strings"

// Theme is the color set used for cards, buttons and hero prices.
type Theme struct {
	Primary       string
	Accent        string
	TextOnPrimary string
	TextOnAccent  string
	CardBorder    string
}

// Branding is the result of resolving a carrier name.
type Branding struct {
	// Key is the matcher that won, empty when the defaults were used.
	Key     string
	LogoURL string
	Theme   Theme
}

type matcher struct {
	key     string
	id      string
	theme   Theme
	logoURL string
	contact Contact
}

// DefaultTheme is used when no carrier matches.
var DefaultTheme = Theme{
	Primary:       "#003366",
	Accent:        "#FFC300",
	TextOnPrimary: "#FFFFFF",
	TextOnAccent:  "#003366",
	CardBorder:    "#FFC300",
}

// matchers is evaluated top to bottom and the first key contained in the
// lower-cased input wins. Longer brand names come before shorter ones.
var matchers = []matcher{
	{
		key: "national general", id: "national_general",
		theme:   Theme{"#0078C8", "#5CB941", "#FFFFFF", "#FFFFFF", "#5CB941"},
		logoURL: "https://i.imgur.com/HF8oPAF.png",
		contact: Contact{Name: "National General", PaymentLink: "https://www.mynatgenpolicy.com/pay", ServicePhone: "888-293-5108", ClaimsPhone: "800-462-2123"},
	},
	{
		key: "nationwide", id: "nationwide",
		theme:   Theme{"#00659E", "#E31B23", "#FFFFFF", "#FFFFFF", "#00659E"},
		logoURL: "https://i.imgur.com/Mv5V7tV.png",
		contact: Contact{Name: "Nationwide", PaymentLink: "https://www.nationwide.com/bill-pay", ServicePhone: "877-669-6877", ClaimsPhone: "800-421-3535"},
	},
	{
		key: "progressive", id: "progressive",
		theme:   Theme{"#003F64", "#007AC3", "#FFFFFF", "#FFFFFF", "#007AC3"},
		logoURL: "https://i.imgur.com/7N1vfo0.png",
		contact: Contact{Name: "Progressive", PaymentLink: "https://account.apps.progressive.com/access/ez-payment/policy-info", ServicePhone: "800-776-4737", ClaimsPhone: "800-776-4737"},
	},
	{
		key: "dairyland", id: "dairyland",
		theme:   Theme{"#006699", "#FFCC00", "#FFFFFF", "#006699", "#006699"},
		logoURL: "https://i.imgur.com/gS3703v.png",
		contact: Contact{Name: "Dairyland", PaymentLink: "https://www.dairylandinsurance.com/make-a-payment", ServicePhone: "800-334-0090", ClaimsPhone: "800-334-0090"},
	},
	{
		key: "foremost", id: "foremost",
		theme:   Theme{"#004B8E", "#004B8E", "#FFFFFF", "#FFFFFF", "#004B8E"},
		logoURL: "https://i.imgur.com/rHIo4r5.jpg",
		contact: Contact{Name: "Foremost", PaymentLink: "https://www.myforemostaccount.com/fmcss/makeapayment", ServicePhone: "800-527-3905", ClaimsPhone: "800-527-3907"},
	},
	{
		key: "grange", id: "nc_grange",
		theme:   Theme{"#005A41", "#F3B71B", "#FFFFFF", "#005A41", "#F3B71B"},
		logoURL: "https://i.imgur.com/Fesnkng.png",
		contact: Contact{Name: "NC Grange", PaymentLink: "https://ncgrangemutual.ncgrangemutual.com/payments/", ServicePhone: "800-662-7777", ClaimsPhone: "877-444-6742"},
	},
	{
		key: "alamance", id: "alamance_farmers",
		theme:   Theme{"#003A5D", "#8DB943", "#FFFFFF", "#003A5D", "#8DB943"},
		logoURL: "https://i.imgur.com/KhV6zop.png",
		contact: Contact{Name: "Alamance Farmers", PaymentLink: "https://alamance.britecorepro.com/login/securePayment", ServicePhone: "336-226-7959", ClaimsPhone: "336-226-7959"},
	},
}

func match(name string) (matcher, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return matcher{}, false
	}
	for _, m := range matchers {
		if strings.Contains(lower, m.key) {
			return m, true
		}
	}
	return matcher{}, false
}

// Resolve returns the theme and logo for name. Unknown or empty names get
// DefaultTheme and fallbackLogo, normally the agency's own logo.
func Resolve(name, fallbackLogo string) Branding {
	m, ok := match(name)
	if !ok {
		return Branding{LogoURL: fallbackLogo, Theme: DefaultTheme}
	}
	return Branding{Key: m.key, LogoURL: m.logoURL, Theme: m.theme}
}

// Keys lists the matcher keys in priority order.
func Keys() []string {
	keys := make([]string, len(matchers))
	for i, m := range matchers {
		keys[i] = m.key
	}
	return keys
}
