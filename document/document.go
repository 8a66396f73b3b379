// Package document wraps a body fragment in the complete, self-contained
// email document and post-processes the result (UTM tagging, sanitizing,
// plain-text extraction, size checks).
package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
)

//go:embed templates/email.tmpl
var templateFS embed.FS

var emailTemplate = template.Must(template.New("email.tmpl").Funcs(template.FuncMap{
	"tel": func(phone string) template.URL {
		return template.URL("tel:" + digitsOnly(phone))
	},
}).ParseFS(templateFS, "templates/email.tmpl"))

// Meta is everything around the body: subject, preheader, hero image,
// banner and footer.
type Meta struct {
	Subject        string
	Preheader      string
	HeroURL        string
	HeroAlt        string
	HeroLink       string
	FacebookBanner bool
	// Newsletter adds the unsubscribe notice to the footer.
	Newsletter     bool
	RecipientEmail string
	Agent          config.Agent
	Agency         config.Agency
}

// MetaFor collects the document metadata carried by a form.
func MetaFor(f form.Data, agent config.Agent, agency config.Agency) Meta {
	return Meta{
		Subject:        f.EmailSubject,
		Preheader:      f.Preheader(agency.Name),
		HeroURL:        f.HeroURL,
		HeroAlt:        f.HeroAlt,
		HeroLink:       f.HeroLink,
		FacebookBanner: f.IncludeFacebookBanner,
		Newsletter:     f.DocumentType == form.Newsletter,
		RecipientEmail: f.RecipientEmail,
		Agent:          agent,
		Agency:         agency,
	}
}

type heroView struct {
	URL  template.URL
	Alt  string
	Link string
}

type unsubscribeView struct {
	Address string
	Link    string
}

type documentView struct {
	Meta
	Body        template.HTML
	Hero        *heroView
	AgentMailto string
	Unsubscribe *unsubscribeView
}

// Assemble renders the full HTML document around body. The hero row is only
// included for http(s) or data:image URLs.
func Assemble(body template.HTML, meta Meta) (string, error) {
	v := documentView{
		Meta:        meta,
		Body:        body,
		AgentMailto: "mailto:" + meta.Agent.Email,
	}
	if IsHeroURL(meta.HeroURL) {
		v.Hero = &heroView{URL: template.URL(meta.HeroURL), Alt: meta.HeroAlt}
		if v.Hero.Alt == "" {
			v.Hero.Alt = "Hero image"
		}
		if hasHTTPScheme(meta.HeroLink) {
			v.Hero.Link = meta.HeroLink
		}
	}
	if meta.Newsletter {
		addr := meta.RecipientEmail
		if addr == "" {
			addr = "{{RecipientEmail}}"
		}
		v.Unsubscribe = &unsubscribeView{
			Address: addr,
			Link:    meta.Agency.MailtoLink() + "?subject=Please%20unsubscribe%20me",
		}
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("assemble document: %w", err)
	}
	return buf.String(), nil
}

// IsHeroURL reports whether u can be used as a hero image source.
func IsHeroURL(u string) bool {
	return hasHTTPScheme(u) || hasPrefixFold(u, "data:image")
}

func hasHTTPScheme(u string) bool {
	return hasPrefixFold(u, "http:") || hasPrefixFold(u, "https:")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
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
