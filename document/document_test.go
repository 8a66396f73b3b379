package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
)

func testMeta() Meta {
	return Meta{
		Subject:   "Your renewal",
		Preheader: "Renewal details inside",
		Agent:     config.Agent{ID: "bill", Name: "Bill Layne", Title: "Agent", Email: "bill@example.com", Phone: "(336) 835-1993"},
		Agency:    config.DefaultAgency(),
	}
}

func TestAssemble(t *testing.T) {
	doc, err := Assemble("<p>Body text</p>", testMeta())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>Your renewal</title>")
	assert.Contains(t, doc, "Renewal details inside")
	assert.Contains(t, doc, "<p>Body text</p>")
	assert.Contains(t, doc, "prefers-color-scheme: dark")
	assert.Contains(t, doc, "[data-ogsc]")
	assert.Contains(t, doc, ".dark-mode-preview")
	assert.Contains(t, doc, `href="tel:3368351993"`)
	assert.Contains(t, doc, `href="mailto:bill@example.com"`)
	assert.Contains(t, doc, "Agent at Bill Layne Insurance Agency")
	assert.Contains(t, doc, "www.billlayneinsurance.com")
	assert.NotContains(t, doc, "Unsubscribe here")
	assert.NotContains(t, doc, "Like Us on Facebook")
	assert.NotContains(t, doc, `class="responsive-img"`)
}

func TestAssembleHero(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		link     string
		wantHero bool
		wantLink bool
	}{
		{"https with link", "https://img.example.com/a.jpg", "https://example.com/offer", true, true},
		{"data url", "data:image/jpeg;base64,AAAA", "", true, false},
		{"javascript link dropped", "https://img.example.com/a.jpg", "javascript:alert(1)", true, false},
		{"relative url ignored", "/a.jpg", "", false, false},
		{"empty", "", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMeta()
			m.HeroURL = tt.url
			m.HeroLink = tt.link
			doc, err := Assemble("", m)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHero, strings.Contains(doc, `class="responsive-img"`))
			if tt.wantHero {
				assert.Contains(t, doc, `src="`+tt.url+`"`)
			}
			assert.Equal(t, tt.wantLink, tt.link != "" && strings.Contains(doc, `href="`+tt.link+`"`))
		})
	}
}

func TestAssembleNewsletter(t *testing.T) {
	m := testMeta()
	m.Newsletter = true
	m.FacebookBanner = true
	doc, err := Assemble("", m)
	require.NoError(t, err)
	assert.Contains(t, doc, "This email was sent to {{RecipientEmail}}.")
	assert.Contains(t, doc, "mailto:Bill@NCAutoandHome.com?subject=Please%20unsubscribe%20me")
	assert.Contains(t, doc, "Like Us on Facebook")

	m.RecipientEmail = "jane@example.com"
	doc, err = Assemble("", m)
	require.NoError(t, err)
	assert.Contains(t, doc, "This email was sent to jane@example.com.")
}

func TestMetaFor(t *testing.T) {
	f := form.Defaults()
	f.DocumentType = form.Newsletter
	f.EmailSubject = "News"
	f.IncludeFacebookBanner = true
	m := MetaFor(f, testMeta().Agent, config.DefaultAgency())
	assert.True(t, m.Newsletter)
	assert.True(t, m.FacebookBanner)
	assert.Equal(t, "News", m.Subject)
	assert.NotEmpty(t, m.Preheader)
}

func TestTagLinks(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := `<html><body>` +
		`<a href="https://example.com/page?x=1">a</a>` +
		`<a href="HTTP://Example.com/">b</a>` +
		`<a href="mailto:bill@example.com">c</a>` +
		`<a href="tel:123">d</a>` +
		`<a href="https://exa mple.com/%zz">e</a>` +
		`</body></html>`
	p := UTM{Source: "email", Medium: "email", DocumentType: "Policy Renewal"}

	out, err := TagLinks(doc, p, now)
	require.NoError(t, err)
	assert.Contains(t, out, `href="https://example.com/page?utm_campaign=policy_renewal-2025-03-01&amp;utm_medium=email&amp;utm_source=email&amp;x=1"`)
	assert.Contains(t, out, "utm_campaign=policy_renewal-2025-03-01")
	assert.Contains(t, out, `href="mailto:bill@example.com"`)
	assert.Contains(t, out, `href="tel:123"`)
	assert.Contains(t, out, `href="https://exa mple.com/%zz"`, "malformed hrefs are untouched")
	assert.NotContains(t, out, "utm_content")

	again, err := TagLinks(out, p, now)
	require.NoError(t, err)
	assert.Equal(t, out, again, "tagging is idempotent")
	assert.Equal(t, 2, strings.Count(again, "utm_source="))
}

func TestTagLinksOverwrites(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	doc := `<a href="https://example.com/?utm_source=old&utm_campaign=old">x</a>`
	out, err := TagLinks(doc, UTM{Source: "new", Campaign: "spring", Content: "hero"}, now)
	require.NoError(t, err)
	assert.Contains(t, out, "utm_source=new")
	assert.Contains(t, out, "utm_campaign=spring")
	assert.Contains(t, out, "utm_content=hero")
	assert.NotContains(t, out, "old")
	assert.NotContains(t, out, "utm_medium")
}

func TestCampaignFor(t *testing.T) {
	now := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "email-2025-12-24", UTM{}.CampaignFor(now))
	assert.Equal(t, "insurance_quote-2025-12-24", UTM{DocumentType: "Insurance Quote"}.CampaignFor(now))
	assert.Equal(t, "fall", UTM{Campaign: " fall ", DocumentType: "Receipt"}.CampaignFor(now))
}

func TestWithBodyClass(t *testing.T) {
	out, err := WithBodyClass(`<html><body class="email-bg"><p>x</p></body></html>`, "dark-mode-preview")
	require.NoError(t, err)
	assert.Contains(t, out, `class="email-bg dark-mode-preview"`)

	out, err = WithBodyClass(`<p>x</p>`, "dark-mode-preview")
	require.NoError(t, err)
	assert.Contains(t, out, `<body class="dark-mode-preview">`)
}

func TestSanitize(t *testing.T) {
	in := `<table class="vehicle-coverage-table"><tr><td onclick="x()">Liability</td></tr></table>` +
		`<script>alert(1)</script><a href="javascript:alert(1)">bad</a><a href="https://example.com">ok</a>`
	out := Sanitize(in)
	assert.Contains(t, out, `<table class="vehicle-coverage-table">`)
	assert.Contains(t, out, "Liability")
	assert.Contains(t, out, `href="https://example.com"`)
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "javascript:")
}

func TestPlainTextAndBody(t *testing.T) {
	doc := `<!DOCTYPE html><html><head><title>T</title><style>p{color:red}</style></head>` +
		`<body><p>Hello   <b>Jane</b>,</p><img src="x.png" alt="Logo"><p>Bye</p></body></html>`
	text, err := PlainText(doc)
	require.NoError(t, err)
	assert.Equal(t, "Hello Jane , Logo Bye", text)

	body, err := BodyHTML(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(body, "<p>Hello"))
	assert.NotContains(t, body, "<style>")
	assert.NotContains(t, body, "<body")
}

func TestSizeLevel(t *testing.T) {
	assert.Equal(t, LevelOK, SizeLevel(strings.Repeat("a", 80*1024)))
	assert.Equal(t, LevelWarn, SizeLevel(strings.Repeat("a", 80*1024+1)))
	assert.Equal(t, LevelClip, SizeLevel(strings.Repeat("a", 102*1024+1)))
	assert.InDelta(t, 2.0, SizeKB(strings.Repeat("é", 1024)), 0.001)
	assert.Equal(t, LevelWarn, SizeLevelWith(strings.Repeat("a", 2048), 1, 10))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Jane_Doe-Home_Quote.html", Filename("Jane Doe", "Home Quote"))
	assert.Equal(t, "Client-Receipt.html", Filename("  ", "Receipt"))
	assert.Equal(t, "OBrien_Co-Change_Underwriting_Request.html", Filename("O'Brien & Co", "Change / Underwriting Request"))
}
