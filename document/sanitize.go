package document

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// emailPolicy allows the markup an email body is built from: user content
// elements plus table layout attributes and inline styles.
func emailPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "td", "th", "center", "font", "span", "div")
		p.AllowAttrs("width", "height", "align", "valign", "cellpadding", "cellspacing", "border", "bgcolor", "role").Globally()
		p.AllowAttrs("class", "style").Globally()
		p.AllowStyles("color", "background-color", "background", "font-size", "font-weight",
			"font-family", "text-align", "padding", "padding-top", "padding-bottom", "padding-left",
			"padding-right", "margin", "margin-top", "margin-bottom", "border", "border-radius",
			"border-bottom", "border-top", "line-height", "width", "max-width", "display",
			"text-decoration", "vertical-align").Globally()
		p.RequireNoFollowOnLinks(false)
		p.AllowURLSchemes("http", "https", "mailto", "tel")
		policy = p
	})
	return policy
}

// Sanitize strips scripts, event handlers and unsafe URLs from AI-authored
// HTML while keeping the table layout it uses.
func Sanitize(fragment string) string {
	return emailPolicy().Sanitize(fragment)
}
