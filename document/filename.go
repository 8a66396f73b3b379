package document

import (
	"regexp"
	"strings"
)

var (
	unsafeName = regexp.MustCompile(`(?i)[^a-z0-9\s-]`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// Filename builds the download name "{holder}-{product}.html", e.g.
// "Jane_Doe-Home_Quote.html". The holder defaults to "Client".
func Filename(policyHolder, product string) string {
	holder := strings.TrimSpace(policyHolder)
	if holder == "" {
		holder = "Client"
	}
	return clean(holder) + "-" + clean(product) + ".html"
}

func clean(s string) string {
	s = unsafeName.ReplaceAllString(s, "")
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), "_")
}
