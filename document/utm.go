package document

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/html"
)

// UTM holds the campaign parameters added to outbound links.
type UTM struct {
	Source   string
	Medium   string
	Campaign string
	Content  string
	// DocumentType seeds the default campaign name.
	DocumentType string
}

var httpHref = regexp.MustCompile(`(?i)^https?:`)

// CampaignFor returns the campaign name: the configured one, or the document
// type lower-cased with whitespace replaced by underscores followed by the
// date, e.g. "policy_renewal-2025-03-01".
func (p UTM) CampaignFor(now time.Time) string {
	if c := strings.TrimSpace(p.Campaign); c != "" {
		return c
	}
	prefix := "email"
	if p.DocumentType != "" {
		prefix = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return '_'
			}
			return r
		}, strings.ToLower(p.DocumentType))
	}
	return prefix + "-" + now.Format("2006-01-02")
}

// TagLinks adds UTM parameters to every http(s) anchor in doc. Existing
// utm_* values are overwritten, so tagging twice gives the same result.
// Hrefs that do not parse are left as they are.
func TagLinks(doc string, p UTM, now time.Time) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	campaign := p.CampaignFor(now)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for i, attr := range n.Attr {
				if attr.Key != "href" || !httpHref.MatchString(attr.Val) {
					continue
				}
				if tagged, ok := tagURL(attr.Val, p, campaign); ok {
					n.Attr[i].Val = tagged
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

func tagURL(raw string, p UTM, campaign string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	q := u.Query()
	q.Set("utm_source", p.Source)
	if p.Medium != "" {
		q.Set("utm_medium", p.Medium)
	}
	q.Set("utm_campaign", campaign)
	if p.Content != "" {
		q.Set("utm_content", p.Content)
	}
	u.RawQuery = q.Encode()
	return u.String(), true
}

// WithBodyClass adds class to the <body> element, used to force the dark
// palette in previews.
func WithBodyClass(doc, class string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	if body := findElement(root, "body"); body != nil {
		set := false
		for i, attr := range body.Attr {
			if attr.Key == "class" {
				body.Attr[i].Val = strings.TrimSpace(attr.Val + " " + class)
				set = true
			}
		}
		if !set {
			body.Attr = append(body.Attr, html.Attribute{Key: "class", Val: class})
		}
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
