package document

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

var skipText = map[string]bool{"style": true, "script": true, "head": true, "title": true}

// PlainText extracts the visible text of doc with whitespace collapsed.
func PlainText(doc string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipText[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		// Image alt text stands in for the image.
		if n.Type == html.ElementNode && n.Data == "img" {
			if alt := getAttr(n, "alt"); alt != "" {
				parts = append(parts, alt)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " "), nil
}

// BodyHTML returns the inner HTML of the <body> element, the part a webmail
// compose window accepts when pasted.
func BodyHTML(doc string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}
	body := findElement(root, "body")
	if body == nil {
		return doc, nil
	}
	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render body: %w", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
