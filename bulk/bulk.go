// Package bulk personalizes a rendered campaign for each recipient and
// writes the rows consumed by external bulk-mail tooling.
package bulk

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/store"
)

// Message is a subject and HTML body that may still contain placeholders.
type Message struct {
	Subject string
	HTML    string
}

// Row is one personalized message ready for export.
type Row struct {
	Email        string
	FirstName    string
	PolicyHolder string
	Subject      string
	HTMLBody     string
}

// Personalize replaces every placeholder in m with r's values. Replacement
// is literal and case-sensitive; values are not escaped.
func Personalize(m Message, r store.Recipient) Message {
	rep := strings.NewReplacer(
		form.PlaceholderRecipientName, r.FirstName,
		form.PlaceholderFirstName, r.FirstName,
		form.PlaceholderPolicyHolder, r.PolicyHolder,
	)
	return Message{Subject: rep.Replace(m.Subject), HTML: rep.Replace(m.HTML)}
}

// Rows personalizes m for every recipient of l.
func Rows(m Message, l store.RecipientList) []Row {
	rows := make([]Row, 0, len(l.Recipients))
	for _, r := range l.Recipients {
		p := Personalize(m, r)
		rows = append(rows, Row{
			Email:        r.Email,
			FirstName:    r.FirstName,
			PolicyHolder: r.PolicyHolder,
			Subject:      p.Subject,
			HTMLBody:     p.HTML,
		})
	}
	return rows
}

var header = []string{"email", "firstName", "policyHolder", "subject", "htmlBody"}

// WriteCSV writes rows with a header. Every cell is quoted and embedded
// quotes are doubled; rows end in "\n".
func WriteCSV(w io.Writer, rows []Row) error {
	if err := writeRecord(w, header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRecord(w, []string{r.Email, r.FirstName, r.PolicyHolder, r.Subject, r.HTMLBody}); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	if _, err := io.WriteString(w, strings.Join(quoted, ",")+"\n"); err != nil {
		return fmt.Errorf("bulk: write csv: %w", err)
	}
	return nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename is "<listName>_campaign_data.csv" with the list name reduced to
// filename-safe characters.
func Filename(listName string) string {
	name := unsafeName.ReplaceAllString(strings.TrimSpace(listName), "_")
	if name == "" {
		name = "recipients"
	}
	return name + "_campaign_data.csv"
}
