package bulk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billlayne/mailcomposer/store"
)

func TestPersonalize(t *testing.T) {
	m := Message{
		Subject: "Renewal for {{policyHolder}}",
		HTML:    "<p>Hi {{recipientName}}, {{firstName}}! {{RecipientName}} {{policyHolder}}</p>",
	}
	got := Personalize(m, store.Recipient{Email: "jane@example.com", FirstName: "Jane", PolicyHolder: "Jane & John Doe"})
	assert.Equal(t, "Renewal for Jane & John Doe", got.Subject)
	assert.Equal(t, "<p>Hi Jane, Jane! {{RecipientName}} Jane & John Doe</p>", got.HTML, "case-sensitive and unescaped")
}

func TestPersonalizeEmptyValues(t *testing.T) {
	got := Personalize(Message{HTML: "Hi {{recipientName}}"}, store.Recipient{Email: "a@example.com"})
	assert.Equal(t, "Hi ", got.HTML)
}

func TestWriteCSV(t *testing.T) {
	l := store.RecipientList{Name: "Spring", Recipients: []store.Recipient{
		{Email: "jane@example.com", FirstName: "Jane", PolicyHolder: "Jane Doe"},
		{Email: "bob@example.com", FirstName: "Bob", PolicyHolder: "Bob"},
	}}
	rows := Rows(Message{Subject: "Hi {{firstName}}", HTML: `<a href="x">Hi {{recipientName}}</a>`}, l)
	require.Len(t, rows, 2)

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, rows))
	want := `"email","firstName","policyHolder","subject","htmlBody"` + "\n" +
		`"jane@example.com","Jane","Jane Doe","Hi Jane","<a href=""x"">Hi Jane</a>"` + "\n" +
		`"bob@example.com","Bob","Bob","Hi Bob","<a href=""x"">Hi Bob</a>"` + "\n"
	assert.Equal(t, want, sb.String())
	assert.NotContains(t, sb.String(), "\r")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Spring_Renewals_campaign_data.csv", Filename("Spring Renewals"))
	assert.Equal(t, "All_Contacts_campaign_data.csv", Filename("All Contacts"))
	assert.Equal(t, "recipients_campaign_data.csv", Filename("  "))
}
