package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var est = time.FixedZone("EST", -5*60*60)

func TestRenewalInvite(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	out, err := RenewalInvite(Invite{
		PolicyHolder: "Jane Doe",
		RenewalDue:   "2025-03-01T09:00",
		AgencyName:   "Bill Layne Insurance Agency",
		Address:      "1283 N Bridge St, Elkin, NC 28621",
	}, est, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, out, "PRODID:"+ProductID+"\r\n")
	assert.Contains(t, out, "VERSION:2.0")
	assert.Contains(t, out, "BEGIN:VEVENT")
	assert.Contains(t, out, "UID:renewal-1738411200000@billlayneins.com")
	assert.Contains(t, out, "DTSTART:20250301T140000Z")
	assert.Contains(t, out, "DTEND:20250301T143000Z")
	assert.Contains(t, out, "SUMMARY:Policy Renewal: Jane Doe")
	assert.Contains(t, out, "DESCRIPTION:Policy renewal reminder from Bill Layne Insurance Agency")
	assert.Contains(t, out, `LOCATION:1283 N Bridge St\, Elkin\, NC 28621`)
	assert.Contains(t, out, "END:VCALENDAR")
	assert.NotContains(t, out, "PRODID:-//arran4")
}

func TestRenewalInviteDefaults(t *testing.T) {
	out, err := RenewalInvite(Invite{RenewalDue: "2025-03-01"}, time.UTC, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Contains(t, out, "SUMMARY:Policy Renewal: Your Policy")
	assert.Contains(t, out, "DTSTART:20250301T000000Z")
}

func TestRenewalInviteInvalidDate(t *testing.T) {
	_, err := RenewalInvite(Invite{RenewalDue: "someday"}, time.UTC, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = RenewalInvite(Invite{}, time.UTC, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDate)
}
