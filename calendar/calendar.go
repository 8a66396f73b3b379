// Package calendar builds the renewal reminder invite attached to renewal
// emails.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	ProductID = "-//BillLayneInsurance//AIComposer//EN"
	Filename  = "Policy-Renewal.ics"

	eventLength = 30 * time.Minute
	uidDomain   = "billlayneins.com"
)

var ErrInvalidDate = errors.New("calendar: invalid renewal date")

var startLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Invite describes a renewal reminder.
type Invite struct {
	PolicyHolder string
	// RenewalDue is a local date or date-time as entered on the form.
	RenewalDue string
	AgencyName string
	Address    string
}

// ParseStart reads s as wall-clock time in loc. RFC3339 input keeps its
// own offset.
func ParseStart(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// RenewalInvite renders a VCALENDAR with one 30 minute VEVENT starting at
// the renewal time. All timestamps are written in UTC.
func RenewalInvite(inv Invite, loc *time.Location, now time.Time) (string, error) {
	start, err := ParseStart(inv.RenewalDue, loc)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)

	event := cal.AddEvent(fmt.Sprintf("renewal-%d@%s", now.UnixMilli(), uidDomain))
	event.SetDtStampTime(now)
	event.SetStartAt(start)
	event.SetEndAt(start.Add(eventLength))

	holder := inv.PolicyHolder
	if holder == "" {
		holder = "Your Policy"
	}
	event.SetSummary("Policy Renewal: " + holder)
	event.SetDescription("Policy renewal reminder from " + inv.AgencyName)
	event.SetLocation(inv.Address)

	return cal.Serialize(), nil
}
