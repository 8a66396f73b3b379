package compose

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/billlayne/mailcomposer/bulk"
	"github.com/billlayne/mailcomposer/calendar"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/store"
)

var (
	ErrEmptyList = errors.New("compose: recipient list has no recipients")
	// ErrNoInvite means the form does not ask for a renewal invite.
	ErrNoInvite = errors.New("compose: no renewal invite for this email")
)

// Campaign is a bulk render personalized for every member of a list.
type Campaign struct {
	Email Email
	List  store.RecipientList
	Rows  []bulk.Row
}

// Filename is the CSV export name for the campaign.
func (c Campaign) Filename() string {
	return bulk.Filename(c.List.Name)
}

// Campaign renders d in bulk mode and personalizes it for the list named
// or identified by list.
func (s *Service) Campaign(ctx context.Context, d form.Data, list string) (Campaign, error) {
	if s.store == nil {
		return Campaign{}, ErrNoStore
	}
	l, err := s.store.List(ctx, list)
	if err != nil {
		return Campaign{}, err
	}
	if len(l.Recipients) == 0 {
		return Campaign{}, fmt.Errorf("%q: %w", l.Name, ErrEmptyList)
	}
	e, err := s.Generate(ctx, d, Bulk)
	if err != nil {
		return Campaign{}, err
	}
	rows := bulk.Rows(bulk.Message{Subject: e.Subject, HTML: e.HTML}, l)
	s.log.Info("campaign personalized", zap.String("list", l.Name), zap.Int("rows", len(rows)))
	return Campaign{Email: e, List: l, Rows: rows}, nil
}

// Invite builds the renewal reminder for d.
func (s *Service) Invite(d form.Data) (string, error) {
	if d.DocumentType != form.PolicyRenewal || !d.WantsICS() {
		return "", ErrNoInvite
	}
	if d.RenewalDue == "" {
		return "", fmt.Errorf("%w: please set a renewal date and time first", form.ErrMissingField)
	}
	return calendar.RenewalInvite(calendar.Invite{
		PolicyHolder: d.PolicyHolder,
		RenewalDue:   d.RenewalDue,
		AgencyName:   s.settings.Agency.Name,
		Address:      s.settings.Agency.Address,
	}, s.settings.Location(), s.now())
}
