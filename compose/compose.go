// Package compose runs the generate pipeline: validate the form, ask the AI
// collaborator for copy when the document type needs it, merge the prose,
// assemble the document and tag its links.
package compose

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/billlayne/mailcomposer/ai"
	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/document"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/prose"
	"github.com/billlayne/mailcomposer/store"
)

// Mode selects single-recipient or bulk composition.
type Mode int

const (
	Single Mode = iota
	// Bulk renders once with merge placeholders for every list member.
	Bulk
)

func (m Mode) String() string {
	if m == Bulk {
		return "bulk"
	}
	return "single"
}

// Email is a generated document with the values derived for it.
type Email struct {
	// Form is the data the document was rendered from, after bulk
	// placeholders, default subject and monthly premium were applied.
	Form      form.Data
	Subject   string
	Preheader string
	HTML      string
	Filename  string
	SizeKB    float64
	Level     document.Level
}

type Service struct {
	settings config.Settings
	ai       ai.Collaborator
	store    *store.Store
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// New creates a Service. st may be nil, in which case contacts are not
// recorded and campaigns are unavailable.
func New(settings config.Settings, collab ai.Collaborator, st *store.Store, opts ...Option) *Service {
	s := &Service{
		settings: settings,
		ai:       collab,
		store:    st,
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Settings() config.Settings { return s.settings }

// Prepare returns the data a render in mode works from. Bulk mode swaps the
// recipient for placeholders; a blank subject gets the document type's
// default.
func (s *Service) Prepare(d form.Data, mode Mode) form.Data {
	if mode == Bulk {
		d = d.ForBulk()
	}
	if d.EmailSubject == "" {
		d.EmailSubject = form.DefaultSubject(d.DocumentType, d.PolicyHolder, d.ChangeRequestType, s.settings.Agency.ShortName)
	}
	return d.WithMonthlyPremium()
}

// Generate validates d and renders the complete email. A single-mode
// render with a valid recipient address also records the contact.
func (s *Service) Generate(ctx context.Context, d form.Data, mode Mode) (Email, error) {
	if err := form.Validate(d); err != nil {
		return Email{}, err
	}
	if mode == Single && s.store != nil && d.RecipientEmail != "" {
		if err := s.store.RecordContact(ctx, store.ContactFromForm(d)); err != nil {
			// The render does not depend on the contact list.
			s.log.Warn("record contact failed", zap.String("email", d.RecipientEmail), zap.Error(err))
		}
	}

	eff := s.Prepare(d, mode)
	agent := s.settings.Agent(eff.AgentID)
	in := prose.Input{
		Form:   eff,
		Agent:  agent,
		Agency: s.settings.Agency,
	}
	if s.settings.AI.Sanitize {
		in.Sanitize = document.Sanitize
	}

	start := s.now()
	var err error
	switch {
	case eff.IsQuote("Home"):
		in.Prose, err = s.ai.HomeQuoteProse(ctx, eff)
	case eff.IsQuote("Auto"):
		in.Prose, err = s.ai.AutoQuoteProse(ctx, eff)
	case eff.UsesAIBody():
		var body string
		body, err = s.ai.EmailBody(ctx, eff, agent)
		if s.settings.AI.Sanitize {
			body = document.Sanitize(body)
		}
		in.Body = template.HTML(body)
	}
	if err != nil {
		return Email{}, err
	}

	body, err := prose.Merge(in)
	if err != nil {
		return Email{}, fmt.Errorf("merge %s: %w", eff.DocumentType, err)
	}
	doc, err := document.Assemble(body, document.MetaFor(eff, agent, s.settings.Agency))
	if err != nil {
		return Email{}, err
	}
	if eff.EnableUTM {
		doc, err = document.TagLinks(doc, UTMFor(eff), s.now())
		if err != nil {
			return Email{}, err
		}
	}

	e := Email{
		Form:      eff,
		Subject:   eff.EmailSubject,
		Preheader: eff.Preheader(s.settings.Agency.Name),
		HTML:      doc,
		Filename:  document.Filename(eff.PolicyHolder, eff.ProductName()),
		SizeKB:    document.SizeKB(doc),
		Level:     document.SizeLevelWith(doc, s.settings.Campaign.WarnKB, s.settings.Campaign.ClipKB),
	}
	s.log.Info("email generated",
		zap.String("type", string(eff.DocumentType)),
		zap.Stringer("mode", mode),
		zap.Float64("kb", e.SizeKB),
		zap.String("level", string(e.Level)),
		zap.Duration("took", s.now().Sub(start)))
	return e, nil
}

// UTMFor collects the campaign parameters of d.
func UTMFor(d form.Data) document.UTM {
	return document.UTM{
		Source:       d.UTMSource,
		Medium:       d.UTMMedium,
		Campaign:     d.UTMCampaign,
		Content:      d.UTMContent,
		DocumentType: string(d.DocumentType),
	}
}

// ErrNoStore is returned by operations that need persisted lists.
var ErrNoStore = errors.New("compose: no store configured")
