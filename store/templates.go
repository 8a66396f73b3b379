package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/billlayne/mailcomposer/form"
)

// Template is a saved form snapshot. Data holds only the fields that were
// saved; loading lays them over fresh defaults.
type Template struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	SavedAt int64           `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

// DefaultTemplates are offered when nothing has been saved yet.
func DefaultTemplates(agencyShort, logoURL string, savedAt int64) []Template {
	raw := func(v map[string]string) json.RawMessage {
		b, _ := json.Marshal(v)
		return b
	}
	return []Template{
		{ID: "default-auto-docs", Name: "Auto Proof of Insurance", SavedAt: savedAt, Data: raw(map[string]string{
			"documentType":   string(form.AutoDocumentation),
			"emailSubject":   "Your Auto Ins Docs from " + agencyShort,
			"emailPreheader": "Here are your requested auto insurance documents. Please keep a copy for your records.",
			"tone":           "Direct",
		})},
		{ID: "default-home-docs", Name: "Home Insurance Declaration", SavedAt: savedAt, Data: raw(map[string]string{
			"documentType":   string(form.HomeDocumentation),
			"emailSubject":   "Your Home Ins Docs from " + agencyShort,
			"emailPreheader": "Your homeowner's policy declaration page is attached. Please review and contact us with questions.",
			"tone":           "Warm",
		})},
		{ID: "default-quote-followup", Name: "Insurance Quote Follow-up", SavedAt: savedAt, Data: raw(map[string]string{
			"documentType":   string(form.InsuranceQuote),
			"quoteType":      "Home",
			"emailSubject":   "Your Insurance Quote from " + agencyShort,
			"emailPreheader": "Your personalized insurance quote is ready! See the details inside.",
			"tone":           "Warm",
		})},
		{ID: "default-newsletter-promo", Name: "Newsletter / Promotion", SavedAt: savedAt, Data: raw(map[string]string{
			"documentType":   string(form.Newsletter),
			"emailSubject":   "News & Offers from " + agencyShort,
			"emailPreheader": "Check out our latest tips, updates, and special offers!",
			"customPrompt":   "Write a short newsletter about the importance of reviewing insurance coverage annually. Mention that our team is available for a free policy review.",
			"tone":           "Warm",
			"heroAlt":        "Bill Layne Insurance Agency logo",
			"heroUrl":        logoURL,
		})},
	}
}

// Templates lists saved templates, or the defaults when none were ever
// saved.
func (s *Store) Templates(ctx context.Context) ([]Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templates(ctx)
}

func (s *Store) templates(ctx context.Context) ([]Template, error) {
	var ts []Template
	found, err := s.readCollection(ctx, TemplatesKey, &ts)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultTemplates(s.agencyShort, s.logoURL, s.stamp()), nil
	}
	return ts, nil
}

// Template returns the template with the given id.
func (s *Store) Template(ctx context.Context, id string) (Template, error) {
	ts, err := s.Templates(ctx)
	if err != nil {
		return Template{}, err
	}
	for _, t := range ts {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("template %q: %w", id, ErrNotFound)
}

// SaveTemplate stores d under name. With clearCustomer the customer fields
// are reset first so the template can be reused for anyone.
func (s *Store) SaveTemplate(ctx context.Context, name string, d form.Data, clearCustomer bool) (Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Template{}, fmt.Errorf("template name: %w", form.ErrMissingField)
	}
	if clearCustomer {
		d = form.StripCustomerData(d, s.agencyShort)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return Template{}, fmt.Errorf("store: encode template: %w", err)
	}
	t := Template{ID: "template-" + uuid.NewString(), Name: name, SavedAt: s.stamp(), Data: data}

	s.mu.Lock()
	defer s.mu.Unlock()
	ts, err := s.templates(ctx)
	if err != nil {
		return Template{}, err
	}
	if err := s.writeCollection(ctx, TemplatesKey, append(ts, t)); err != nil {
		return Template{}, err
	}
	s.log.Info("template saved", zap.String("id", t.ID), zap.String("name", name), zap.Bool("cleared", clearCustomer))
	return t, nil
}

// LoadTemplate returns the form a template describes: defaults, then the
// current recipient email, then the template's saved fields.
func (s *Store) LoadTemplate(ctx context.Context, id string, current form.Data) (form.Data, error) {
	t, err := s.Template(ctx, id)
	if err != nil {
		return current, err
	}
	base := form.Defaults()
	base.RecipientEmail = current.RecipientEmail
	d, err := base.Overlay(t.Data)
	if err != nil {
		return current, fmt.Errorf("template %q: %w", id, err)
	}
	return d, nil
}

// DeleteTemplate removes a template by id.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, err := s.templates(ctx)
	if err != nil {
		return err
	}
	kept := ts[:0]
	for _, t := range ts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(ts) {
		return fmt.Errorf("template %q: %w", id, ErrNotFound)
	}
	return s.writeCollection(ctx, TemplatesKey, kept)
}

// ExportTemplates writes every template as an indented JSON array.
func (s *Store) ExportTemplates(ctx context.Context, w io.Writer) (int, error) {
	ts, err := s.Templates(ctx)
	if err != nil {
		return 0, err
	}
	return len(ts), exportJSON(w, ts)
}

// ImportTemplates merges the templates in r, skipping ids that already
// exist. The whole file is rejected when it is not an array of objects
// with id and name. It returns the number of templates added.
func (s *Store) ImportTemplates(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("store: read import: %w", err)
	}
	if err := checkImport(data); err != nil {
		return 0, err
	}
	var incoming []Template
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ts, err := s.templates(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(ts))
	for _, t := range ts {
		seen[t.ID] = true
	}
	added := 0
	for _, t := range incoming {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		ts = append(ts, t)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.writeCollection(ctx, TemplatesKey, ts); err != nil {
		return 0, err
	}
	s.log.Info("templates imported", zap.Int("added", added))
	return added, nil
}

func exportJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("store: export: %w", err)
	}
	return nil
}
