package ai

import (
	"context"
	"sync"

	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/prose"
)

// Fake is a canned Collaborator for tests and offline rendering. Err, when
// set, is returned by every call.
type Fake struct {
	Subjects      []string
	PreheaderList []string
	Body          string
	Prose         prose.Prose
	Image         Image
	VideoURI      string
	Fields        map[string]string
	Rows          []form.Cancellation
	Ideas         []Opportunity
	Explanation   string
	Text          string
	Err           error

	mu    sync.Mutex
	calls []string
}

var _ Collaborator = (*Fake)(nil)

func (f *Fake) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.Err
}

// Calls returns the names of the methods called so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) SubjectLines(context.Context, form.Data) ([]string, error) {
	return f.Subjects, f.record("SubjectLines")
}

func (f *Fake) Preheaders(context.Context, form.Data) ([]string, error) {
	return f.PreheaderList, f.record("Preheaders")
}

func (f *Fake) EmailBody(context.Context, form.Data, config.Agent) (string, error) {
	return f.Body, f.record("EmailBody")
}

func (f *Fake) HomeQuoteProse(context.Context, form.Data) (prose.Prose, error) {
	return f.Prose, f.record("HomeQuoteProse")
}

func (f *Fake) AutoQuoteProse(context.Context, form.Data) (prose.Prose, error) {
	return f.Prose, f.record("AutoQuoteProse")
}

func (f *Fake) HeroImage(context.Context, string) (Image, error) {
	return f.Image, f.record("HeroImage")
}

func (f *Fake) Video(_ context.Context, _ string, progress func(string)) (string, error) {
	if progress != nil {
		progress("Video ready.")
	}
	return f.VideoURI, f.record("Video")
}

func (f *Fake) Extract(_ context.Context, kind Kind, _ Document) (map[string]string, error) {
	if err := f.record("Extract"); err != nil {
		return nil, err
	}
	return normalizeExtraction(kind, f.Fields), nil
}

func (f *Fake) Cancellations(context.Context, Document) ([]form.Cancellation, error) {
	return f.Rows, f.record("Cancellations")
}

func (f *Fake) Opportunities(context.Context, form.Data) ([]Opportunity, error) {
	return f.Ideas, f.record("Opportunities")
}

func (f *Fake) RateChangeExplanation(context.Context, string, string) (string, error) {
	return f.Explanation, f.record("RateChangeExplanation")
}

func (f *Fake) SMS(context.Context, string, string) (string, error) {
	return f.Text, f.record("SMS")
}
