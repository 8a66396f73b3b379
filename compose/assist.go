package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/billlayne/mailcomposer/ai"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/media"
)

// ErrNoExtraction means the document type has no document reader.
var ErrNoExtraction = errors.New("compose: nothing to extract for this email type")

// ExtractionKind picks the reader for the form's document type.
func ExtractionKind(d form.Data) (ai.Kind, bool) {
	switch {
	case d.IsQuote("Home"):
		return ai.KindQuote, true
	case d.IsQuote("Auto"):
		return ai.KindAutoQuote, true
	case d.DocumentType == form.PolicyRenewal:
		return ai.KindRenewal, true
	case d.DocumentType == form.NewPolicyWelcome:
		return ai.KindNewPolicy, true
	case d.DocumentType == form.Receipt:
		return ai.KindReceipt, true
	case d.DocumentType == form.ChangeRequest:
		return ai.KindChange, true
	case form.NeedsPrompt(d.DocumentType):
		return ai.KindPrompt, true
	}
	return "", false
}

// Extract reads doc with the reader for d's type and fills the form. Blank
// extracted values keep what the form already had.
func (s *Service) Extract(ctx context.Context, d form.Data, doc ai.Document) (form.Data, error) {
	kind, ok := ExtractionKind(d)
	if !ok {
		return d, fmt.Errorf("%w: %s", ErrNoExtraction, d.DocumentType)
	}
	fields, err := s.ai.Extract(ctx, kind, doc)
	if err != nil {
		return d, err
	}
	if len(fields) == 0 {
		return d, fmt.Errorf("%w: %s: no fields found", ai.ErrNoContent, kind)
	}
	out, err := d.Apply(fields)
	if err != nil {
		return d, err
	}
	s.log.Info("fields extracted", zap.String("kind", string(kind)), zap.Int("fields", len(fields)))
	return out.WithMonthlyPremium(), nil
}

// Cancellations lists the rows of a pending cancellations report.
func (s *Service) Cancellations(ctx context.Context, doc ai.Document) ([]form.Cancellation, error) {
	rows, err := s.ai.Cancellations(ctx, doc)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no records in report", ai.ErrNoContent)
	}
	return rows, nil
}

func (s *Service) SubjectLines(ctx context.Context, d form.Data) ([]string, error) {
	return nonEmpty(s.ai.SubjectLines(ctx, d))
}

func (s *Service) Preheaders(ctx context.Context, d form.Data) ([]string, error) {
	return nonEmpty(s.ai.Preheaders(ctx, d))
}

func nonEmpty(list []string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	out := list[:0:0]
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no suggestions", ai.ErrNoContent)
	}
	return out, nil
}

func (s *Service) Opportunities(ctx context.Context, d form.Data) ([]ai.Opportunity, error) {
	return s.ai.Opportunities(ctx, d)
}

// RateExplanation asks for a paragraph about the change from the previous
// premium to the quoted one and stores it on the form.
func (s *Service) RateExplanation(ctx context.Context, d form.Data) (form.Data, error) {
	if d.QuoteAmount == "" || d.PreviousQuoteAmount == "" {
		return d, fmt.Errorf("%w: please enter both current and previous premiums", form.ErrMissingField)
	}
	text, err := s.ai.RateChangeExplanation(ctx, d.PreviousQuoteAmount, d.QuoteAmount)
	if err != nil {
		return d, err
	}
	d.RenewalRateExplanation = strings.TrimSpace(text)
	return d, nil
}

// HeroFromPrompt generates a hero image and embeds it in the form.
func (s *Service) HeroFromPrompt(ctx context.Context, d form.Data, prompt string) (form.Data, error) {
	img, err := s.ai.HeroImage(ctx, prompt)
	if err != nil {
		return d, err
	}
	d.HeroURL = img.DataURL()
	if d.HeroAlt == "" {
		d.HeroAlt = prompt
	}
	return d, nil
}

// HeroFromFile embeds an uploaded image, scaled to email width.
func (s *Service) HeroFromFile(d form.Data, data []byte) (form.Data, error) {
	url, err := media.HeroDataURL(data, media.MaxHeroWidth)
	if err != nil {
		return d, err
	}
	d.HeroURL = url
	return d, nil
}

// Video generates a video and returns its download URI.
func (s *Service) Video(ctx context.Context, prompt string, progress func(string)) (string, error) {
	return s.ai.Video(ctx, prompt, progress)
}

// VideoHero makes poster, with a play button, the hero image of d and
// links it to the video.
func (s *Service) VideoHero(d form.Data, poster []byte, prompt, videoURI string) (form.Data, error) {
	thumb, err := media.VideoThumbnail(poster)
	if err != nil {
		return d, err
	}
	d.HeroURL = thumb
	d.HeroAlt = "Video thumbnail: " + prompt
	d.HeroLink = media.VideoLink(s.settings.AI.VideoPlayerURL, videoURI)
	return d, nil
}

// SMS drafts a text message signed by the agent.
func (s *Service) SMS(ctx context.Context, idea, agentID string) (string, error) {
	signOff := s.settings.Agency.Name
	if a := s.settings.Agent(agentID); a.Name != "" && agentID != "" {
		signOff = a.Name + ", " + s.settings.Agency.Name
	}
	return s.ai.SMS(ctx, idea, signOff)
}
