// Package ai drafts subjects, preheaders, bodies and quote copy, extracts
// form fields from documents and generates media through a generative AI
// service.
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/prose"
)

// ErrNoContent wraps every failure to produce usable output: transport
// errors, empty responses and malformed JSON alike.
var ErrNoContent = errors.New("ai: could not generate content")

// Kind selects the extraction performed by Collaborator.Extract.
type Kind string

const (
	KindQuote     Kind = "quote"
	KindAutoQuote Kind = "auto-quote"
	KindRenewal   Kind = "renewal"
	KindNewPolicy Kind = "new-policy"
	KindReceipt   Kind = "receipt"
	KindChange    Kind = "change"
	// KindPrompt turns any policy document into a body prompt plus names.
	KindPrompt Kind = "prompt"
)

// Kinds lists every extraction kind.
var Kinds = []Kind{KindQuote, KindAutoQuote, KindRenewal, KindNewPolicy, KindReceipt, KindChange, KindPrompt}

// Document is the input of an extraction: file bytes with their MIME type,
// or pasted text when Data is empty.
type Document struct {
	Data     []byte
	MIMEType string
	Text     string
}

// NewDocument guesses the MIME type of an uploaded policy document. Plain
// text comes back as pasted Text.
func NewDocument(path string, data []byte) Document {
	var mt string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		mt = "application/pdf"
	case ".txt", ".md", ".csv":
	case ".png":
		mt = "image/png"
	case ".jpg", ".jpeg":
		mt = "image/jpeg"
	default:
		mt = http.DetectContentType(data)
		if strings.HasPrefix(mt, "text/plain") {
			mt = ""
		}
		if i := strings.Index(mt, ";"); i >= 0 {
			mt = mt[:i]
		}
	}
	if mt == "" {
		return Document{Text: string(data)}
	}
	return Document{Data: data, MIMEType: mt}
}

// Opportunity is an up-sell or cross-sell suggestion. PromptToInject is the
// client-facing sentence woven into the email.
type Opportunity struct {
	Title          string `json:"title"`
	SuggestionText string `json:"suggestionText"`
	PromptToInject string `json:"promptToInject"`
}

// Image is generated image data.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURL embeds the image in a data: URL usable as a hero source.
func (i Image) DataURL() string {
	mime := i.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Collaborator is the generative service the composer talks to.
type Collaborator interface {
	SubjectLines(ctx context.Context, d form.Data) ([]string, error)
	Preheaders(ctx context.Context, d form.Data) ([]string, error)
	EmailBody(ctx context.Context, d form.Data, agent config.Agent) (string, error)
	HomeQuoteProse(ctx context.Context, d form.Data) (prose.Prose, error)
	AutoQuoteProse(ctx context.Context, d form.Data) (prose.Prose, error)
	HeroImage(ctx context.Context, prompt string) (Image, error)
	// Video blocks until the video is ready and returns its download URI.
	Video(ctx context.Context, prompt string, progress func(string)) (string, error)
	Extract(ctx context.Context, kind Kind, doc Document) (map[string]string, error)
	Cancellations(ctx context.Context, doc Document) ([]form.Cancellation, error)
	Opportunities(ctx context.Context, d form.Data) ([]Opportunity, error)
	RateChangeExplanation(ctx context.Context, previous, current string) (string, error)
	SMS(ctx context.Context, idea, signOff string) (string, error)
}
