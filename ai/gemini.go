package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/prose"
)

// Gemini implements Collaborator with Google's Gemini, Imagen and Veo
// models.
type Gemini struct {
	client *genai.Client
	cfg    config.AI
	agency config.Agency
	log    *zap.Logger
}

var _ Collaborator = (*Gemini)(nil)

// NewGemini creates a client for the Gemini API.
func NewGemini(ctx context.Context, cfg config.AI, agency config.Agency, log *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ai: GEMINI_API_KEY is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai: create client: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{client: client, cfg: cfg, agency: agency, log: log}, nil
}

func (g *Gemini) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.cfg.Timeout)
}

// generate sends one request to the text model and returns the trimmed
// response text.
func (g *Gemini) generate(ctx context.Context, op string, contents []*genai.Content, system string, schema *genai.Schema) (string, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = schema
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.TextModel, contents, cfg)
	if err != nil {
		g.log.Error("generate failed", zap.String("op", op), zap.Error(err))
		return "", fmt.Errorf("%w: %s: %v", ErrNoContent, op, err)
	}
	text := strings.TrimSpace(resp.Text())
	g.log.Debug("generated", zap.String("op", op), zap.Duration("took", time.Since(start)), zap.Int("chars", len(text)))
	if text == "" {
		return "", fmt.Errorf("%w: %s: empty response", ErrNoContent, op)
	}
	return text, nil
}

func (g *Gemini) generateJSON(ctx context.Context, op string, contents []*genai.Content, system string, schema *genai.Schema, out any) error {
	text, err := g.generate(ctx, op, contents, system, schema)
	if err != nil {
		return err
	}
	return decodeJSON(op, text, out)
}

func textContents(prompt string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
}

// documentContents pairs the prompt with the file, or appends pasted text
// to the prompt when there is no file.
func documentContents(kind Kind, doc Document) ([]*genai.Content, error) {
	if len(doc.Data) == 0 {
		if strings.TrimSpace(doc.Text) == "" {
			return nil, fmt.Errorf("%w: %s: empty document", ErrNoContent, kind)
		}
		p, err := ExtractPrompt(kind, doc.Text)
		if err != nil {
			return nil, err
		}
		return textContents(p), nil
	}
	p, err := ExtractPrompt(kind, "")
	if err != nil {
		return nil, err
	}
	mime := doc.MIMEType
	if mime == "" {
		mime = "application/pdf"
	}
	parts := []*genai.Part{genai.NewPartFromText(p), genai.NewPartFromBytes(doc.Data, mime)}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}

func (g *Gemini) SubjectLines(ctx context.Context, d form.Data) ([]string, error) {
	p := formPrompt(d, config.Agent{}, g.agency)
	prompt, err := render("subjects", p)
	if err != nil {
		return nil, err
	}
	system, err := render("subjects_system", p)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := g.generateJSON(ctx, "subjects", textContents(prompt), system, stringArraySchema(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gemini) Preheaders(ctx context.Context, d form.Data) ([]string, error) {
	p := formPrompt(d, config.Agent{}, g.agency)
	prompt, err := render("preheaders", p)
	if err != nil {
		return nil, err
	}
	system, err := render("preheaders_system", p)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := g.generateJSON(ctx, "preheaders", textContents(prompt), system, stringArraySchema(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmailBody returns an HTML fragment. Markdown code fences around it are
// removed.
func (g *Gemini) EmailBody(ctx context.Context, d form.Data, agent config.Agent) (string, error) {
	prompt, err := BodyPrompt(d, agent, g.agency)
	if err != nil {
		return "", err
	}
	system, err := render("system", formPrompt(d, agent, g.agency))
	if err != nil {
		return "", err
	}
	text, err := g.generate(ctx, "body", textContents(prompt), system, nil)
	if err != nil {
		return "", err
	}
	return stripFence(text), nil
}

func (g *Gemini) quoteProse(ctx context.Context, op, tmpl string, d form.Data) (prose.Prose, error) {
	p := formPrompt(d.WithMonthlyPremium(), config.Agent{}, g.agency)
	prompt, err := render(tmpl, p)
	if err != nil {
		return prose.Prose{}, err
	}
	system, err := render("copywriter_system", p)
	if err != nil {
		return prose.Prose{}, err
	}
	var out prose.Prose
	if err := g.generateJSON(ctx, op, textContents(prompt), system, objectSchema([]string{"greeting", "intro", "ctaText"}, nil), &out); err != nil {
		return prose.Prose{}, err
	}
	return out, nil
}

func (g *Gemini) HomeQuoteProse(ctx context.Context, d form.Data) (prose.Prose, error) {
	return g.quoteProse(ctx, "home-prose", "home_prose", d)
}

func (g *Gemini) AutoQuoteProse(ctx context.Context, d form.Data) (prose.Prose, error) {
	return g.quoteProse(ctx, "auto-prose", "auto_prose", d)
}

// HeroImage generates one 16:9 JPEG.
func (g *Gemini) HeroImage(ctx context.Context, prompt string) (Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return Image{}, fmt.Errorf("hero prompt: %w", form.ErrMissingField)
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	resp, err := g.client.Models.GenerateImages(ctx, g.cfg.ImageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "16:9",
	})
	if err != nil {
		g.log.Error("image generation failed", zap.Error(err))
		return Image{}, fmt.Errorf("%w: hero image: %v", ErrNoContent, err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return Image{}, fmt.Errorf("%w: hero image: no image returned", ErrNoContent)
	}
	img := resp.GeneratedImages[0].Image
	return Image{Data: img.ImageBytes, MIMEType: img.MIMEType}, nil
}

// Video starts a Veo job and polls it until it finishes, ctx is cancelled
// or the configured maximum duration passes.
func (g *Gemini) Video(ctx context.Context, prompt string, progress func(string)) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("video prompt: %w", form.ErrMissingField)
	}
	report := func(s string) {
		if progress != nil {
			progress(s)
		}
	}
	report("Initiating video generation with Veo...")
	op, err := g.client.Models.GenerateVideos(ctx, g.cfg.VideoModel, prompt, nil, &genai.GenerateVideosConfig{NumberOfVideos: 1})
	if err != nil {
		g.log.Error("video generation failed", zap.Error(err))
		return "", fmt.Errorf("%w: video: %v", ErrNoContent, err)
	}
	report("Video is in the queue. This may take a few minutes...")

	p := Poller{Interval: g.cfg.VideoPollInterval, Max: g.cfg.VideoMaxDuration, Progress: report}
	return p.Wait(ctx, &veoJob{client: g.client, op: op})
}

type veoJob struct {
	client *genai.Client
	op     *genai.GenerateVideosOperation
}

func (j *veoJob) Poll(ctx context.Context) (bool, string, error) {
	if !j.op.Done {
		op, err := j.client.Operations.GetVideosOperation(ctx, j.op, nil)
		if err != nil {
			return false, "", err
		}
		j.op = op
	}
	if !j.op.Done {
		return false, "", nil
	}
	if len(j.op.Error) > 0 {
		return true, "", fmt.Errorf("operation failed: %v", j.op.Error)
	}
	if j.op.Response == nil || len(j.op.Response.GeneratedVideos) == 0 || j.op.Response.GeneratedVideos[0].Video == nil {
		return true, "", nil
	}
	return true, j.op.Response.GeneratedVideos[0].Video.URI, nil
}

// Extract pulls form fields out of doc. Only the fields defined for kind
// are returned.
func (g *Gemini) Extract(ctx context.Context, kind Kind, doc Document) (map[string]string, error) {
	fields, ok := extractFields[kind]
	if !ok {
		return nil, fmt.Errorf("ai: unknown extraction %q", kind)
	}
	contents, err := documentContents(kind, doc)
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := g.generateJSON(ctx, "extract-"+string(kind), contents, "", objectSchema(fields.fields, fields.requiredFields()), &raw); err != nil {
		return nil, err
	}
	return normalizeExtraction(kind, raw), nil
}

// Cancellations reads every row of a pending cancellations report.
func (g *Gemini) Cancellations(ctx context.Context, doc Document) ([]form.Cancellation, error) {
	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("%w: cancellations: empty document", ErrNoContent)
	}
	prompt, err := render("cancellations", nil)
	if err != nil {
		return nil, err
	}
	mime := doc.MIMEType
	if mime == "" {
		mime = "application/pdf"
	}
	contents := []*genai.Content{genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(prompt), genai.NewPartFromBytes(doc.Data, mime),
	}, genai.RoleUser)}
	fields := []string{"policyNumber", "namedInsured", "cancellationDate", "amountDue"}
	var out []form.Cancellation
	if err := g.generateJSON(ctx, "cancellations", contents, "", arraySchema(objectSchema(fields, nil)), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gemini) Opportunities(ctx context.Context, d form.Data) ([]Opportunity, error) {
	p := formPrompt(d, config.Agent{}, g.agency)
	prompt, err := render("opportunities", p)
	if err != nil {
		return nil, err
	}
	system, err := render("advisor_system", p)
	if err != nil {
		return nil, err
	}
	schema := arraySchema(objectSchema([]string{"title", "suggestionText", "promptToInject"}, nil))
	var out []Opportunity
	if err := g.generateJSON(ctx, "opportunities", textContents(prompt), system, schema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gemini) RateChangeExplanation(ctx context.Context, previous, current string) (string, error) {
	p := promptData{Previous: previous, Current: current}
	prompt, err := render("rate", p)
	if err != nil {
		return "", err
	}
	system, err := render("rate_system", p)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, "rate-explanation", textContents(prompt), system, nil)
}

func (g *Gemini) SMS(ctx context.Context, idea, signOff string) (string, error) {
	if strings.TrimSpace(idea) == "" {
		return "", fmt.Errorf("sms idea: %w", form.ErrMissingField)
	}
	if signOff == "" {
		signOff = g.agency.Name
	}
	p := promptData{Idea: idea, SignOff: signOff}
	prompt, err := render("sms", p)
	if err != nil {
		return "", err
	}
	system, err := render("sms_system", p)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, "sms", textContents(prompt), system, nil)
}
