package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/billlayne/mailcomposer/ai"
	"github.com/billlayne/mailcomposer/bulk"
	"github.com/billlayne/mailcomposer/calendar"
	"github.com/billlayne/mailcomposer/compose"
	"github.com/billlayne/mailcomposer/document"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/gmail"
	"github.com/billlayne/mailcomposer/preview"
	"github.com/billlayne/mailcomposer/tui"
)

var (
	formPath string
	outDir   string
	bulkMode bool
	listName string
	docPath  string
	prompt   string
	poster   string
	download string
	idea     string
	agentID  string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive terminal composer",
	RunE:  runTUI,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Generate an email from a form file and save the HTML",
	Long: `Generates the email described by a YAML form file and writes it to the
output directory as {policyHolder}-{product}.html.

Example:
  composer render -f quote.yaml -o out/`,
	RunE: runRender,
}

var icsCmd = &cobra.Command{
	Use:   "ics",
	Short: "Write the calendar invite for a policy renewal",
	RunE:  runICS,
}

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Render a bulk email and personalize it for a recipient list",
	Long: `Renders the form in bulk mode, substitutes each recipient's names and
writes the HTML plus <list>_campaign_data.csv for the bulk-mail tool.`,
	RunE: runCampaign,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve the generated email over local HTTP",
	Long: `Generates the email and serves it until interrupted.

  /          the document (?dark=1 forces dark mode)
  /text      text rendition
  /size      size and clipping level
  /rows/{n}  personalized campaign rows (with --list)`,
	RunE: runPreview,
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate the email and leave it in Gmail drafts",
	RunE:  runDraft,
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fill a form from a policy document",
	Long: `Reads a quote, declaration page, receipt or change document and prints
the form with the extracted fields as YAML. For late payment notices the
document is read as a cancellation report and every row is printed.`,
	RunE: runExtract,
}

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Generate a short video and optionally use it as the email hero",
	RunE:  runVideo,
}

var smsCmd = &cobra.Command{
	Use:   "sms",
	Short: "Write a short client text message from an idea",
	RunE:  runSMS,
}

func init() {
	for _, c := range []*cobra.Command{renderCmd, icsCmd, campaignCmd, previewCmd, draftCmd, extractCmd, videoCmd} {
		c.Flags().StringVarP(&formPath, "form", "f", "", "Form YAML file (- for stdin)")
	}
	for _, c := range []*cobra.Command{renderCmd, icsCmd, campaignCmd, videoCmd} {
		c.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default from settings)")
	}
	renderCmd.Flags().BoolVar(&bulkMode, "bulk", false, "Render with recipient placeholders")
	campaignCmd.Flags().StringVar(&listName, "list", "", "Recipient list name or id (required)")
	campaignCmd.MarkFlagRequired("list")
	previewCmd.Flags().StringVar(&listName, "list", "", "Personalize for this recipient list")

	extractCmd.Flags().StringVar(&docPath, "doc", "", "Document to read (required)")
	extractCmd.MarkFlagRequired("doc")

	videoCmd.Flags().StringVar(&prompt, "prompt", "", "What the video should show (required)")
	videoCmd.Flags().StringVar(&poster, "poster", "", "Poster image for the email thumbnail")
	videoCmd.Flags().StringVar(&download, "download", "", "Also save the video file under this name")
	videoCmd.MarkFlagRequired("prompt")

	smsCmd.Flags().StringVar(&idea, "idea", "", "What the text should say (required)")
	smsCmd.Flags().StringVar(&agentID, "agent", "", "Agent signing the text (default from settings)")
	smsCmd.MarkFlagRequired("idea")
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx, true, "")
	if err != nil {
		return err
	}
	defer e.close()

	deps := tui.Deps{
		Compose: e.compose,
		Store:   e.store,
		Out:     e.out,
		Config:  cfgManager,
		Log:     logger.Named("tui"),
	}

	if addr := e.settings.Preview.Addr; addr != "" {
		srv := preview.NewServer(logger.Named("preview"))
		deps.Preview = srv
		go func() {
			if err := srv.Serve(ctx, addr, nil); err != nil {
				logger.Warn("preview server stopped", zap.Error(err))
			}
		}()
	}

	// The terminal belongs to the UI, so drafts are only offered when a
	// token has already been saved by "composer draft".
	if g, err := gmail.NewClient(ctx, e.settings.Gmail, gmail.Prompt{}, logger.Named("gmail")); err == nil {
		deps.Drafts = g
	} else {
		logger.Info("gmail drafts disabled", zap.Error(err))
	}

	d := form.Defaults()
	d.AgentID = e.settings.DefaultAgentID
	return tui.NewApp(deps, d).Run(ctx)
}

func generate(cmd *cobra.Command, e *env, mode compose.Mode) (compose.Email, error) {
	d, err := loadForm(formPath)
	if err != nil {
		return compose.Email{}, err
	}
	return e.compose.Generate(cmd.Context(), d, mode)
}

func runRender(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context(), true, outDir)
	if err != nil {
		return err
	}
	defer e.close()

	mode := compose.Single
	if bulkMode {
		mode = compose.Bulk
	}
	email, err := generate(cmd, e, mode)
	if err != nil {
		return err
	}
	path, err := e.out.WriteString(email.Filename, email.HTML)
	if err != nil {
		return err
	}
	printEmail(cmd.OutOrStdout(), email, path)
	return nil
}

func printEmail(w io.Writer, email compose.Email, path string) {
	fmt.Fprintf(w, "Subject:   %s\n", email.Subject)
	fmt.Fprintf(w, "Preheader: %s\n", email.Preheader)
	fmt.Fprintf(w, "Size:      %.1f KB (%s)\n", email.SizeKB, email.Level)
	if email.Level == document.LevelClip {
		fmt.Fprintln(w, "Warning:   Gmail may clip this message")
	}
	fmt.Fprintf(w, "Saved:     %s\n", path)
	if email.Form.RecipientEmail != "" {
		fmt.Fprintf(w, "Gmail:     %s\n", gmail.ComposeURL(email.Form.RecipientEmail, email.Subject))
	}
}

func runICS(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context(), false, outDir)
	if err != nil {
		return err
	}
	defer e.close()

	d, err := loadForm(formPath)
	if err != nil {
		return err
	}
	svc := compose.New(e.settings, nil, e.store, compose.WithLogger(logger.Named("compose")))
	ics, err := svc.Invite(d)
	if err != nil {
		return err
	}
	path, err := e.out.WriteString(calendar.Filename, ics)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Saved", path)
	return nil
}

func runCampaign(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context(), true, outDir)
	if err != nil {
		return err
	}
	defer e.close()

	d, err := loadForm(formPath)
	if err != nil {
		return err
	}
	c, err := e.compose.Campaign(cmd.Context(), d, listName)
	if err != nil {
		return err
	}
	htmlPath, err := e.out.WriteString(c.Email.Filename, c.Email.HTML)
	if err != nil {
		return err
	}
	csvPath, err := e.out.Write(c.Filename(), func(w io.Writer) error {
		return bulk.WriteCSV(w, c.Rows)
	})
	if err != nil {
		return err
	}
	printEmail(cmd.OutOrStdout(), c.Email, htmlPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Rows:      %d (%s)\n", len(c.Rows), csvPath)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx, true, "")
	if err != nil {
		return err
	}
	defer e.close()

	var page preview.Page
	if listName != "" {
		d, err := loadForm(formPath)
		if err != nil {
			return err
		}
		c, err := e.compose.Campaign(ctx, d, listName)
		if err != nil {
			return err
		}
		page = preview.Page{Subject: c.Email.Subject, HTML: c.Email.HTML, Rows: c.Rows}
	} else {
		email, err := generate(cmd, e, compose.Single)
		if err != nil {
			return err
		}
		page = preview.Page{Subject: email.Subject, HTML: email.HTML}
	}

	srv := preview.NewServer(logger.Named("preview"))
	srv.Set(page)
	return srv.Serve(ctx, e.settings.Preview.Addr, func(addr net.Addr) {
		fmt.Fprintf(cmd.OutOrStdout(), "Preview at http://%s/ (light) and http://%s/?dark=1 (dark). Ctrl+C to stop.\n", addr, addr)
	})
}

func runDraft(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx, true, "")
	if err != nil {
		return err
	}
	defer e.close()

	email, err := generate(cmd, e, compose.Single)
	if err != nil {
		return err
	}
	if email.Form.RecipientEmail == "" {
		return fmt.Errorf("%w: recipientEmail is needed for a draft", form.ErrMissingField)
	}
	client, err := gmail.NewClient(ctx, e.settings.Gmail, gmail.Prompt{In: os.Stdin, Out: cmd.ErrOrStderr()}, logger.Named("gmail"))
	if err != nil {
		return err
	}

	text, _ := document.PlainText(email.HTML)
	draft := gmail.Draft{To: email.Form.RecipientEmail, Subject: email.Subject, HTML: email.HTML, Text: text}
	ics, err := e.compose.Invite(email.Form)
	switch {
	case errors.Is(err, compose.ErrNoInvite):
	case err != nil:
		return err
	default:
		draft.Attachments = append(draft.Attachments, gmail.Attachment{
			Filename: calendar.Filename,
			MIMEType: "text/calendar; charset=UTF-8",
			Data:     []byte(ics),
		})
	}
	id, err := client.CreateDraft(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Draft %s created for %s\n", id, draft.To)
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx, true, "")
	if err != nil {
		return err
	}
	defer e.close()

	d, err := loadForm(formPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(docPath)
	if err != nil {
		return err
	}
	doc := ai.NewDocument(docPath, data)

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	if d.DocumentType == form.LatePaymentNotice {
		rows, err := e.compose.Cancellations(ctx, doc)
		if err != nil {
			return err
		}
		forms := make([]form.Data, len(rows))
		for i, r := range rows {
			forms[i] = form.ApplyCancellation(d, r)
		}
		return enc.Encode(forms)
	}
	filled, err := e.compose.Extract(ctx, d, doc)
	if err != nil {
		return err
	}
	return enc.Encode(filled)
}

func runVideo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx, true, outDir)
	if err != nil {
		return err
	}
	defer e.close()

	uri, err := tui.RunVideo(ctx, prompt, func(ctx context.Context, progress func(string)) (string, error) {
		return e.compose.Video(ctx, prompt, progress)
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Video:", uri)

	if download != "" {
		var n int64
		path, err := e.out.Write(download, func(w io.Writer) error {
			var err error
			n, err = ai.DownloadVideo(ctx, http.DefaultClient, uri, e.settings.AI.APIKey, w)
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, n)
	}

	if poster == "" || formPath == "" {
		return nil
	}
	img, err := os.ReadFile(poster)
	if err != nil {
		return err
	}
	d, err := loadForm(formPath)
	if err != nil {
		return err
	}
	d, err = e.compose.VideoHero(d, img, prompt, uri)
	if err != nil {
		return err
	}
	email, err := e.compose.Generate(ctx, d, compose.Single)
	if err != nil {
		return err
	}
	path, err := e.out.WriteString(email.Filename, email.HTML)
	if err != nil {
		return err
	}
	printEmail(cmd.OutOrStdout(), email, path)
	return nil
}

func runSMS(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context(), true, "")
	if err != nil {
		return err
	}
	defer e.close()

	id := agentID
	if id == "" {
		id = e.settings.DefaultAgentID
	}
	text, err := e.compose.SMS(cmd.Context(), idea, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
