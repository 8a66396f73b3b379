// Package tui is the interactive terminal composer: a tview form with a
// text preview, template and recipient-list pages, plus a bubbletea view
// that follows long video generations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/billlayne/mailcomposer/ai"
	"github.com/billlayne/mailcomposer/artifact"
	"github.com/billlayne/mailcomposer/bulk"
	"github.com/billlayne/mailcomposer/calendar"
	"github.com/billlayne/mailcomposer/compose"
	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/document"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/gmail"
	"github.com/billlayne/mailcomposer/preview"
	"github.com/billlayne/mailcomposer/store"
)

const toastDuration = 4 * time.Second

// DraftCreator leaves a message in the Gmail drafts folder.
type DraftCreator interface {
	CreateDraft(ctx context.Context, d gmail.Draft) (string, error)
}

// Deps are the services the app drives. Config, Preview, Drafts and
// Clipboard are optional.
type Deps struct {
	Compose   *compose.Service
	Store     *store.Store
	Out       *artifact.Dir
	Config    *config.Manager
	Preview   *preview.Server
	Drafts    DraftCreator
	Clipboard func(string) error
	Log       *zap.Logger
}

type App struct {
	*tview.Application
	deps Deps
	log  *zap.Logger
	ctx  context.Context

	rootPages   *tview.Pages
	form        *tview.Form
	previewPane *PreviewPane
	templates   *TemplatesView
	lists       *ListsView
	statusBar   *tview.TextView

	data     form.Data
	mode     compose.Mode
	listID   string
	email    *compose.Email
	campaign *compose.Campaign

	busy     atomic.Bool
	toastSeq atomic.Int64
}

// NewApp builds the UI around initial form data.
func NewApp(deps Deps, initial form.Data) *App {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	a := &App{
		Application: tview.NewApplication(),
		deps:        deps,
		log:         deps.Log,
		ctx:         context.Background(),
		data:        initial,
	}

	a.form = tview.NewForm()
	a.form.SetBorder(true).SetTitle("Compose")
	a.form.SetBackgroundColor(tcell.ColorDefault)
	a.previewPane = NewPreviewPane()
	a.templates = NewTemplatesView()
	a.lists = NewListsView()

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.statusBar.SetBackgroundColor(tcell.ColorDefault)

	composeFlex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.form, 0, 3, true).
		AddItem(a.previewPane, 0, 2, false)

	a.rootPages = tview.NewPages().
		AddPage(PageCompose, composeFlex, true, true).
		AddPage(PagePreview, a.previewPane, true, false).
		AddPage(PageTemplates, a.templates, true, false).
		AddPage(PageLists, a.lists, true, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.rootPages, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.Application.SetRoot(layout, true).EnableMouse(true)
	a.setGlobalKeybindings()
	a.setListKeybindings()
	a.buildForm()
	a.setStandardStatus()
	return a
}

// Run blocks until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.ctx = ctx
	go func() {
		<-ctx.Done()
		a.Stop()
	}()
	a.log.Info("tui started", zap.String("documentType", string(a.data.DocumentType)))
	return a.Application.Run()
}

func (a *App) setGlobalKeybindings() {
	a.Application.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		page, _ := a.rootPages.GetFrontPage()
		switch event.Key() {
		case tcell.KeyCtrlC:
			a.Stop()
			return nil
		case tcell.KeyCtrlG:
			a.generate()
			return nil
		case tcell.KeyCtrlS:
			a.save()
			return nil
		case tcell.KeyCtrlY:
			a.copyEmail()
			return nil
		case tcell.KeyCtrlP:
			a.showPage(PagePreview, a.previewPane)
			return nil
		case tcell.KeyCtrlT:
			a.showTemplates()
			return nil
		case tcell.KeyCtrlL:
			a.showLists()
			return nil
		case tcell.KeyEscape:
			if page == PagePreview || page == PageTemplates || page == PageLists {
				a.showPage(PageCompose, a.form)
				return nil
			}
		}
		return event
	})
}

func (a *App) showPage(name string, focus tview.Primitive) {
	a.rootPages.SwitchToPage(name)
	a.SetFocus(focus)
	a.setStandardStatus()
}

// buildForm recreates the form inputs for the current document type.
func (a *App) buildForm() {
	a.form.Clear(true)

	types := make([]string, len(form.DocumentTypes))
	for i, t := range form.DocumentTypes {
		types[i] = string(t)
	}
	a.form.AddDropDown("Email type", types, optionIndex(types, string(a.data.DocumentType)), func(option string, i int) {
		if i < 0 || form.DocumentType(option) == a.data.DocumentType {
			return
		}
		a.data.DocumentType = form.DocumentType(option)
		a.QueueUpdateDraw(a.buildForm)
	})

	settings := a.deps.Compose.Settings()
	agentNames := make([]string, len(settings.Agents))
	agentIDs := make([]string, len(settings.Agents))
	for i, ag := range settings.Agents {
		agentNames[i], agentIDs[i] = ag.Name, ag.ID
	}
	a.form.AddDropDown("Agent", agentNames, optionIndex(agentIDs, a.data.AgentID), func(_ string, i int) {
		if i < 0 || agentIDs[i] == a.data.AgentID {
			return
		}
		a.data.AgentID = agentIDs[i]
		if a.deps.Config != nil {
			if err := a.deps.Config.SetDefaultAgent(agentIDs[i]); err != nil {
				a.log.Warn("remember agent failed", zap.Error(err))
			}
		}
	})

	for _, f := range fieldsFor(a.data) {
		if f.options != nil {
			a.form.AddDropDown(f.label, f.options, optionIndex(f.options, *f.value(&a.data)), func(option string, i int) {
				if i < 0 || *f.value(&a.data) == option {
					return
				}
				*f.value(&a.data) = option
				if f.rebuild {
					a.QueueUpdateDraw(a.buildForm)
				}
			})
			continue
		}
		a.form.AddInputField(f.label, *f.value(&a.data), f.width, nil, func(text string) {
			*f.value(&a.data) = text
		})
	}

	a.form.AddCheckbox("UTM tracking", a.data.EnableUTM, func(checked bool) {
		a.data.EnableUTM = checked
	})
	a.form.AddCheckbox("Facebook banner", a.data.IncludeFacebookBanner, func(checked bool) {
		a.data.IncludeFacebookBanner = checked
	})
	a.form.AddCheckbox("Bulk campaign", a.mode == compose.Bulk, func(checked bool) {
		a.mode = compose.Single
		if checked {
			a.mode = compose.Bulk
		}
		a.setStandardStatus()
	})

	a.form.AddButton("Generate", a.generate)
	a.form.AddButton("Subjects", a.suggestSubjects)
	a.form.AddButton("Preheaders", a.suggestPreheaders)
	a.form.AddButton("Upsell ideas", a.suggestOpportunities)
	if a.data.DocumentType == form.PolicyRenewal {
		a.form.AddButton("Explain rate", a.explainRate)
	}
	a.form.AddButton("Fill from file", a.askExtract)
	a.form.AddButton("Hero image", a.askHero)
	a.form.AddButton("Gmail draft", a.createDraft)
}

// run executes fn off the UI goroutine. Only one operation runs at a time;
// apply is called on the UI goroutine when fn succeeds.
func (a *App) run(label string, fn func(ctx context.Context) (apply func(), err error)) {
	if !a.busy.CompareAndSwap(false, true) {
		a.toast(toastWarn, "Busy: wait for the current action to finish")
		return
	}
	a.toast(toastInfo, label+"...")
	ctx := a.ctx
	go func() {
		apply, err := fn(ctx)
		a.QueueUpdateDraw(func() {
			a.busy.Store(false)
			if err != nil {
				a.log.Warn("action failed", zap.String("action", label), zap.Error(err))
				a.toastErr(err)
				return
			}
			if apply != nil {
				apply()
			}
		})
	}()
}

func (a *App) generate() {
	d, mode, listID := a.data, a.mode, a.listID
	if mode == compose.Bulk && listID == "" {
		a.toast(toastWarn, "Pick a recipient list first (Ctrl+L)")
		return
	}
	a.run("Generating email", func(ctx context.Context) (func(), error) {
		if mode == compose.Bulk {
			c, err := a.deps.Compose.Campaign(ctx, d, listID)
			if err != nil {
				return nil, err
			}
			return func() { a.setCampaign(c) }, nil
		}
		e, err := a.deps.Compose.Generate(ctx, d, mode)
		if err != nil {
			return nil, err
		}
		return func() { a.setEmail(e) }, nil
	})
}

func (a *App) setEmail(e compose.Email) {
	a.email, a.campaign = &e, nil
	a.previewPane.SetEmail(e, a.data.RecipientEmail, 0)
	if a.deps.Preview != nil {
		a.deps.Preview.Set(preview.Page{Subject: e.Subject, HTML: e.HTML})
	}
	a.toastSize(e)
}

func (a *App) setCampaign(c compose.Campaign) {
	a.email, a.campaign = &c.Email, &c
	a.previewPane.SetEmail(c.Email, "", len(c.Rows))
	if a.deps.Preview != nil {
		a.deps.Preview.Set(preview.Page{Subject: c.Email.Subject, HTML: c.Email.HTML, Rows: c.Rows})
	}
	a.toastSize(c.Email)
}

func (a *App) toastSize(e compose.Email) {
	msg := "Email ready: " + sizeSummary(e.SizeKB, e.Level)
	if e.Level == document.LevelClip {
		a.toast(toastWarn, msg+". Gmail may clip this message")
		return
	}
	a.toast(toastSuccess, msg)
}

// save writes the HTML plus, when they apply, the campaign CSV and the
// renewal invite.
func (a *App) save() {
	if a.email == nil {
		a.toast(toastWarn, "Generate an email first")
		return
	}
	var saved []string
	path, err := a.deps.Out.WriteString(a.email.Filename, a.email.HTML)
	if err != nil {
		a.toastErr(err)
		return
	}
	saved = append(saved, path)

	if c := a.campaign; c != nil {
		path, err := a.deps.Out.Write(c.Filename(), func(w io.Writer) error {
			return bulk.WriteCSV(w, c.Rows)
		})
		if err != nil {
			a.toastErr(err)
			return
		}
		saved = append(saved, path)
	}

	ics, err := a.deps.Compose.Invite(a.email.Form)
	switch {
	case errors.Is(err, compose.ErrNoInvite):
	case err != nil:
		a.toast(toastWarn, "Saved "+strings.Join(saved, ", ")+"; invite skipped: "+err.Error())
		return
	default:
		path, err := a.deps.Out.WriteString(calendar.Filename, ics)
		if err != nil {
			a.toastErr(err)
			return
		}
		saved = append(saved, path)
	}
	a.toast(toastSuccess, "Saved "+strings.Join(saved, ", "))
}

// clipboardHTML is what gets pasted into a mail client: the body markup,
// or its text when the body cannot be extracted.
func clipboardHTML(doc string) string {
	body, err := document.BodyHTML(doc)
	if err == nil && strings.TrimSpace(body) != "" {
		return body
	}
	text, _ := document.PlainText(doc)
	return text
}

func (a *App) copyEmail() {
	if a.email == nil {
		a.toast(toastWarn, "Generate an email first")
		return
	}
	if err := a.deps.Clipboard(clipboardHTML(a.email.HTML)); err != nil {
		a.toastErr(fmt.Errorf("copy to clipboard: %w", err))
		return
	}
	a.toast(toastSuccess, "Email copied. Paste it into the Gmail compose window")
}

func (a *App) createDraft() {
	if a.email == nil {
		a.toast(toastWarn, "Generate an email first")
		return
	}
	if a.deps.Drafts == nil {
		a.toast(toastWarn, "Gmail drafts are not configured")
		return
	}
	if a.campaign != nil {
		a.toast(toastWarn, "Campaigns are exported as CSV, not drafted")
		return
	}
	e := *a.email
	ics, icsErr := a.deps.Compose.Invite(e.Form)
	a.run("Creating Gmail draft", func(ctx context.Context) (func(), error) {
		text, _ := document.PlainText(e.HTML)
		d := gmail.Draft{To: e.Form.RecipientEmail, Subject: e.Subject, HTML: e.HTML, Text: text}
		if icsErr == nil {
			d.Attachments = append(d.Attachments, gmail.Attachment{
				Filename: calendar.Filename,
				MIMEType: "text/calendar; charset=UTF-8",
				Data:     []byte(ics),
			})
		}
		if _, err := a.deps.Drafts.CreateDraft(ctx, d); err != nil {
			return nil, err
		}
		return func() { a.toast(toastSuccess, "Draft saved in Gmail") }, nil
	})
}

func (a *App) suggestSubjects() {
	d := a.data
	a.run("Suggesting subject lines", func(ctx context.Context) (func(), error) {
		lines, err := a.deps.Compose.SubjectLines(ctx, d)
		if err != nil {
			return nil, err
		}
		return func() {
			a.showChoices("Subject lines", lines, func(i int) { a.data.EmailSubject = lines[i] })
		}, nil
	})
}

func (a *App) suggestPreheaders() {
	d := a.data
	a.run("Suggesting preheaders", func(ctx context.Context) (func(), error) {
		lines, err := a.deps.Compose.Preheaders(ctx, d)
		if err != nil {
			return nil, err
		}
		return func() {
			a.showChoices("Preheaders", lines, func(i int) { a.data.EmailPreheader = lines[i] })
		}, nil
	})
}

func (a *App) suggestOpportunities() {
	d := a.data
	a.run("Looking for upsell ideas", func(ctx context.Context) (func(), error) {
		ops, err := a.deps.Compose.Opportunities(ctx, d)
		if err != nil {
			return nil, err
		}
		if len(ops) == 0 {
			return func() { a.toast(toastInfo, "No upsell ideas for this email") }, nil
		}
		titles := make([]string, len(ops))
		for i, o := range ops {
			titles[i] = o.Title + ": " + o.SuggestionText
		}
		return func() {
			a.showChoices("Upsell ideas", titles, func(i int) {
				a.data.SelectedOpportunityPrompt = ops[i].PromptToInject
				a.toast(toastSuccess, "Added to the email: "+ops[i].Title)
			})
		}, nil
	})
}

func (a *App) explainRate() {
	d := a.data
	a.run("Explaining the rate change", func(ctx context.Context) (func(), error) {
		out, err := a.deps.Compose.RateExplanation(ctx, d)
		if err != nil {
			return nil, err
		}
		return func() {
			a.data.RenewalRateExplanation = out.RenewalRateExplanation
			a.buildForm()
			a.toast(toastSuccess, "Rate explanation added")
		}, nil
	})
}

// askExtract fills the form from a policy document. Late payment notices
// read cancellation reports instead and offer a pick of the rows found.
func (a *App) askExtract() {
	a.ask("Fill from file", "Document path", "", func(path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			a.toastErr(err)
			return
		}
		doc := ai.NewDocument(path, data)
		d := a.data
		if d.DocumentType == form.LatePaymentNotice {
			a.run("Reading cancellation report", func(ctx context.Context) (func(), error) {
				rows, err := a.deps.Compose.Cancellations(ctx, doc)
				if err != nil {
					return nil, err
				}
				labels := make([]string, len(rows))
				for i, r := range rows {
					labels[i] = fmt.Sprintf("%s  %s  %s  %s", r.NamedInsured, r.PolicyNumber, r.CancellationDate, r.AmountDue)
				}
				return func() {
					a.showChoices("Cancellations", labels, func(i int) {
						a.data = form.ApplyCancellation(a.data, rows[i])
						a.buildForm()
					})
				}, nil
			})
			return
		}
		a.run("Reading document", func(ctx context.Context) (func(), error) {
			filled, err := a.deps.Compose.Extract(ctx, d, doc)
			if err != nil {
				return nil, err
			}
			return func() {
				a.data = filled
				a.buildForm()
				a.toast(toastSuccess, "Form filled from "+path)
			}, nil
		})
	})
}

// askHero takes an image file path, or a prompt for a generated image.
func (a *App) askHero() {
	a.ask("Hero image", "File path or prompt", "", func(input string) {
		if input == "" {
			return
		}
		d := a.data
		if data, err := os.ReadFile(input); err == nil {
			out, err := a.deps.Compose.HeroFromFile(d, data)
			if err != nil {
				a.toastErr(err)
				return
			}
			a.data = out
			a.buildForm()
			a.toast(toastSuccess, "Hero image attached")
			return
		}
		a.run("Generating hero image", func(ctx context.Context) (func(), error) {
			out, err := a.deps.Compose.HeroFromPrompt(ctx, d, input)
			if err != nil {
				return nil, err
			}
			return func() {
				a.data.HeroURL, a.data.HeroAlt = out.HeroURL, out.HeroAlt
				a.buildForm()
				a.toast(toastSuccess, "Hero image generated")
			}, nil
		})
	})
}

func (a *App) ask(title, label, initial string, onOK func(string)) {
	back, _ := a.rootPages.GetFrontPage()
	closeModal := func() {
		a.rootPages.RemovePage(PageModal)
		a.rootPages.SwitchToPage(back)
	}
	f := newAskForm(title, label, initial, func(v string) {
		closeModal()
		onOK(v)
	}, closeModal)
	a.rootPages.AddPage(PageModal, centered(f, 70, 7), true, true)
	a.SetFocus(f)
}

func (a *App) showChoices(title string, options []string, onPick func(int)) {
	back, _ := a.rootPages.GetFrontPage()
	closeModal := func() {
		a.rootPages.RemovePage(PageModal)
		a.rootPages.SwitchToPage(back)
	}
	l := newChoiceList(title, options, func(i int) {
		closeModal()
		onPick(i)
		a.buildForm()
	}, closeModal)
	a.rootPages.AddPage(PageModal, centered(l, 90, len(options)+2), true, true)
	a.SetFocus(l)
}

func (a *App) showTemplates() {
	ts, err := a.deps.Store.Templates(a.ctx)
	if err != nil {
		a.toastErr(err)
		return
	}
	a.templates.SetTemplates(ts)
	a.showPage(PageTemplates, a.templates)
}

func (a *App) showLists() {
	ls, err := a.deps.Store.Lists(a.ctx)
	if err != nil {
		a.toastErr(err)
		return
	}
	a.lists.SetLists(ls, a.listID)
	a.showPage(PageLists, a.lists)
}

func (a *App) setListKeybindings() {
	a.templates.SetSelectedFunc(func(int, string, string, rune) {
		t, ok := a.templates.Selected()
		if !ok {
			return
		}
		d, err := a.deps.Store.LoadTemplate(a.ctx, t.ID, a.data)
		if err != nil {
			a.toastErr(err)
			return
		}
		a.data = d
		a.buildForm()
		a.showPage(PageCompose, a.form)
		a.toast(toastSuccess, "Loaded template "+t.Name)
	})
	a.templates.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 's', 'S':
			clearCustomer := event.Rune() == 's'
			a.ask("Save template", "Name", "", func(name string) {
				if _, err := a.deps.Store.SaveTemplate(a.ctx, name, a.data, clearCustomer); err != nil {
					a.toastErr(err)
					return
				}
				a.showTemplates()
				a.toast(toastSuccess, "Template saved")
			})
		case 'd':
			if t, ok := a.templates.Selected(); ok {
				if err := a.deps.Store.DeleteTemplate(a.ctx, t.ID); err != nil {
					a.toastErr(err)
					return nil
				}
				a.showTemplates()
				a.toast(toastSuccess, "Deleted "+t.Name)
			}
		case 'e':
			a.export(store.TemplatesExportFile, a.deps.Store.ExportTemplates)
		case 'i':
			a.importFile("Import templates", a.deps.Store.ImportTemplates, a.showTemplates)
		default:
			return event
		}
		return nil
	})

	a.lists.SetSelectedFunc(func(int, string, string, rune) {
		l, ok := a.lists.Selected()
		if !ok {
			return
		}
		a.listID, a.mode = l.ID, compose.Bulk
		a.buildForm()
		a.showPage(PageCompose, a.form)
		a.toast(toastSuccess, fmt.Sprintf("Campaign list: %s (%d recipients)", l.Name, len(l.Recipients)))
	})
	a.lists.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'n':
			a.ask("New list", "Name", "", func(name string) {
				if _, err := a.deps.Store.CreateList(a.ctx, name); err != nil {
					a.toastErr(err)
					return
				}
				a.showLists()
			})
		case 'a':
			l, ok := a.lists.Selected()
			if !ok {
				return nil
			}
			a.ask("Add recipients to "+l.Name, "File (email, firstName, policyHolder)", "", func(path string) {
				f, err := os.Open(path)
				if err != nil {
					a.toastErr(err)
					return
				}
				defer f.Close()
				rs, err := store.ParseRecipients(f)
				if err != nil {
					a.toastErr(err)
					return
				}
				n, err := a.deps.Store.AddRecipients(a.ctx, l.ID, rs)
				if err != nil {
					a.toastErr(err)
					return
				}
				a.showLists()
				a.toast(toastSuccess, fmt.Sprintf("Added %d recipients", n))
			})
		case 'd':
			if l, ok := a.lists.Selected(); ok {
				if err := a.deps.Store.DeleteList(a.ctx, l.ID); err != nil {
					a.toastErr(err)
					return nil
				}
				if a.listID == l.ID {
					a.listID, a.mode = "", compose.Single
					a.buildForm()
				}
				a.showLists()
			}
		case 'e':
			a.export(store.ListsExportFile, a.deps.Store.ExportLists)
		case 'i':
			a.importFile("Import lists", a.deps.Store.ImportLists, a.showLists)
		default:
			return event
		}
		return nil
	})
}

func (a *App) export(name string, fn func(context.Context, io.Writer) (int, error)) {
	var n int
	path, err := a.deps.Out.Write(name, func(w io.Writer) error {
		var err error
		n, err = fn(a.ctx, w)
		return err
	})
	if err != nil {
		a.toastErr(err)
		return
	}
	a.toast(toastSuccess, fmt.Sprintf("Exported %d to %s", n, path))
}

func (a *App) importFile(title string, fn func(context.Context, io.Reader) (int, error), refresh func()) {
	a.ask(title, "File path", "", func(path string) {
		f, err := os.Open(path)
		if err != nil {
			a.toastErr(err)
			return
		}
		defer f.Close()
		n, err := fn(a.ctx, f)
		if err != nil {
			a.toastErr(err)
			return
		}
		refresh()
		a.toast(toastSuccess, fmt.Sprintf("Imported %d", n))
	})
}

// toast shows msg in the status bar until toastDuration passes or a newer
// toast replaces it.
func (a *App) toast(level toastLevel, msg string) {
	seq := a.toastSeq.Add(1)
	a.statusBar.SetText(" " + level.tag() + tview.Escape(truncate(msg, 160)) + "[-:-:-]")
	time.AfterFunc(toastDuration, func() {
		a.QueueUpdateDraw(func() {
			if a.toastSeq.Load() == seq {
				a.setStandardStatus()
			}
		})
	})
}

func (a *App) toastErr(err error) {
	level, msg := toastFor(err)
	a.toast(level, msg)
}

// toastFor maps err to the message shown to the user.
func toastFor(err error) (toastLevel, string) {
	switch {
	case errors.Is(err, ai.ErrNoContent):
		return toastError, "Could not generate content. Please try again."
	case errors.Is(err, form.ErrMissingField), errors.Is(err, form.ErrInvalidEmail),
		errors.Is(err, compose.ErrEmptyList), errors.Is(err, compose.ErrNoExtraction):
		return toastWarn, err.Error()
	case errors.Is(err, store.ErrInvalidImport):
		return toastError, "Invalid import file"
	}
	return toastError, "Error: " + err.Error()
}

func (a *App) setStandardStatus() {
	page, _ := a.rootPages.GetFrontPage()
	mode := "single"
	if a.mode == compose.Bulk {
		mode = "bulk"
	}
	hints := "[::b]Ctrl+G[::-]:Generate [::b]Ctrl+S[::-]:Save [::b]Ctrl+Y[::-]:Copy [::b]Ctrl+P[::-]:Preview " +
		"[::b]Ctrl+T[::-]:Templates [::b]Ctrl+L[::-]:Lists [::b]Ctrl+C[::-]:Quit"
	if page != PageCompose {
		hints = "[::b]Esc[::-]:Back " + hints
	}
	a.statusBar.SetText(fmt.Sprintf(" [::d]%s | %s | %s", mode, time.Now().Format("15:04"), hints))
}
