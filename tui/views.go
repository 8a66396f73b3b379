package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/billlayne/mailcomposer/compose"
	"github.com/billlayne/mailcomposer/document"
	"github.com/billlayne/mailcomposer/gmail"
	"github.com/billlayne/mailcomposer/store"
)

const (
	PageCompose   = "compose"
	PagePreview   = "preview"
	PageTemplates = "templates"
	PageLists     = "lists"
	PageModal     = "modal"
)

// PreviewPane shows the text rendition of the last generated email.
type PreviewPane struct {
	*tview.TextView
	isWelcome bool
}

func NewPreviewPane() *PreviewPane {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	tv.SetBackgroundColor(tcell.ColorDefault)
	tv.SetBorder(true).SetTitle("Preview")
	pp := &PreviewPane{TextView: tv}
	pp.SetWelcomeMessage()
	return pp
}

func (pp *PreviewPane) SetEmail(e compose.Email, to string, rows int) {
	pp.isWelcome = false
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]Subject:[::-] %s\n", tview.Escape(e.Subject))
	fmt.Fprintf(&b, "[::b]Preheader:[::-] %s\n", tview.Escape(e.Preheader))
	fmt.Fprintf(&b, "[::b]File:[::-] %s\n", tview.Escape(e.Filename))
	fmt.Fprintf(&b, "[::b]Size:[::-] %s\n", sizeSummary(e.SizeKB, e.Level))
	if rows > 0 {
		fmt.Fprintf(&b, "[::b]Campaign rows:[::-] %d\n", rows)
	} else {
		fmt.Fprintf(&b, "[::b]Gmail:[::-] %s\n", tview.Escape(gmail.ComposeURL(to, e.Subject)))
	}
	b.WriteString(strings.Repeat("─", 60) + "\n\n")
	body, err := document.PlainText(e.HTML)
	if err != nil {
		body = "(could not extract text: " + err.Error() + ")"
	}
	b.WriteString(tview.Escape(body))
	pp.SetText(b.String()).ScrollToBeginning()
	pp.SetTitle(fmt.Sprintf("Preview: %s", truncate(tview.Escape(e.Subject), 50)))
}

func (pp *PreviewPane) SetWelcomeMessage() {
	pp.isWelcome = true
	pp.SetText("\n[lightblue::b]composer[-::-]\n\nNothing generated yet.\n\n" +
		"[::d]Fill in the form and press Ctrl+G to generate.\n" +
		"Ctrl+S saves the HTML, Ctrl+Y copies it, Esc returns to the form.[::-]").
		ScrollToBeginning()
	pp.SetTitle("Preview")
}

func (pp *PreviewPane) IsShowingWelcome() bool {
	return pp.isWelcome
}

// TemplatesView lists saved templates.
type TemplatesView struct {
	*tview.List
	templates []store.Template
}

func NewTemplatesView() *TemplatesView {
	list := tview.NewList().
		ShowSecondaryText(true).
		SetSecondaryTextColor(tcell.ColorDimGray)
	list.SetBackgroundColor(tcell.ColorDefault)
	list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorSteelBlue).
		Attributes(tcell.AttrBold))
	list.SetBorder(true).SetTitle("Templates  [::d]Enter:Load s:Save S:Save with customer d:Delete e:Export i:Import Esc:Back")
	return &TemplatesView{List: list}
}

func (v *TemplatesView) SetTemplates(ts []store.Template) {
	current := v.GetCurrentItem()
	v.templates = ts
	v.Clear()
	for _, t := range ts {
		main, secondary := templateItem(t)
		v.AddItem(tview.Escape(main), secondary, 0, nil)
	}
	if n := v.GetItemCount(); n > 0 {
		if current < 0 || current >= n {
			current = 0
		}
		v.SetCurrentItem(current)
	}
}

// Selected returns the highlighted template.
func (v *TemplatesView) Selected() (store.Template, bool) {
	i := v.GetCurrentItem()
	if i < 0 || i >= len(v.templates) {
		return store.Template{}, false
	}
	return v.templates[i], true
}

// ListsView lists recipient lists.
type ListsView struct {
	*tview.List
	lists []store.RecipientList
}

func NewListsView() *ListsView {
	list := tview.NewList().
		ShowSecondaryText(true).
		SetSecondaryTextColor(tcell.ColorDimGray)
	list.SetBackgroundColor(tcell.ColorDefault)
	list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(tcell.ColorWhite).
		Background(tcell.ColorSteelBlue).
		Attributes(tcell.AttrBold))
	list.SetBorder(true).SetTitle("Recipient lists  [::d]Enter:Use for campaign n:New a:Add recipients d:Delete e:Export i:Import Esc:Back")
	return &ListsView{List: list}
}

// SetLists redraws the lists, marking the one named campaign.
func (v *ListsView) SetLists(ls []store.RecipientList, campaign string) {
	current := v.GetCurrentItem()
	v.lists = ls
	v.Clear()
	for _, l := range ls {
		main, secondary := listItem(l, l.ID == campaign)
		v.AddItem(main, secondary, 0, nil)
	}
	if n := v.GetItemCount(); n > 0 {
		if current < 0 || current >= n {
			current = 0
		}
		v.SetCurrentItem(current)
	}
}

func (v *ListsView) Selected() (store.RecipientList, bool) {
	i := v.GetCurrentItem()
	if i < 0 || i >= len(v.lists) {
		return store.RecipientList{}, false
	}
	return v.lists[i], true
}

// centered wraps p in a fixed-size box in the middle of the screen.
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// newAskForm is a one-field modal form.
func newAskForm(title, label, initial string, onOK func(string), onCancel func()) *tview.Form {
	f := tview.NewForm()
	f.AddInputField(label, initial, 50, nil, nil)
	f.AddButton("OK", func() {
		onOK(strings.TrimSpace(f.GetFormItem(0).(*tview.InputField).GetText()))
	})
	f.AddButton("Cancel", onCancel)
	f.SetCancelFunc(onCancel)
	f.SetBorder(true).SetTitle(title)
	return f
}

// newChoiceList is a modal list of options.
func newChoiceList(title string, options []string, onPick func(int), onCancel func()) *tview.List {
	l := tview.NewList().ShowSecondaryText(false)
	for i, o := range options {
		l.AddItem(tview.Escape(o), "", rune('1'+i%9), nil)
	}
	l.SetSelectedFunc(func(i int, _, _ string, _ rune) { onPick(i) })
	l.SetDoneFunc(onCancel)
	l.SetBorder(true).SetTitle(title + "  [::d]Enter:Use Esc:Cancel")
	return l
}
