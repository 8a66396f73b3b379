package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billlayne/mailcomposer/ai"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/store"
)

func labels(fs []field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.label
	}
	return out
}

func TestFieldsFor(t *testing.T) {
	d := form.Defaults()

	d.DocumentType = form.InsuranceQuote
	got := labels(fieldsFor(d))
	assert.Contains(t, got, "Quote amount")
	assert.Contains(t, got, "Dwelling")
	assert.NotContains(t, got, "Vehicles")
	assert.NotContains(t, got, "Prompt")

	d.QuoteType = "Auto"
	got = labels(fieldsFor(d))
	assert.Contains(t, got, "Vehicles")
	assert.NotContains(t, got, "Dwelling")

	d.QuoteType = "Life"
	assert.Contains(t, labels(fieldsFor(d)), "Prompt")

	d.DocumentType = form.PolicyRenewal
	got = labels(fieldsFor(d))
	assert.Contains(t, got, "Renewal due")
	assert.Contains(t, got, "Calendar invite")

	d.DocumentType = form.Receipt
	assert.NotContains(t, labels(fieldsFor(d)), "Prompt")

	for _, dt := range form.DocumentTypes {
		d.DocumentType = dt
		fs := fieldsFor(d)
		assert.Equal(t, labels(commonFields), labels(fs[:len(commonFields)]), dt)
		if form.NeedsPrompt(dt) {
			assert.Contains(t, labels(fs), "Prompt", dt)
		}
	}
}

func TestFieldsBindToData(t *testing.T) {
	d := form.Defaults()
	d.DocumentType = form.LatePaymentNotice
	for _, f := range fieldsFor(d) {
		*f.value(&d) = "x-" + f.label
	}
	assert.Equal(t, "x-Amount due", d.LateAmountDue)
	assert.Equal(t, "x-Payment link", d.LatePaymentLink)
	assert.Equal(t, "x-Policy holder", d.PolicyHolder)
}

func TestOnlyQuoteTypeRebuilds(t *testing.T) {
	d := form.Defaults()
	for _, dt := range form.DocumentTypes {
		d.DocumentType = dt
		for _, f := range fieldsFor(d) {
			if f.rebuild {
				assert.Equal(t, "Quote type", f.label)
			}
		}
	}
}

func TestOptionIndex(t *testing.T) {
	assert.Equal(t, 1, optionIndex(form.Tones, "Direct"))
	assert.Equal(t, -1, optionIndex(form.Tones, "Angry"))
	assert.Equal(t, -1, optionIndex(nil, ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "he...", truncate("hello world", 5))
	assert.Equal(t, "he", truncate("hello", 2))
	assert.Equal(t, "", truncate("hello", 0))
	assert.Equal(t, "Ré...", truncate("Rénovation", 5))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00", formatElapsed(0))
	assert.Equal(t, "1:05", formatElapsed(65*time.Second))
	assert.Equal(t, "10:00", formatElapsed(10*time.Minute))
	assert.Equal(t, "0:00", formatElapsed(-time.Second))
}

func TestListItem(t *testing.T) {
	l := store.RecipientList{ID: "a", Name: "Spring", Recipients: []store.Recipient{{Email: "a@example.com"}}}
	main, secondary := listItem(l, false)
	assert.Equal(t, "Spring", main)
	assert.Contains(t, secondary, "1 recipient ")

	main, _ = listItem(l, true)
	assert.Contains(t, main, "(campaign)")

	_, secondary = templateItem(store.Template{Name: "T"})
	assert.Contains(t, secondary, "???")
}

func TestToastFor(t *testing.T) {
	level, msg := toastFor(fmt.Errorf("subjects: %w", ai.ErrNoContent))
	assert.Equal(t, toastError, level)
	assert.Equal(t, "Could not generate content. Please try again.", msg)

	level, msg = toastFor(fmt.Errorf("%w: please enter a prompt", form.ErrMissingField))
	assert.Equal(t, toastWarn, level)
	assert.Contains(t, msg, "please enter a prompt")

	level, msg = toastFor(fmt.Errorf("wrap: %w", store.ErrInvalidImport))
	assert.Equal(t, toastError, level)
	assert.Equal(t, "Invalid import file", msg)

	level, msg = toastFor(errors.New("disk full"))
	assert.Equal(t, toastError, level)
	assert.Equal(t, "Error: disk full", msg)
}

func TestClipboardHTML(t *testing.T) {
	doc := `<!DOCTYPE html><html><head><title>T</title></head><body><p>Hi <b>Jane</b></p></body></html>`
	assert.Equal(t, "<p>Hi <b>Jane</b></p>", clipboardHTML(doc))
}

func newTestVideoModel() (VideoModel, *bool) {
	cancelled := false
	m := newVideoModel("A sunrise over a quiet street", func() { cancelled = true },
		make(chan string), make(chan videoDoneMsg), time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	return m, &cancelled
}

func update(t *testing.T, m VideoModel, msg tea.Msg) (VideoModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(VideoModel), cmd
}

func TestVideoModelProgress(t *testing.T) {
	m, _ := newTestVideoModel()

	m, cmd := update(t, m, progressMsg("Generating video... this can take a few minutes."))
	assert.NotNil(t, cmd)
	assert.Equal(t, "Generating video... this can take a few minutes.", m.status)
	assert.Equal(t, []string{"Starting video generation..."}, m.history)

	for i := 0; i < 10; i++ {
		m, _ = update(t, m, progressMsg(fmt.Sprintf("poll %d", i)))
	}
	assert.Len(t, m.history, historyLines)
	assert.Equal(t, "poll 9", m.status)

	m, cmd = update(t, m, tickMsg{Time: time.Date(2025, 3, 1, 9, 1, 5, 0, time.UTC)})
	assert.NotNil(t, cmd)
	assert.Equal(t, 65*time.Second, m.elapsed)

	view := m.View()
	assert.Contains(t, view, "A sunrise over a quiet street")
	assert.Contains(t, view, "1:05")
	assert.Contains(t, view, "poll 9")
}

func TestVideoModelCancel(t *testing.T) {
	m, cancelled := newTestVideoModel()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, *cancelled)
	assert.True(t, m.cancelling)
	assert.Equal(t, "Cancelling...", m.status)

	m, _ = update(t, m, progressMsg("still polling"))
	assert.Equal(t, "Cancelling...", m.status)

	_, err := m.Result()
	assert.ErrorIs(t, err, context.Canceled)

	m, cmd := update(t, m, videoDoneMsg{Err: context.Canceled})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	_, err = m.Result()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, m.View(), "Error: context canceled")
}

func TestVideoModelDone(t *testing.T) {
	m, cancelled := newTestVideoModel()
	m, cmd := update(t, m, videoDoneMsg{URI: "https://example.com/v.mp4"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, *cancelled)

	uri, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v.mp4", uri)
	assert.Contains(t, m.View(), "Video ready.")

	m, _ = update(t, m, tickMsg{Time: time.Now()})
	assert.Zero(t, m.elapsed)
}

func TestRunVideo(t *testing.T) {
	var out bytes.Buffer
	uri, err := RunVideo(context.Background(), "sunrise", func(ctx context.Context, progress func(string)) (string, error) {
		progress("Generating video...")
		return "https://example.com/v.mp4", nil
	}, tea.WithInput(nil), tea.WithOutput(&out), tea.WithoutRenderer())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v.mp4", uri)

	_, err = RunVideo(context.Background(), "sunrise", func(ctx context.Context, progress func(string)) (string, error) {
		return "", fmt.Errorf("video: %w", ai.ErrNoContent)
	}, tea.WithInput(nil), tea.WithOutput(&out), tea.WithoutRenderer())
	assert.ErrorIs(t, err, ai.ErrNoContent)
}
