package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historyLines = 4

// VideoFunc renders a video from a prompt, reporting progress lines, and
// returns the video URI.
type VideoFunc func(ctx context.Context, progress func(string)) (string, error)

// VideoModel shows the progress of a video generation. Esc or Ctrl+C
// cancels the generation and the view closes once it has stopped.
type VideoModel struct {
	prompt   string
	progress <-chan string
	result   <-chan videoDoneMsg
	cancel   context.CancelFunc

	started    time.Time
	elapsed    time.Duration
	status     string
	history    []string
	cancelling bool

	done  bool
	uri   string
	err   error
	width int
}

func newVideoModel(prompt string, cancel context.CancelFunc, progress <-chan string, result <-chan videoDoneMsg, started time.Time) VideoModel {
	return VideoModel{
		prompt:   prompt,
		progress: progress,
		result:   result,
		cancel:   cancel,
		started:  started,
		status:   "Starting video generation...",
	}
}

func (m VideoModel) Init() tea.Cmd {
	return tea.Batch(
		waitForProgressCmd(m.progress),
		waitForResultCmd(m.result),
		tickCmd(time.Second),
	)
}

func (m VideoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if !m.cancelling {
				m.cancelling = true
				m.status = "Cancelling..."
				m.cancel()
			}
		}

	case progressMsg:
		if m.status != "" && !m.cancelling {
			m.history = append(m.history, m.status)
			if len(m.history) > historyLines {
				m.history = m.history[len(m.history)-historyLines:]
			}
		}
		if !m.cancelling {
			m.status = string(msg)
		}
		return m, waitForProgressCmd(m.progress)

	case progressClosedMsg:

	case videoDoneMsg:
		m.done = true
		m.uri, m.err = msg.URI, msg.Err
		return m, tea.Quit

	case tickMsg:
		if !m.done {
			m.elapsed = msg.Time.Sub(m.started).Truncate(time.Second)
			return m, tickCmd(time.Second)
		}
	}
	return m, nil
}

func (m VideoModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	inner := width - AppStyle.GetHorizontalPadding() - ContentBoxStyle.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Video") + "\n\n")
	b.WriteString(HeaderKeyStyle.Render("Prompt: ") + PromptStyle.Render(truncate(m.prompt, inner-8)) + "\n")
	b.WriteString(HeaderKeyStyle.Render("Elapsed: ") + formatElapsed(m.elapsed) + "\n\n")
	for _, h := range m.history {
		b.WriteString(HistoryStyle.Render(truncate(h, inner)) + "\n")
	}
	b.WriteString(truncate(m.status, inner))

	box := ContentBoxStyle.Width(inner).Render(b.String())
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, box, m.renderStatusBar(inner)))
}

func (m VideoModel) renderStatusBar(width int) string {
	switch {
	case m.done && m.err != nil:
		return StatusBarErrorStyle.Width(width).Render(truncate("Error: "+m.err.Error(), width))
	case m.done:
		return StatusBarSuccessStyle.Width(width).Render("Video ready.")
	case m.cancelling:
		return StatusBarNormalStyle.Width(width).Render("Waiting for the generation to stop...")
	}
	return StatusBarNormalStyle.Width(width).Render(HintStyle.Render("[Esc/Ctrl+C]: Cancel"))
}

// Result is the URI, or the error that ended the generation. A cancelled
// generation reports context.Canceled.
func (m VideoModel) Result() (string, error) {
	if !m.done {
		return "", context.Canceled
	}
	if m.err != nil {
		return "", m.err
	}
	if m.uri == "" {
		return "", errors.New("video: no result")
	}
	return m.uri, nil
}

// RunVideo runs generate behind a VideoModel until it finishes or the user
// cancels it.
func RunVideo(ctx context.Context, prompt string, generate VideoFunc, opts ...tea.ProgramOption) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progress := make(chan string, 16)
	result := make(chan videoDoneMsg, 1)
	go func() {
		uri, err := generate(ctx, func(line string) {
			select {
			case progress <- line:
			default:
			}
		})
		close(progress)
		result <- videoDoneMsg{URI: uri, Err: err}
	}()

	final, err := tea.NewProgram(newVideoModel(prompt, cancel, progress, result, time.Now()), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("video view: %w", err)
	}
	return final.(VideoModel).Result()
}
