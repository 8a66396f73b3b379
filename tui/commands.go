package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// waitForProgressCmd listens on the progress channel and sends a progressMsg
// for each line. The model re-queues it until the channel is closed.
func waitForProgressCmd(progress <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-progress
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(line)
	}
}

func waitForResultCmd(result <-chan videoDoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-result
	}
}

// tickCmd drives the elapsed-time display.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg{Time: t}
	})
}
