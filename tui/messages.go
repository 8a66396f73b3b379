package tui

import "time"

// progressMsg is one status line reported while a video renders.
type progressMsg string

// progressClosedMsg signals that no more progress lines will arrive.
type progressClosedMsg struct{}

// videoDoneMsg carries the outcome of the generation.
type videoDoneMsg struct {
	URI string
	Err error
}

// A message for the elapsed-time display.
type tickMsg struct{ Time time.Time }
