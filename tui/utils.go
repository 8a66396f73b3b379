package tui

import (
	"fmt"
	"time"

	"github.com/billlayne/mailcomposer/document"
	"github.com/billlayne/mailcomposer/store"
)

// truncate shortens a string to a max length in runes, adding "..." if
// truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// formatElapsed renders d as m:ss.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func formatSavedAt(ms int64) string {
	if ms <= 0 {
		return "???"
	}
	t := time.UnixMilli(ms)
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Local().Format("15:04")
	}
	return t.Local().Format("Jan02")
}

func templateItem(t store.Template) (main, secondary string) {
	return t.Name, fmt.Sprintf("[::d]saved %s", formatSavedAt(t.SavedAt))
}

func listItem(l store.RecipientList, selected bool) (main, secondary string) {
	main = l.Name
	if selected {
		main = "[green]" + main + " (campaign)"
	}
	n := len(l.Recipients)
	noun := "recipients"
	if n == 1 {
		noun = "recipient"
	}
	return main, fmt.Sprintf("[::d]%d %s · saved %s", n, noun, formatSavedAt(l.SavedAt))
}

func sizeSummary(kb float64, level document.Level) string {
	return fmt.Sprintf("%.1f KB (%s)", kb, level)
}
