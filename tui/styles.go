package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Video progress view
	AppStyle        = lipgloss.NewStyle().Padding(1, 2)
	TitleStyle      = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("63")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	PromptStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})
	ContentBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	HeaderKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	HistoryStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "238"})
	HintStyle       = lipgloss.NewStyle().Faint(true)

	StatusBarSuccessStyle = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	StatusBarNormalStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	StatusBarErrorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("196")).Foreground(lipgloss.Color("255")).Padding(0, 1)
)

// toastLevel selects the status bar color of the compose app.
type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastWarn
	toastError
)

func (l toastLevel) tag() string {
	switch l {
	case toastSuccess:
		return "[green]"
	case toastWarn:
		return "[yellow]"
	case toastError:
		return "[red]"
	}
	return "[::d]"
}
