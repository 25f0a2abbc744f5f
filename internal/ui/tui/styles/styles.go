package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent    = lipgloss.Color("#7D56F4")
	AccentAlt = lipgloss.Color("#9D86FF")
	Muted     = lipgloss.Color("#AAAAAA")
	Success   = lipgloss.Color("#43BF6D")
	Danger    = lipgloss.Color("#E05561")
	Gold      = lipgloss.Color("#F5C542")

	// Text styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(Accent).
		Padding(0, 1)

	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#DEDEDE"))

	Hint = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Error = lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true)

	FilterStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")).
			Padding(0, 2)

	Bookmarked = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	Premium = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(Gold).
		Bold(true).
		Padding(0, 1)

	Standard = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#555555")).
			Padding(0, 1)
)

// Layout helpers
func Header(width int, title string) string {
	return Title.
		Width(width).
		Align(lipgloss.Center).
		Render(title)
}

func ContentBox(width int, content string, padding int) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(padding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Render(content)
}

func CenteredView(width int, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func CenteredText(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}
