package models

import (
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingModel displays a loading indicator with contextual messages
type LoadingModel struct {
	width, height int
	title         string // Optional title for the loading box
	message       string // Primary message displayed with the spinner
	contextInfo   string // Optional additional context
	spinner       spinner.Model
}

// NewLoadingModel creates a new loading model with the required message
func NewLoadingModel(message string) *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	return &LoadingModel{
		message: message,
		spinner: s,
	}
}

// WithTitle adds an optional title to the loading box
func (m *LoadingModel) WithTitle(title string) *LoadingModel {
	m.title = title
	return m
}

// WithContextInfo adds additional context information
func (m *LoadingModel) WithContextInfo(info string) *LoadingModel {
	m.contextInfo = info
	return m
}

func (m *LoadingModel) Message() string {
	return m.message
}

func (m *LoadingModel) ViewType() View {
	return ViewConnecting
}

// Init starts the spinner
func (m *LoadingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner.  Ticks addressed to other spinners are ignored by the spinner itself.
func (m *LoadingModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}
	return m, nil
}

// View renders the loading box centered in the available space
func (m *LoadingModel) View() string {
	return styles.CenteredView(m.width, m.height, m.box())
}

// Inline renders the loading box centered horizontally only, for use inside a page
func (m *LoadingModel) Inline() string {
	return styles.CenteredText(m.width, m.box())
}

func (m *LoadingModel) box() string {
	// Not too wide, not too narrow
	contentWidth := min(m.width-20, 80)
	if contentWidth < 40 {
		contentWidth = min(m.width-4, 40)
	}
	contentWidth = max(contentWidth, 10)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(styles.AccentAlt).
		Bold(true).
		PaddingRight(1)

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	centerStyle := lipgloss.NewStyle().
		Width(contentWidth - 6). // Account for padding
		Align(lipgloss.Center)

	var contentBuilder strings.Builder
	primaryRow := spinnerStyle.Render(m.spinner.View()) + " " + messageStyle.Render(m.message)
	contentBuilder.WriteString(centerStyle.Render(primaryRow))

	if m.contextInfo != "" {
		contentBuilder.WriteString("\n\n")
		contentBuilder.WriteString(centerStyle.Foreground(styles.Muted).Italic(true).Render(m.contextInfo))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.AccentAlt).
		Padding(1, 3).
		Width(contentWidth)

	if m.title == "" {
		return boxStyle.Render(contentBuilder.String())
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Accent).
		Padding(0, 2).
		Align(lipgloss.Center).
		Width(contentWidth)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render(m.title),
		boxStyle.Render(contentBuilder.String()),
	)
}

// Resize updates the dimensions of the loading model
func (m *LoadingModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
