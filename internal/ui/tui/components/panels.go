package components

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/util"
	"github.com/charmbracelet/lipgloss"
)

// NavItem is one entry of the navigation bar
type NavItem struct {
	Key    string
	Label  string
	Active bool
}

// NavBar renders the page tabs
func NavBar(width int, items []NavItem) string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Accent).
		Padding(0, 2)
	inactive := lipgloss.NewStyle().
		Foreground(styles.Muted).
		Padding(0, 2)

	tabs := make([]string, 0, len(items))
	for _, item := range items {
		label := fmt.Sprintf("%s %s", item.Key, item.Label)
		if item.Active {
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	return styles.CenteredText(width, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// ErrorPanel shows a failure that blocks a view's content, with the key that retries it
func ErrorPanel(width int, title, message, retryKey string) string {
	contentWidth := min(max(width-20, 30), 70)

	var b strings.Builder
	b.WriteString(styles.Error.Render(title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(contentWidth - 6).Render(message))
	if retryKey != "" {
		b.WriteString("\n\n")
		b.WriteString(KeyBindingsBar(contentWidth-6, []KeyBinding{{Key: retryKey, Desc: "Try again"}}))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Danger).
		Padding(1, 3).
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(b.String())
	return styles.CenteredText(width, box)
}

// EmptyState shows a centered hint when a list has nothing in it
func EmptyState(width int, title, hint string) string {
	content := lipgloss.NewStyle().Bold(true).Render(title)
	if hint != "" {
		content += "\n\n" + styles.Hint.Render(hint)
	}
	return styles.CenteredText(width, content)
}

// VideoRow renders one line of a video list
func VideoRow(width int, video domain.Video, bookmarked, selected, showCategory bool) string {
	icon := "☆"
	if bookmarked {
		icon = styles.Bookmarked.Render("★")
	}

	categoryWidth := 0
	if showCategory {
		categoryWidth = min(20, width/4)
	}
	captionWidth := max(width-categoryWidth-6, 1)

	line := fmt.Sprintf("%s %s", icon, util.PadRight(video.DisplayCaption(), captionWidth))
	if showCategory {
		line += " " + styles.Hint.Render(util.PadRight(video.Category, categoryWidth))
	}

	style := lipgloss.NewStyle().Width(width).Padding(0, 1)
	if selected {
		style = style.Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(styles.Accent)
	}
	return style.Render(line)
}
