package components

import (
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one entry of a footer hint bar
type KeyBinding struct {
	Key  string
	Desc string
}

var keyStyle = lipgloss.NewStyle().
	Foreground(styles.Accent).
	Bold(true)

const keySeparator = " • "

// KeyBindingsBar renders a centred footer of key hints.  Hints that do not fit in width are dropped from the end, so
// the most important ones should come first.
func KeyBindingsBar(width int, bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	used := 0
	for _, b := range bindings {
		part := keyStyle.Render(b.Key) + " " + b.Desc
		extra := lipgloss.Width(part)
		if len(parts) > 0 {
			extra += lipgloss.Width(keySeparator)
		}
		if width > 0 && len(parts) > 0 && used+extra > width {
			break
		}
		parts = append(parts, part)
		used += extra
	}

	return styles.CenteredText(width, styles.Info.Render(strings.Join(parts, keySeparator)))
}
