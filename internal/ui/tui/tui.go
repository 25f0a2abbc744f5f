package tui

import (
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI and blocks until the user quits
func Run(services models.Services) error {
	p := tea.NewProgram(models.NewAppModel(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
