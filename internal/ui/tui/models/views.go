package models

import (
	"sync/atomic"

	"github.com/PizzaHomicide/tanpen/internal/log"
	tea "github.com/charmbracelet/bubbletea"
)

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewNoSession  View = "no-session"
	ViewConnecting View = "connecting"
	ViewHome       View = "home"
	ViewSaved      View = "saved"
	ViewProfile    View = "profile"
	ViewPlayer     View = "player"
	ViewHelp       View = "help"
)

// pages are the views reachable from the navigation bar, in tab order
var pages = []View{ViewHome, ViewSaved, ViewProfile}

var pageCounter atomic.Int64

// nextPageID returns a fresh page instance id.  Results tagged with an older id belong to a page that has since been
// replaced and are ignored.
func nextPageID() int {
	return int(pageCounter.Add(1))
}

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone Modal = "none"
	ModalHelp Modal = "help"
)

// Model is implemented by every child model the AppModel delegates to
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	Resize(width, height int)
	ViewType() View
}

// HandledMsg signals that a key press was consumed by a child model
type HandledMsg struct {
	Reason string
}

// Handled returns a command reporting that a message was consumed, so parents stop looking for another handler
func Handled(reason string) tea.Cmd {
	return func() tea.Msg {
		log.Trace("Message handled", "reason", reason)
		return HandledMsg{Reason: reason}
	}
}
