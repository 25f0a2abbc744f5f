package models

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/tanpen/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ProfileModel shows the user's account summary.  It is fetched fresh every time the page is opened.
type ProfileModel struct {
	pageID        int
	feeds         FeedSource
	session       *domain.Session
	width, height int

	loading *LoadingModel
	busy    bool
	err     error
	profile *domain.UserProfile
}

func NewProfileModel(feeds FeedSource, session *domain.Session) *ProfileModel {
	return &ProfileModel{
		pageID:  nextPageID(),
		feeds:   feeds,
		session: session,
		loading: NewLoadingModel("Loading profile..."),
		busy:    true,
	}
}

func (m *ProfileModel) ViewType() View {
	return ViewProfile
}

func (m *ProfileModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), loadProfile(m.feeds, m.pageID))
}

func (m *ProfileModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.loading.Resize(width, height)
}

func (m *ProfileModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if kb.GetActionByKey(msg, kb.ContextProfile) == kb.ActionRetry && !m.busy {
			m.busy = true
			m.err = nil
			return m, m.Init()
		}
	case spinner.TickMsg:
		if m.busy {
			_, cmd := m.loading.Update(msg)
			return m, cmd
		}
	case ProfileLoadedMsg:
		if msg.PageID != m.pageID {
			return m, nil
		}
		m.busy = false
		m.err = msg.Err
		m.profile = msg.Profile
	}
	return m, nil
}

func (m *ProfileModel) View() string {
	if m.busy {
		return m.loading.Inline()
	}
	if m.err != nil || m.profile == nil {
		return components.ErrorPanel(m.width, "Could not load profile",
			api.UserMessage(m.err, "Failed to load profile."), "r")
	}

	badge := styles.Standard.Render(string(domain.StatusStandard))
	if m.profile.IsPremium() {
		badge = styles.Premium.Render("★ " + string(domain.StatusPremium))
	}

	label := lipgloss.NewStyle().Foreground(styles.Muted).Width(16)
	value := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.AccentAlt).Render(m.session.DisplayName()))
	b.WriteString("  ")
	b.WriteString(badge)
	b.WriteString("\n\n")
	b.WriteString(label.Render("Active tokens") + value.Render(fmt.Sprintf("%d", m.profile.Tokens)))
	b.WriteString("\n")
	b.WriteString(label.Render("Referrals") + value.Render(fmt.Sprintf("%d", m.profile.Referrals)))

	boxWidth := min(max(m.width-20, 30), 60)
	return styles.CenteredText(m.width, styles.ContentBox(boxWidth, b.String(), 1))
}
