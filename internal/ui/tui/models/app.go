package models

import (
	"errors"
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
	"github.com/PizzaHomicide/tanpen/internal/player"
	"github.com/PizzaHomicide/tanpen/internal/session"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/tanpen/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/PizzaHomicide/tanpen/internal/version"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the main application model that coordinates all child models.  It owns navigation, the bookmark
// snapshot shown by every view, and the player overlay.
type AppModel struct {
	services      Services
	activeView    View  // Track the current active 'main view'
	activeModal   Modal // Track the current active 'modal overlay' if any
	width, height int

	session   *domain.Session
	ready     bool
	bookmarks domain.BookmarkSet

	connecting *LoadingModel
	page       Model
	overlay    *PlayerModel
	helpModel  *HelpModel
}

// NewAppModel creates a new instance of the main application model
func NewAppModel(services Services) *AppModel {
	if services.Haptics == nil {
		services.Haptics = session.NopHaptics{}
	}
	return &AppModel{
		services:    services,
		activeView:  ViewConnecting,
		activeModal: ModalNone,
		bookmarks:   domain.NewBookmarkSet(),
		connecting:  NewLoadingModel("Connecting...").WithTitle("Tanpen"),
	}
}

func (m *AppModel) Init() tea.Cmd {
	log.Info("Initialising Tanpen TUI")

	sess, err := m.services.Session.Session()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Error("Unable to read host session", "error", err)
		}
		m.activeView = ViewNoSession
		return nil
	}
	m.session = sess

	// Readiness waits for the first bookmark sync, which never fails outright
	return tea.Batch(m.connecting.Init(), syncBookmarks(m.services.Bookmarks))
}

// Update handles messages and updates the models as appropriate
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		log.Debug("Window size changed", "old_width", m.width, "new_width", msg.Width, "old_height", m.height, "new_height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height
		m.resizeAll()
		return m, nil

	case HandledMsg:
		return m, nil

	case spinner.TickMsg:
		// Spinners ignore ticks addressed to other spinners, so every visible one gets the tick
		var cmds []tea.Cmd
		if !m.ready {
			_, cmd := m.connecting.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.page != nil {
			_, cmd := m.page.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.overlay != nil {
			_, cmd := m.overlay.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case BookmarksSyncedMsg:
		if m.ready {
			return m, nil
		}
		log.Info("Ready", "bookmarks", msg.Bookmarks.Len())
		m.ready = true
		m.bookmarks = msg.Bookmarks
		return m, m.switchPage(ViewHome)

	case ToggleBookmarkMsg:
		return m, m.toggleBookmark(msg.Video)

	case BookmarkToggledMsg:
		if !msg.OK {
			log.Warn("Bookmark change reverted", "uuid", msg.UUID)
		}
		return m, m.setBookmarks(msg.Bookmarks)

	case OpenPlayerMsg:
		return m, m.openPlayer(msg.Video)

	case VideoLoadedMsg, PlaybackEventMsg, PlaybackStartFailedMsg, PlayerControlErrorMsg:
		if m.overlay == nil {
			return m, nil
		}
		_, cmd := m.overlay.Update(msg)
		return m, cmd
	}

	// Everything else belongs to the active page
	if m.page != nil {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kb.GetActionByKey(msg, kb.ContextGlobal) {
	case kb.ActionQuit:
		log.Info("Quit command received.  Shutting down...")
		m.closePlayer()
		return m, tea.Quit
	case kb.ActionToggleHelp:
		log.Debug("Help requested", "active_view", m.currentView())
		if m.activeModal != ModalNone {
			m.activeModal = ModalNone
		} else {
			m.helpModel = NewHelpModel(m.currentView())
			m.helpModel.Resize(m.width, m.height)
			m.activeModal = ModalHelp
		}
		return m, nil
	case kb.ActionBack:
		if m.activeModal != ModalNone {
			m.activeModal = ModalNone
			return m, nil
		}
	}

	if m.activeModal == ModalHelp {
		_, cmd := m.helpModel.Update(msg)
		return m, cmd
	}

	if !m.ready {
		return m, nil
	}

	if m.overlay != nil {
		if kb.GetActionByKey(msg, kb.ContextPlayer) == kb.ActionClosePlayer {
			m.closePlayer()
			return m, nil
		}
		_, cmd := m.overlay.Update(msg)
		return m, cmd
	}

	if !m.pageCapturingInput() {
		switch kb.GetActionByKey(msg, kb.ContextPages) {
		case kb.ActionPageHome:
			return m, m.switchPage(ViewHome)
		case kb.ActionPageSaved:
			return m, m.switchPage(ViewSaved)
		case kb.ActionPageProfile:
			return m, m.switchPage(ViewProfile)
		case kb.ActionNextPage:
			return m, m.switchPage(nextPage(m.activeView))
		}
	}

	if m.page != nil {
		var cmd tea.Cmd
		m.page, cmd = m.page.Update(msg)
		return m, cmd
	}
	return m, nil
}

// currentView is the view the user is looking at, ignoring the help modal
func (m *AppModel) currentView() View {
	if m.overlay != nil {
		return ViewPlayer
	}
	return m.activeView
}

func (m *AppModel) pageCapturingInput() bool {
	capturer, ok := m.page.(interface{ CapturingInput() bool })
	return ok && capturer.CapturingInput()
}

func nextPage(current View) View {
	for i, page := range pages {
		if page == current {
			return pages[(i+1)%len(pages)]
		}
	}
	return pages[0]
}

// switchPage mounts a fresh instance of the target page, which refetches its content
func (m *AppModel) switchPage(target View) tea.Cmd {
	if m.page != nil && target == m.activeView {
		return nil
	}
	m.services.Haptics.SelectionChanged()
	log.Debug("Switching page", "from", m.activeView, "to", target)

	switch target {
	case ViewSaved:
		m.page = NewSavedModel(m.services.Feeds, m.bookmarks)
	case ViewProfile:
		m.page = NewProfileModel(m.services.Feeds, m.session)
	default:
		target = ViewHome
		m.page = NewHomeModel(m.services.Feeds, m.bookmarks)
	}
	m.activeView = target
	m.page.Resize(m.pageSize())
	return m.page.Init()
}

// toggleBookmark flips the bookmark of video in the snapshot right away and asks the store to persist it.  The
// store's answer replaces the snapshot, which reverts the change when the request failed.
func (m *AppModel) toggleBookmark(video domain.Video) tea.Cmd {
	desired := !m.bookmarks.Has(video.UUID)
	m.services.Haptics.ImpactOccurred(session.ImpactLight)
	cmd := m.setBookmarks(m.bookmarks.Set(video.UUID, desired))
	return tea.Batch(cmd, toggleBookmark(m.services.Bookmarks, video.UUID, desired))
}

// setBookmarks replaces the snapshot and tells the visible views about it
func (m *AppModel) setBookmarks(bookmarks domain.BookmarkSet) tea.Cmd {
	changed := !bookmarks.Equal(m.bookmarks)
	m.bookmarks = bookmarks
	if m.overlay != nil {
		m.overlay.SetBookmarked(bookmarks.Has(m.overlay.Video().UUID))
	}
	if !changed || m.page == nil {
		return nil
	}
	var cmd tea.Cmd
	m.page, cmd = m.page.Update(BookmarksChangedMsg{Bookmarks: bookmarks})
	return cmd
}

func (m *AppModel) openPlayer(video domain.Video) tea.Cmd {
	m.closePlayer()
	log.Info("Opening player", "uuid", video.UUID, "category", video.Category)
	m.services.Haptics.ImpactOccurred(session.ImpactMedium)

	playback := player.NewPlaybackSession(video, m.services.Feeds, m.services.Blobs)
	m.overlay = NewPlayerModel(playback, m.services.Player, m.bookmarks.Has(video.UUID))
	m.overlay.Resize(m.width, m.height)
	return m.overlay.Init()
}

// closePlayer tears the overlay down and returns to the page underneath, which is left as it was
func (m *AppModel) closePlayer() {
	if m.overlay == nil {
		return
	}
	log.Debug("Closing player", "uuid", m.overlay.Video().UUID)
	m.overlay.Close()
	m.overlay = nil
}

func (m *AppModel) pageSize() (int, int) {
	// Header, nav bar, spacer and footer
	return m.width, max(m.height-5, 1)
}

func (m *AppModel) resizeAll() {
	m.connecting.Resize(m.width, m.height)
	if m.helpModel != nil {
		m.helpModel.Resize(m.width, m.height)
	}
	if m.page != nil {
		m.page.Resize(m.pageSize())
	}
	if m.overlay != nil {
		m.overlay.Resize(m.width, m.height)
	}
}

func (m *AppModel) View() string {
	if m.activeModal == ModalHelp && m.helpModel != nil {
		return m.helpModel.View()
	}

	switch {
	case m.activeView == ViewNoSession:
		return m.noSessionView()
	case !m.ready:
		return m.connecting.View()
	case m.overlay != nil:
		return m.overlay.View()
	}

	header := styles.Header(m.width, "Tanpen")
	nav := components.NavBar(m.width, []components.NavItem{
		{Key: "1", Label: "Home", Active: m.activeView == ViewHome},
		{Key: "2", Label: "Saved", Active: m.activeView == ViewSaved},
		{Key: "3", Label: "Profile", Active: m.activeView == ViewProfile},
	})

	_, pageHeight := m.pageSize()
	body := lipgloss.NewStyle().Height(pageHeight).MaxHeight(pageHeight).Render(m.page.View())

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "enter", Desc: "Play"},
		{Key: "b", Desc: "Save"},
		{Key: "/", Desc: "Search"},
		{Key: "ctrl+h", Desc: "Help"},
		{Key: "ctrl+c", Desc: "Quit"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, "", body, footer)
}

func (m *AppModel) noSessionView() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(styles.AccentAlt).Render("Open Tanpen inside the app"))
	b.WriteString("\n\n")
	b.WriteString("Tanpen needs the session the host app provides when it launches a mini-app.\n")
	b.WriteString("No session was found, so nothing can be loaded.")
	b.WriteString("\n\n")
	b.WriteString(styles.Hint.Render("Launch Tanpen from the host app, or set TANPEN_CONFIG_SESSION_INIT_DATA."))
	b.WriteString("\n\n")
	b.WriteString(styles.Hint.Render(version.GetVersionInfo()))
	b.WriteString("\n\n")
	b.WriteString(components.KeyBindingsBar(60, []components.KeyBinding{{Key: "ctrl+c", Desc: "Quit"}}))

	box := styles.ContentBox(min(max(m.width-20, 40), 80), b.String(), 1)
	return styles.CenteredView(m.width, m.height, box)
}
