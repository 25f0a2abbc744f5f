package models

import (
	"fmt"
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/tanpen/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HomeModel shows the category tabs and the feed of the selected category
type HomeModel struct {
	pageID        int
	feeds         FeedSource
	width, height int

	loading *LoadingModel

	categoriesLoading bool
	categoriesErr     error
	categories        []domain.Category
	selected          int

	// feedSeq identifies the newest feed request.  Responses for older requests are dropped.
	feedSeq     int
	feedLoading bool
	feedErr     error

	list *videoList
}

func NewHomeModel(feeds FeedSource, bookmarks domain.BookmarkSet) *HomeModel {
	return &HomeModel{
		pageID:            nextPageID(),
		feeds:             feeds,
		loading:           NewLoadingModel("Loading Categories..."),
		categoriesLoading: true,
		list:              newVideoList(bookmarks, false),
	}
}

func (m *HomeModel) ViewType() View {
	return ViewHome
}

func (m *HomeModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), loadCategories(m.feeds, m.pageID))
}

func (m *HomeModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.loading.Resize(width, height)
	// Category tabs take two lines
	m.list.Resize(width, height-2)
}

// CapturingInput reports whether typed keys belong to the search input
func (m *HomeModel) CapturingInput() bool {
	return m.list.Searching()
}

// SelectedCategory returns the category whose feed is shown
func (m *HomeModel) SelectedCategory() (domain.Category, bool) {
	if m.selected < 0 || m.selected >= len(m.categories) {
		return "", false
	}
	return m.categories[m.selected], true
}

// Videos returns the feed currently displayed
func (m *HomeModel) Videos() []domain.Video {
	return m.list.videos
}

func (m *HomeModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if m.categoriesLoading || m.feedLoading {
			_, cmd := m.loading.Update(msg)
			return m, cmd
		}
		return m, nil

	case CategoriesLoadedMsg:
		if msg.PageID != m.pageID {
			return m, nil
		}
		m.categoriesLoading = false
		m.categoriesErr = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.categories = msg.Categories
		m.selected = 0
		if len(m.categories) == 0 {
			return m, nil
		}
		return m, m.fetchFeed()

	case FeedLoadedMsg:
		if msg.PageID != m.pageID || msg.Seq != m.feedSeq {
			log.Debug("Discarding stale feed", "category", msg.Category, "seq", msg.Seq, "current_seq", m.feedSeq)
			return m, nil
		}
		m.feedLoading = false
		m.feedErr = msg.Err
		if msg.Err == nil {
			m.list.SetVideos(msg.Videos)
		}
		return m, nil

	case BookmarksChangedMsg:
		m.list.SetBookmarks(msg.Bookmarks)
		return m, nil
	}

	return m, nil
}

func (m *HomeModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.list.Searching() {
		return m.list.handleSearchKey(msg)
	}

	switch kb.GetActionByKey(msg, kb.ContextHome) {
	case kb.ActionPrevCategory:
		return m.selectCategory(m.selected - 1)
	case kb.ActionNextCategory:
		return m.selectCategory(m.selected + 1)
	case kb.ActionRetry:
		return m.retry()
	}

	if m.categoriesLoading || m.categoriesErr != nil {
		return nil
	}
	return m.list.handleKey(msg, kb.ContextHome)
}

// selectCategory switches to the category at index i, wrapping around, and fetches its feed
func (m *HomeModel) selectCategory(i int) tea.Cmd {
	if len(m.categories) == 0 {
		return nil
	}
	i = (i + len(m.categories)) % len(m.categories)
	if i == m.selected && !m.feedLoading && m.feedErr == nil && m.list.videos != nil {
		return Handled("category:unchanged")
	}
	m.selected = i
	return m.fetchFeed()
}

func (m *HomeModel) retry() tea.Cmd {
	if m.categoriesErr != nil || len(m.categories) == 0 {
		log.Info("Reloading categories")
		// Replies to earlier category loads now carry a stale page id
		m.pageID = nextPageID()
		m.feedSeq = 0
		m.categoriesLoading = true
		m.categoriesErr = nil
		m.loading = NewLoadingModel("Loading Categories...")
		m.loading.Resize(m.width, m.height)
		return tea.Batch(m.loading.Init(), loadCategories(m.feeds, m.pageID))
	}
	return m.fetchFeed()
}

// fetchFeed starts a fresh fetch of the selected category.  Any response to an earlier request is now stale.
func (m *HomeModel) fetchFeed() tea.Cmd {
	category, ok := m.SelectedCategory()
	if !ok {
		return nil
	}
	m.feedSeq++
	m.feedLoading = true
	m.feedErr = nil
	m.list.SetVideos(nil)
	m.loading = NewLoadingModel(fmt.Sprintf("Loading %s...", category))
	m.loading.Resize(m.width, m.height)
	return tea.Batch(m.loading.Init(), loadFeed(m.feeds, m.pageID, m.feedSeq, category))
}

func (m *HomeModel) View() string {
	if m.categoriesLoading {
		return m.loading.Inline()
	}
	if m.categoriesErr != nil {
		return components.ErrorPanel(m.width, "Could not load categories",
			api.UserMessage(m.categoriesErr, "Failed to load categories."), "r")
	}
	if len(m.categories) == 0 {
		return components.EmptyState(m.width, "No categories available", "Press r to reload.")
	}

	var b strings.Builder
	b.WriteString(m.renderCategoryTabs())
	b.WriteString("\n\n")

	switch {
	case m.feedLoading:
		b.WriteString(m.loading.Inline())
	case m.feedErr != nil:
		b.WriteString(components.ErrorPanel(m.width, "Could not load videos",
			api.UserMessage(m.feedErr, "Failed to load videos."), "r"))
	default:
		b.WriteString(m.list.View(components.EmptyState(m.width, "No videos in this category yet.", "")))
	}
	return b.String()
}

// renderCategoryTabs renders the category strip, keeping the selected category in view
func (m *HomeModel) renderCategoryTabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(styles.Accent).Underline(true)
	inactive := lipgloss.NewStyle().Foreground(styles.Muted)

	tabs := make([]string, len(m.categories))
	for i, category := range m.categories {
		if i == m.selected {
			tabs[i] = active.Render(category)
		} else {
			tabs[i] = inactive.Render(category)
		}
	}

	// Drop tabs from the left until the strip fits and the selection is still visible
	start := 0
	for start < m.selected && lipgloss.Width(strings.Join(tabs[start:], "   ")) > m.width-4 {
		start++
	}
	strip := strings.Join(tabs[start:], "   ")
	if start > 0 {
		strip = "‹ " + strip
	}
	return lipgloss.NewStyle().Padding(0, 2).MaxWidth(m.width).Render(strip)
}
