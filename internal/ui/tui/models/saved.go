package models

import (
	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/tanpen/internal/ui/tui/keybindings"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SavedModel lists the bookmarked videos, rebuilt from the category feeds
type SavedModel struct {
	pageID        int
	feeds         FeedSource
	width, height int

	bookmarks domain.BookmarkSet
	loading   *LoadingModel
	busy      bool
	err       error
	list      *videoList
}

func NewSavedModel(feeds FeedSource, bookmarks domain.BookmarkSet) *SavedModel {
	return &SavedModel{
		pageID:    nextPageID(),
		feeds:     feeds,
		bookmarks: bookmarks,
		loading:   NewLoadingModel("Loading saved videos..."),
		busy:      true,
		list:      newVideoList(bookmarks, true),
	}
}

func (m *SavedModel) ViewType() View {
	return ViewSaved
}

func (m *SavedModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), loadSavedVideos(m.feeds, m.pageID, m.bookmarks))
}

func (m *SavedModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.loading.Resize(width, height)
	m.list.Resize(width, height)
}

func (m *SavedModel) CapturingInput() bool {
	return m.list.Searching()
}

func (m *SavedModel) Videos() []domain.Video {
	return m.list.videos
}

// reload refetches under a new page id, so replies to earlier loads are dropped
func (m *SavedModel) reload() tea.Cmd {
	m.pageID = nextPageID()
	m.busy = true
	m.err = nil
	m.loading = NewLoadingModel("Loading saved videos...")
	m.loading.Resize(m.width, m.height)
	return m.Init()
}

func (m *SavedModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.list.Searching() && kb.GetActionByKey(msg, kb.ContextSaved) == kb.ActionRetry {
			return m, m.reload()
		}
		if m.busy || m.err != nil {
			return m, nil
		}
		return m, m.list.handleKey(msg, kb.ContextSaved)

	case spinner.TickMsg:
		if m.busy {
			_, cmd := m.loading.Update(msg)
			return m, cmd
		}
		return m, nil

	case SavedVideosLoadedMsg:
		if msg.PageID != m.pageID {
			return m, nil
		}
		m.busy = false
		m.err = msg.Err
		if msg.Err == nil {
			m.list.SetVideos(msg.Videos)
		}
		return m, nil

	case BookmarksChangedMsg:
		m.list.SetBookmarks(msg.Bookmarks)
		if msg.Bookmarks.Equal(m.bookmarks) {
			return m, nil
		}
		m.bookmarks = msg.Bookmarks
		return m, m.reload()
	}
	return m, nil
}

func (m *SavedModel) View() string {
	if m.busy {
		return m.loading.Inline()
	}
	if m.err != nil {
		return components.ErrorPanel(m.width, "Could not load saved videos",
			api.UserMessage(m.err, "Failed to load saved videos."), "r")
	}
	return m.list.View(components.EmptyState(m.width, "No Saved Videos",
		"Press b on any video to save it here."))
}
