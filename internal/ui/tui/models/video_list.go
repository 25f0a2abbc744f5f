package models

import (
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/tanpen/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// videoList is the scrollable, searchable list of videos shared by the home and saved pages
type videoList struct {
	width, height int
	videos        []domain.Video
	filtered      []domain.Video
	bookmarks     domain.BookmarkSet
	cursor        int
	offset        int
	showCategory  bool
	searchInput   textinput.Model
	searchMode    bool
}

func newVideoList(bookmarks domain.BookmarkSet, showCategory bool) *videoList {
	input := textinput.New()
	input.Placeholder = "Search captions..."
	input.Width = 30

	return &videoList{
		bookmarks:    bookmarks,
		showCategory: showCategory,
		searchInput:  input,
	}
}

func (l *videoList) SetVideos(videos []domain.Video) {
	l.videos = videos
	l.applyFilter()
}

func (l *videoList) SetBookmarks(bookmarks domain.BookmarkSet) {
	l.bookmarks = bookmarks
}

func (l *videoList) Resize(width, height int) {
	l.width = width
	l.height = height
}

// Len is the number of videos currently visible (after filtering)
func (l *videoList) Len() int {
	return len(l.filtered)
}

// Selected returns the video under the cursor
func (l *videoList) Selected() (domain.Video, bool) {
	if l.cursor < 0 || l.cursor >= len(l.filtered) {
		return domain.Video{}, false
	}
	return l.filtered[l.cursor], true
}

// Searching reports whether the search input has focus
func (l *videoList) Searching() bool {
	return l.searchMode
}

// Query returns the active search filter
func (l *videoList) Query() string {
	return l.searchInput.Value()
}

// applyFilter narrows the videos down to those whose caption fuzzy matches the query
func (l *videoList) applyFilter() {
	query := strings.TrimSpace(l.searchInput.Value())
	if query == "" {
		l.filtered = l.videos
	} else {
		l.filtered = make([]domain.Video, 0, len(l.videos))
		for _, video := range l.videos {
			if fuzzy.MatchNormalizedFold(query, video.DisplayCaption()) {
				l.filtered = append(l.filtered, video)
			}
		}
	}
	if l.cursor >= len(l.filtered) {
		l.cursor = max(len(l.filtered)-1, 0)
	}
	l.clampOffset()
}

func (l *videoList) visibleRows() int {
	return max(l.height-2, 1)
}

func (l *videoList) clampOffset() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
	l.offset = max(min(l.offset, len(l.filtered)-rows), 0)
}

func (l *videoList) moveCursor(delta int) {
	if len(l.filtered) == 0 {
		return
	}
	l.cursor = max(min(l.cursor+delta, len(l.filtered)-1), 0)
	l.clampOffset()
}

// handleSearchKey processes keys while the search input has focus.  It always consumes the key.
func (l *videoList) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		// Cancels search, clearing the filter
		l.searchMode = false
		l.searchInput.SetValue("")
		l.searchInput.Blur()
		l.applyFilter()
		return Handled("search:exit")
	case kb.ActionSearchComplete:
		l.searchMode = false
		l.searchInput.Blur()
		l.applyFilter()
		return Handled("search:apply")
	}

	var cmd tea.Cmd
	l.searchInput, cmd = l.searchInput.Update(msg)
	// Filter as we type
	l.applyFilter()
	if cmd == nil {
		cmd = Handled("search:input")
	}
	return cmd
}

// handleKey processes list keys for the given context.  Returns nil when the key is not a list key.
func (l *videoList) handleKey(msg tea.KeyMsg, context kb.ContextName) tea.Cmd {
	if l.searchMode {
		return l.handleSearchKey(msg)
	}

	switch kb.GetActionByKey(msg, context) {
	case kb.ActionMoveUp:
		l.moveCursor(-1)
		return Handled("cursor_move:up")
	case kb.ActionMoveDown:
		l.moveCursor(1)
		return Handled("cursor_move:down")
	case kb.ActionPageUp:
		l.moveCursor(-l.visibleRows())
		return Handled("cursor_move:page_up")
	case kb.ActionPageDown:
		l.moveCursor(l.visibleRows())
		return Handled("cursor_move:page_down")
	case kb.ActionMoveTop:
		l.moveCursor(-len(l.filtered))
		return Handled("cursor_move:top")
	case kb.ActionMoveBottom:
		l.moveCursor(len(l.filtered))
		return Handled("cursor_move:bottom")
	case kb.ActionEnableSearch:
		l.searchMode = true
		return l.searchInput.Focus()
	case kb.ActionSelectVideo:
		if video, ok := l.Selected(); ok {
			return func() tea.Msg { return OpenPlayerMsg{Video: video} }
		}
		return Handled("select:empty")
	case kb.ActionToggleBookmark:
		if video, ok := l.Selected(); ok {
			return func() tea.Msg { return ToggleBookmarkMsg{Video: video} }
		}
		return Handled("bookmark:empty")
	}
	return nil
}

// View renders the list.  emptyView is shown when there are no videos at all.
func (l *videoList) View(emptyView string) string {
	var b strings.Builder

	if l.searchMode || l.Query() != "" {
		b.WriteString(styles.FilterStatus.Render("Search: " + l.searchInput.View()))
		b.WriteString("\n")
	}

	if len(l.videos) == 0 {
		b.WriteString(emptyView)
		return b.String()
	}
	if len(l.filtered) == 0 {
		b.WriteString(components.EmptyState(l.width, "No matches", "No captions match \""+l.Query()+"\""))
		return b.String()
	}

	end := min(l.offset+l.visibleRows(), len(l.filtered))
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		video := l.filtered[i]
		rows = append(rows, components.VideoRow(l.width, video, l.bookmarks.Has(video.UUID), i == l.cursor, l.showCategory))
	}
	b.WriteString(strings.Join(rows, "\n"))
	return b.String()
}
