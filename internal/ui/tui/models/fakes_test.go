package models

import (
	"context"
	"sync"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/player"
	"github.com/PizzaHomicide/tanpen/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeSession struct {
	session *domain.Session
}

func (f fakeSession) Session() (*domain.Session, error) {
	if f.session == nil {
		return nil, session.ErrNoSession
	}
	return f.session, nil
}

type fakeFeeds struct {
	mu         sync.Mutex
	categories []domain.Category
	feeds      map[domain.Category][]domain.Video
	profile    *domain.UserProfile
	savedErr   error
	calls      int
}

func (f *fakeFeeds) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeFeeds) Categories(ctx context.Context) ([]domain.Category, error) {
	f.count()
	return f.categories, nil
}

func (f *fakeFeeds) Feed(ctx context.Context, category domain.Category) ([]domain.Video, error) {
	f.count()
	return domain.TagCategory(f.feeds[category], category), nil
}

func (f *fakeFeeds) Stream(ctx context.Context, uuid string) ([]byte, error) {
	f.count()
	return []byte("video:" + uuid), nil
}

func (f *fakeFeeds) SavedVideos(ctx context.Context, bookmarks domain.BookmarkSet) ([]domain.Video, error) {
	f.count()
	f.mu.Lock()
	err := f.savedErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var out []domain.Video
	for _, uuid := range bookmarks.UUIDs() {
		out = append(out, domain.Video{UUID: uuid})
	}
	return out, nil
}

func (f *fakeFeeds) Profile(ctx context.Context) (*domain.UserProfile, error) {
	f.count()
	return f.profile, nil
}

type fakeStore struct {
	mu       sync.Mutex
	set      domain.BookmarkSet
	toggleOK bool
}

func (f *fakeStore) Sync(ctx context.Context) domain.BookmarkSet {
	return f.Snapshot()
}

func (f *fakeStore) Toggle(ctx context.Context, uuid string, bookmarked bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toggleOK {
		f.set = f.set.Set(uuid, bookmarked)
	}
	return f.toggleOK
}

func (f *fakeStore) Snapshot() domain.BookmarkSet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}

type fakePlayer struct {
	mu      sync.Mutex
	played  []string
	pauses  int
	stopped int
	events  chan player.PlaybackEvent
}

func (f *fakePlayer) Play(ctx context.Context, url, title string) (<-chan player.PlaybackEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played = append(f.played, url)
	f.events = make(chan player.PlaybackEvent, 4)
	f.events <- player.PlaybackEvent{Type: player.PlaybackStarted}
	return f.events, nil
}

func (f *fakePlayer) TogglePause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakePlayer) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
	return nil
}

func (f *fakePlayer) Cleanup() {}

// collect runs cmd and any batched commands it returns, gathering the resulting messages.  Spinner ticks are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func find[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
