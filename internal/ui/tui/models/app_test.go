package models

import (
	"net"
	"testing"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/player"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app    *AppModel
	feeds  *fakeFeeds
	store  *fakeStore
	player *fakePlayer
	blobs  *player.BlobServer
}

func newReadyApp(t *testing.T) *testApp {
	t.Helper()
	ta := &testApp{
		feeds: &fakeFeeds{
			categories: []domain.Category{"a"},
			feeds:      map[string][]domain.Video{"a": {{UUID: "v1", CustomCaption: "First"}}},
			profile:    &domain.UserProfile{Status: domain.StatusPremium, Tokens: 7, Referrals: 2},
		},
		store:  &fakeStore{set: domain.NewBookmarkSet()},
		player: &fakePlayer{},
		blobs:  player.NewBlobServer(""),
	}
	ta.app = NewAppModel(Services{
		Session:   fakeSession{session: &domain.Session{InitData: "tok", User: domain.SessionUser{FirstName: "Ada"}}},
		Feeds:     ta.feeds,
		Bookmarks: ta.store,
		Blobs:     ta.blobs,
		Player:    ta.player,
	})
	ta.app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	synced, ok := find[BookmarksSyncedMsg](collect(ta.app.Init()))
	require.True(t, ok)
	ta.deliver(synced)
	require.True(t, ta.app.ready)
	return ta
}

// deliver sends msg to the app and feeds back every resulting message that is not a player event
func (ta *testApp) deliver(msg tea.Msg) {
	_, cmd := ta.app.Update(msg)
	for _, next := range collect(cmd) {
		ta.deliver(next)
	}
}

func TestApp_NoSessionGatesEverything(t *testing.T) {
	feeds := &fakeFeeds{}
	app := NewAppModel(Services{Session: fakeSession{}, Feeds: feeds, Bookmarks: &fakeStore{}})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Nil(t, app.Init())
	app.Update(key("2"))

	assert.Equal(t, ViewNoSession, app.activeView)
	assert.Contains(t, app.View(), "Open Tanpen inside the app")
	assert.Zero(t, feeds.calls)
}

func TestApp_ReadyShowsHome(t *testing.T) {
	ta := newReadyApp(t)

	assert.Equal(t, ViewHome, ta.app.activeView)
	assert.Contains(t, ta.app.View(), "First")
}

func TestApp_OptimisticBookmarkRollback(t *testing.T) {
	ta := newReadyApp(t)
	ta.store.toggleOK = false

	_, cmd := ta.app.Update(ToggleBookmarkMsg{Video: domain.Video{UUID: "v1"}})

	// The icon flips before the request completes
	assert.True(t, ta.app.bookmarks.Has("v1"))
	home := ta.app.page.(*HomeModel)
	assert.True(t, home.list.bookmarks.Has("v1"))

	toggled, ok := find[BookmarkToggledMsg](collect(cmd))
	require.True(t, ok)
	assert.False(t, toggled.OK)
	ta.deliver(toggled)

	assert.False(t, ta.app.bookmarks.Has("v1"))
	assert.False(t, home.list.bookmarks.Has("v1"))
}

func TestApp_BookmarkConfirmed(t *testing.T) {
	ta := newReadyApp(t)
	ta.store.toggleOK = true

	ta.deliver(ToggleBookmarkMsg{Video: domain.Video{UUID: "v1"}})

	assert.True(t, ta.app.bookmarks.Has("v1"))
	assert.True(t, ta.store.Snapshot().Has("v1"))
}

func TestApp_StalePageResultIgnored(t *testing.T) {
	ta := newReadyApp(t)

	_, cmd := ta.app.Update(key("3"))
	stale, ok := find[ProfileLoadedMsg](collect(cmd))
	require.True(t, ok)

	// Leave and re-enter the profile page, which mounts a new instance
	ta.deliver(key("1"))
	_, cmd = ta.app.Update(key("3"))
	fresh, ok := find[ProfileLoadedMsg](collect(cmd))
	require.True(t, ok)
	require.NotEqual(t, stale.PageID, fresh.PageID)

	ta.deliver(stale)
	profile := ta.app.page.(*ProfileModel)
	assert.True(t, profile.busy, "a result for a replaced page must not be applied")

	ta.deliver(fresh)
	assert.False(t, profile.busy)
	view := ta.app.View()
	assert.Contains(t, view, "Ada")
	assert.Contains(t, view, "Premium")
}

func TestApp_TabCyclesPages(t *testing.T) {
	ta := newReadyApp(t)

	ta.deliver(key("tab"))
	assert.Equal(t, ViewSaved, ta.app.activeView)
	assert.Contains(t, ta.app.View(), "No Saved Videos")

	ta.deliver(key("tab"))
	assert.Equal(t, ViewProfile, ta.app.activeView)

	ta.deliver(key("tab"))
	assert.Equal(t, ViewHome, ta.app.activeView)
}

func TestApp_PlayerOverlayLifecycle(t *testing.T) {
	ta := newReadyApp(t)

	_, cmd := ta.app.Update(OpenPlayerMsg{Video: domain.Video{UUID: "v1", Category: "a"}})
	require.NotNil(t, ta.app.overlay)
	loaded, ok := find[VideoLoadedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, player.StateReady, loaded.Result.State)
	assert.Equal(t, 1, ta.blobs.Len())

	_, cmd = ta.app.Update(loaded)
	started, ok := find[PlaybackEventMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, player.PlaybackStarted, started.Event.Type)
	assert.Len(t, ta.player.played, 1)

	// The follow-up wait command would block on the player, so it is not run
	ta.app.Update(started)

	_, cmd = ta.app.Update(key(" "))
	collect(cmd)
	assert.Equal(t, 1, ta.player.pauses)

	ta.app.Update(key("esc"))

	assert.Nil(t, ta.app.overlay)
	assert.Equal(t, 0, ta.blobs.Len())
	assert.Equal(t, 1, ta.player.stopped)
	assert.Equal(t, ViewHome, ta.app.activeView)
	assert.IsType(t, &HomeModel{}, ta.app.page)
}

func TestApp_BookmarkFromOverlay(t *testing.T) {
	ta := newReadyApp(t)
	ta.store.toggleOK = false
	ta.app.Update(OpenPlayerMsg{Video: domain.Video{UUID: "v1"}})

	_, cmd := ta.app.Update(key("b"))
	toggle, ok := find[ToggleBookmarkMsg](collect(cmd))
	require.True(t, ok)

	_, cmd = ta.app.Update(toggle)
	assert.True(t, ta.app.overlay.Bookmarked())

	toggled, ok := find[BookmarkToggledMsg](collect(cmd))
	require.True(t, ok)
	ta.app.Update(toggled)
	assert.False(t, ta.app.overlay.Bookmarked())

	ta.app.Update(key("q"))
	assert.Nil(t, ta.app.overlay)
}

func TestApp_HelpModal(t *testing.T) {
	ta := newReadyApp(t)

	ta.app.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, ModalHelp, ta.app.activeModal)
	assert.Contains(t, ta.app.View(), "Help: Home")

	ta.app.Update(key("esc"))
	assert.Equal(t, ModalNone, ta.app.activeModal)
}

func TestApp_PlayerReportsUnavailableBlobServer(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	ta := newReadyApp(t)
	ta.blobs = player.NewBlobServer(taken.Addr().String())
	require.Error(t, ta.blobs.Start())
	ta.app.services.Blobs = ta.blobs

	_, cmd := ta.app.Update(OpenPlayerMsg{Video: domain.Video{UUID: "v1"}})
	loaded, ok := find[VideoLoadedMsg](collect(cmd))
	require.True(t, ok)
	assert.Equal(t, player.StateFailed, loaded.Result.State)
	assert.Equal(t, player.UnavailableMessage, loaded.Result.Message)

	_, cmd = ta.app.Update(loaded)
	assert.Nil(t, cmd)
	assert.Contains(t, ta.app.View(), "Playback failed")
	assert.Empty(t, ta.player.played)
}
