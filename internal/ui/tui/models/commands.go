package models

import (
	"context"
	"time"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
	"github.com/PizzaHomicide/tanpen/internal/player"
	tea "github.com/charmbracelet/bubbletea"
)

// requestTimeout bounds each fetch started from the UI
const requestTimeout = 45 * time.Second

func loadCategories(feeds FeedSource, pageID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		categories, err := feeds.Categories(ctx)
		if err != nil {
			log.Error("Failed to load categories", "error", err)
		}
		return CategoriesLoadedMsg{PageID: pageID, Categories: categories, Err: err}
	}
}

func loadFeed(feeds FeedSource, pageID, seq int, category domain.Category) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		videos, err := feeds.Feed(ctx, category)
		if err != nil {
			log.Error("Failed to load feed", "category", category, "error", err)
		}
		return FeedLoadedMsg{PageID: pageID, Seq: seq, Category: category, Videos: videos, Err: err}
	}
}

func loadSavedVideos(feeds FeedSource, pageID int, bookmarks domain.BookmarkSet) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		videos, err := feeds.SavedVideos(ctx, bookmarks)
		if err != nil {
			log.Error("Failed to load saved videos", "error", err)
		}
		return SavedVideosLoadedMsg{PageID: pageID, Videos: videos, Err: err}
	}
}

func loadProfile(feeds FeedSource, pageID int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		profile, err := feeds.Profile(ctx)
		if err != nil {
			log.Error("Failed to load profile", "error", err)
		}
		return ProfileLoadedMsg{PageID: pageID, Profile: profile, Err: err}
	}
}

func syncBookmarks(store BookmarkStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return BookmarksSyncedMsg{Bookmarks: store.Sync(ctx)}
	}
}

func toggleBookmark(store BookmarkStore, uuid string, bookmarked bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		ok := store.Toggle(ctx, uuid, bookmarked)
		return BookmarkToggledMsg{UUID: uuid, Bookmarked: bookmarked, OK: ok, Bookmarks: store.Snapshot()}
	}
}

// downloadVideo runs a download started by PlaybackSession.Load or Retry
func downloadVideo(session *player.PlaybackSession, run func() player.LoadResult) tea.Cmd {
	return func() tea.Msg {
		return VideoLoadedMsg{Session: session, Result: run()}
	}
}

// startPlayback launches the external player and waits for its first event
func startPlayback(ctx context.Context, videoPlayer player.VideoPlayer, session *player.PlaybackSession, gen int, url string) tea.Cmd {
	return func() tea.Msg {
		events, err := videoPlayer.Play(ctx, url, session.Video().DisplayCaption())
		if err != nil {
			log.Error("Failed to start player", "uuid", session.Video().UUID, "error", err)
			return PlaybackStartFailedMsg{Session: session, Gen: gen, Err: err}
		}
		return waitForPlaybackEvent(session, gen, events)()
	}
}

// waitForPlaybackEvent blocks until the player reports the next event
func waitForPlaybackEvent(session *player.PlaybackSession, gen int, events <-chan player.PlaybackEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return PlaybackEventMsg{Session: session, Gen: gen, Closed: true}
		}
		return PlaybackEventMsg{Session: session, Gen: gen, Event: event, events: events}
	}
}

func togglePause(videoPlayer player.VideoPlayer) tea.Cmd {
	return func() tea.Msg {
		if err := videoPlayer.TogglePause(); err != nil {
			log.Debug("Pause toggle failed", "error", err)
			return PlayerControlErrorMsg{Err: err}
		}
		return nil
	}
}
