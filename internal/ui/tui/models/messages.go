package models

import (
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/player"
)

// BookmarksSyncedMsg is sent once the initial bookmark sync has finished, successfully or not
type BookmarksSyncedMsg struct {
	Bookmarks domain.BookmarkSet
}

// BookmarksChangedMsg is sent to the active page when the held bookmark set changed
type BookmarksChangedMsg struct {
	Bookmarks domain.BookmarkSet
}

// ToggleBookmarkMsg asks the app to toggle the bookmark of a video.  Pages and the player overlay emit it, the app
// owns the bookmark state.
type ToggleBookmarkMsg struct {
	Video domain.Video
}

// BookmarkToggledMsg reports the outcome of a toggle request
type BookmarkToggledMsg struct {
	UUID       string
	Bookmarked bool
	OK         bool
	Bookmarks  domain.BookmarkSet
}

// OpenPlayerMsg asks the app to open the player overlay for a video
type OpenPlayerMsg struct {
	Video domain.Video
}

// CategoriesLoadedMsg carries the category list for a home page instance
type CategoriesLoadedMsg struct {
	PageID     int
	Categories []domain.Category
	Err        error
}

// FeedLoadedMsg carries one category feed.  Seq identifies the request so stale responses can be dropped.
type FeedLoadedMsg struct {
	PageID   int
	Seq      int
	Category domain.Category
	Videos   []domain.Video
	Err      error
}

// SavedVideosLoadedMsg carries the rebuilt saved videos for a saved page instance
type SavedVideosLoadedMsg struct {
	PageID int
	Videos []domain.Video
	Err    error
}

// ProfileLoadedMsg carries the profile for a profile page instance
type ProfileLoadedMsg struct {
	PageID  int
	Profile *domain.UserProfile
	Err     error
}

// VideoLoadedMsg is the result of a video download for a playback session
type VideoLoadedMsg struct {
	Session *player.PlaybackSession
	Result  player.LoadResult
}

// PlaybackEventMsg forwards an event from the external player.  A closed event channel is reported with Closed set.
type PlaybackEventMsg struct {
	Session *player.PlaybackSession
	Gen     int
	Event   player.PlaybackEvent
	Closed  bool
	events  <-chan player.PlaybackEvent
}

// PlaybackStartFailedMsg is sent when the external player could not be launched
type PlaybackStartFailedMsg struct {
	Session *player.PlaybackSession
	Gen     int
	Err     error
}

// PlayerControlErrorMsg is sent when a control command (pause) could not be delivered
type PlayerControlErrorMsg struct {
	Err error
}
