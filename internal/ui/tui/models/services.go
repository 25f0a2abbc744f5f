package models

import (
	"context"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/player"
	"github.com/PizzaHomicide/tanpen/internal/session"
)

// SessionSource provides the host session
type SessionSource interface {
	Session() (*domain.Session, error)
}

// FeedSource fetches remote content
type FeedSource interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Feed(ctx context.Context, category domain.Category) ([]domain.Video, error)
	Stream(ctx context.Context, uuid string) ([]byte, error)
	SavedVideos(ctx context.Context, bookmarks domain.BookmarkSet) ([]domain.Video, error)
	Profile(ctx context.Context) (*domain.UserProfile, error)
}

// BookmarkStore holds the bookmark set
type BookmarkStore interface {
	Sync(ctx context.Context) domain.BookmarkSet
	Toggle(ctx context.Context, uuid string, bookmarked bool) bool
	Snapshot() domain.BookmarkSet
}

// Services bundles everything the UI needs from the rest of the application
type Services struct {
	Session   SessionSource
	Feeds     FeedSource
	Bookmarks BookmarkStore
	Blobs     player.ObjectURLFactory
	Player    player.VideoPlayer
	Haptics   session.Haptics
}
