package service

import (
	"context"
	"sync"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
	"github.com/PizzaHomicide/tanpen/internal/session"
)

// BookmarkService holds the user's bookmark set and keeps it in step with the server
type BookmarkService struct {
	repo    domain.VideoRepository
	tokens  TokenSource
	haptics session.Haptics

	mu        sync.Mutex
	bookmarks domain.BookmarkSet
}

func NewBookmarkService(repo domain.VideoRepository, tokens TokenSource, haptics session.Haptics) *BookmarkService {
	if haptics == nil {
		haptics = session.NopHaptics{}
	}
	return &BookmarkService{
		repo:      repo,
		tokens:    tokens,
		haptics:   haptics,
		bookmarks: domain.NewBookmarkSet(),
	}
}

// Snapshot returns the currently held set
func (s *BookmarkService) Snapshot() domain.BookmarkSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookmarks
}

// Sync replaces the held set with the server's list.  On failure the previous set is kept.  The held set is returned
// either way.
func (s *BookmarkService) Sync(ctx context.Context) domain.BookmarkSet {
	token := s.tokens.Token()
	if token == "" {
		log.Warn("Bookmark sync skipped", "error", ErrNoToken)
		return s.Snapshot()
	}

	uuids, err := s.repo.SavedUUIDs(ctx, token)
	if err != nil {
		log.Warn("Bookmark sync failed, keeping previous bookmarks", "error", err)
		return s.Snapshot()
	}

	synced := domain.NewBookmarkSet(uuids...)

	s.mu.Lock()
	s.bookmarks = synced
	s.mu.Unlock()

	log.Info("Synced bookmarks", "count", synced.Len())
	return synced
}

// Toggle sets the bookmark state of a video.  The held set changes before the request is sent and the change to uuid
// is reverted when the request fails.  Returns whether the server accepted the change.
func (s *BookmarkService) Toggle(ctx context.Context, uuid string, bookmarked bool) bool {
	token := s.tokens.Token()
	if token == "" {
		log.Warn("Bookmark toggle skipped", "uuid", uuid, "error", ErrNoToken)
		return false
	}

	s.mu.Lock()
	previous := s.bookmarks
	s.bookmarks = previous.Set(uuid, bookmarked)
	s.mu.Unlock()

	if err := s.repo.SetBookmark(ctx, token, uuid, bookmarked); err != nil {
		// Only this uuid is reverted, other toggles may have completed meanwhile
		s.mu.Lock()
		s.bookmarks = s.bookmarks.Set(uuid, previous.Has(uuid))
		s.mu.Unlock()

		log.Error("Bookmark toggle failed, reverted", "uuid", uuid, "bookmarked", bookmarked, "error", err)
		s.haptics.NotificationOccurred(session.NotificationError)
		return false
	}

	log.Info("Bookmark updated", "uuid", uuid, "bookmarked", bookmarked)
	s.haptics.NotificationOccurred(session.NotificationSuccess)
	return true
}
