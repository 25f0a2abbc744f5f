package service

import (
	"context"
	"fmt"

	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
	"golang.org/x/sync/errgroup"
)

// FeedService fetches categories, feeds and videos.  Nothing is cached, every call goes to the server.
type FeedService struct {
	repo   domain.VideoRepository
	tokens TokenSource
}

func NewFeedService(repo domain.VideoRepository, tokens TokenSource) *FeedService {
	return &FeedService{
		repo:   repo,
		tokens: tokens,
	}
}

func (s *FeedService) token() (string, error) {
	token := s.tokens.Token()
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FeedService) Categories(ctx context.Context) ([]domain.Category, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.repo.Categories(ctx, token)
}

func (s *FeedService) Feed(ctx context.Context, category domain.Category) ([]domain.Video, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.repo.Feed(ctx, token, category)
}

// Stream downloads the complete video payload
func (s *FeedService) Stream(ctx context.Context, uuid string) ([]byte, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.repo.Stream(ctx, token, uuid)
}

func (s *FeedService) Profile(ctx context.Context) (*domain.UserProfile, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.repo.Profile(ctx, token)
}

// SavedVideos rebuilds the bookmarked videos from the category feeds, as the server only stores uuids.
//
// Feeds are fetched concurrently.  A feed that fails contributes nothing.  When a uuid appears in more than one
// category the last category in server order wins.  The result follows the iteration order of bookmarks, and
// bookmarks that are not in any feed are dropped.
func (s *FeedService) SavedVideos(ctx context.Context, bookmarks domain.BookmarkSet) ([]domain.Video, error) {
	if bookmarks.Len() == 0 {
		return []domain.Video{}, nil
	}

	token, err := s.token()
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.Categories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved videos: %w", err)
	}

	feeds := make([][]domain.Video, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		g.Go(func() error {
			videos, err := s.repo.Feed(gctx, token, category)
			if api.IsCanceled(err) {
				log.Debug("Feed fetch abandoned", "category", category)
				return nil
			}
			if err != nil {
				log.Warn("Feed unavailable while loading saved videos", "category", category, "error", err)
				return nil
			}
			feeds[i] = videos
			return nil
		})
	}
	// Goroutines absorb their own failures
	_ = g.Wait()

	byUUID := make(map[string]domain.Video)
	for _, feed := range feeds {
		for _, video := range feed {
			byUUID[video.UUID] = video
		}
	}

	saved := make([]domain.Video, 0, bookmarks.Len())
	for _, uuid := range bookmarks.UUIDs() {
		if video, ok := byUUID[uuid]; ok {
			saved = append(saved, video)
		}
	}

	log.Debug("Rebuilt saved videos", "bookmarks", bookmarks.Len(), "found", len(saved))
	return saved, nil
}
