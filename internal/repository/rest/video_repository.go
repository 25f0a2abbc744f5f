package rest

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
)

// VideoRepository implements domain.VideoRepository over the REST API
type VideoRepository struct {
	client *api.Client
	// streamClient is used for video downloads, which must not be cut short by the regular request timeout
	streamClient *api.Client
}

// NewVideoRepository creates a repository.  streamClient may be nil, in which case client is used for downloads too.
func NewVideoRepository(client, streamClient *api.Client) domain.VideoRepository {
	if streamClient == nil {
		streamClient = client
	}
	return &VideoRepository{
		client:       client,
		streamClient: streamClient,
	}
}

func (r *VideoRepository) Categories(ctx context.Context, token string) ([]domain.Category, error) {
	categories, err := api.GetJSON[[]domain.Category](ctx, r.client, "/categories", token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	log.Debug("Fetched categories", "count", len(categories))
	return categories, nil
}

func (r *VideoRepository) Feed(ctx context.Context, token string, category domain.Category) ([]domain.Video, error) {
	videos, err := api.GetJSON[[]domain.Video](ctx, r.client, "/feed/"+url.PathEscape(category), token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %q: %w", category, err)
	}
	return domain.TagCategory(videos, category), nil
}

func (r *VideoRepository) Stream(ctx context.Context, token string, uuid string) ([]byte, error) {
	resp, err := r.streamClient.Get(ctx, "/stream/"+url.PathEscape(uuid), token)
	if err != nil {
		return nil, fmt.Errorf("failed to download video %s: %w", uuid, err)
	}
	if resp.IsJSON() {
		return nil, fmt.Errorf("failed to download video %s: server returned JSON instead of video data", uuid)
	}
	log.Debug("Downloaded video", "uuid", uuid, "bytes", len(resp.Bytes()), "content_type", resp.ContentType)
	return resp.Bytes(), nil
}

func (r *VideoRepository) SavedUUIDs(ctx context.Context, token string) ([]string, error) {
	uuids, err := api.GetJSON[[]string](ctx, r.client, "/saved", token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved videos: %w", err)
	}
	return uuids, nil
}

// bookmarkRequest is the body of POST /bookmark
type bookmarkRequest struct {
	VideoUUID  string `json:"video_uuid"`
	Bookmarked bool   `json:"bookmarked"`
}

func (r *VideoRepository) SetBookmark(ctx context.Context, token string, uuid string, bookmarked bool) error {
	_, err := api.PostJSON[map[string]any](ctx, r.client, "/bookmark", token, bookmarkRequest{
		VideoUUID:  uuid,
		Bookmarked: bookmarked,
	})
	if err != nil {
		return fmt.Errorf("failed to update bookmark for %s: %w", uuid, err)
	}
	return nil
}

func (r *VideoRepository) Profile(ctx context.Context, token string) (*domain.UserProfile, error) {
	profile, err := api.GetJSON[domain.UserProfile](ctx, r.client, "/profile", token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &profile, nil
}
