package domain

import "context"

// VideoRepository defines the interface for access to the remote video API.  Every call carries the host-issued session
// token.
type VideoRepository interface {
	// Categories retrieves the category labels in display order
	Categories(ctx context.Context, token string) ([]Category, error)

	// Feed retrieves the videos of one category, tagged with that category
	Feed(ctx context.Context, token string, category Category) ([]Video, error)

	// Stream downloads the complete payload of a video
	Stream(ctx context.Context, token string, uuid string) ([]byte, error)

	// SavedUUIDs retrieves the uuids the user has bookmarked
	SavedUUIDs(ctx context.Context, token string) ([]string, error)

	// SetBookmark records whether the user wants the video bookmarked
	SetBookmark(ctx context.Context, token string, uuid string, bookmarked bool) error

	// Profile retrieves the user's account snapshot
	Profile(ctx context.Context, token string) (*UserProfile, error)
}
