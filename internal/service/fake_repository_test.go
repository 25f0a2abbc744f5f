package service

import (
	"context"
	"sync"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/session"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

type fakeRepository struct {
	mu sync.Mutex

	categories    []domain.Category
	categoriesErr error
	feeds         map[domain.Category][]domain.Video
	feedErrs      map[domain.Category]error
	saved         []string
	savedErr      error
	bookmarkErr   error
	profile       *domain.UserProfile

	calls         int
	bookmarkCalls []bookmarkCall
	// observed is called while SetBookmark runs, to inspect state mid-request
	observed func()
	// setBookmark replaces bookmarkErr when set, letting a test hold or fail individual requests
	setBookmark func(uuid string, bookmarked bool) error
}

type bookmarkCall struct {
	uuid       string
	bookmarked bool
}

func (f *fakeRepository) count() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeRepository) Categories(ctx context.Context, token string) ([]domain.Category, error) {
	f.count()
	return f.categories, f.categoriesErr
}

func (f *fakeRepository) Feed(ctx context.Context, token string, category domain.Category) ([]domain.Video, error) {
	f.count()
	if err := f.feedErrs[category]; err != nil {
		return nil, err
	}
	return domain.TagCategory(f.feeds[category], category), nil
}

func (f *fakeRepository) Stream(ctx context.Context, token string, uuid string) ([]byte, error) {
	f.count()
	return []byte(uuid), nil
}

func (f *fakeRepository) SavedUUIDs(ctx context.Context, token string) ([]string, error) {
	f.count()
	return f.saved, f.savedErr
}

func (f *fakeRepository) SetBookmark(ctx context.Context, token string, uuid string, bookmarked bool) error {
	f.count()
	f.mu.Lock()
	f.bookmarkCalls = append(f.bookmarkCalls, bookmarkCall{uuid: uuid, bookmarked: bookmarked})
	f.mu.Unlock()
	if f.observed != nil {
		f.observed()
	}
	if f.setBookmark != nil {
		return f.setBookmark(uuid, bookmarked)
	}
	return f.bookmarkErr
}

func (f *fakeRepository) Profile(ctx context.Context, token string) (*domain.UserProfile, error) {
	f.count()
	return f.profile, nil
}

type recordingHaptics struct {
	session.NopHaptics
	notifications []session.NotificationType
}

func (r *recordingHaptics) NotificationOccurred(kind session.NotificationType) {
	r.notifications = append(r.notifications, kind)
}
