package service

import (
	"context"
	"errors"
	"testing"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedVideos_EmptySetMakesNoCalls(t *testing.T) {
	repo := &fakeRepository{categories: []string{"a"}}
	svc := NewFeedService(repo, staticToken("tok"))

	videos, err := svc.SavedVideos(context.Background(), domain.NewBookmarkSet())

	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.Zero(t, repo.calls)
}

func TestSavedVideos_FollowsBookmarkOrderAndDropsMissing(t *testing.T) {
	repo := &fakeRepository{
		categories: []string{"x", "y"},
		feeds: map[string][]domain.Video{
			"x": {{UUID: "A", CustomCaption: "a"}, {UUID: "C"}},
			"y": {{UUID: "B"}, {UUID: "Z"}},
		},
	}
	svc := NewFeedService(repo, staticToken("tok"))

	videos, err := svc.SavedVideos(context.Background(), domain.NewBookmarkSet("C", "missing", "A", "B"))

	require.NoError(t, err)
	var uuids []string
	for _, v := range videos {
		uuids = append(uuids, v.UUID)
	}
	assert.Equal(t, []string{"C", "A", "B"}, uuids)
}

func TestSavedVideos_PartialFeedFailureIsAbsorbed(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		feeds      map[string][]domain.Video
		feedErrs   map[string]error
		want       []string
	}{
		{
			// B's feed fails and C is in no feed
			name:       "TwoCategories",
			categories: []string{"one", "two"},
			feeds: map[string][]domain.Video{
				"one": {{UUID: "A"}},
				"two": {{UUID: "B"}},
			},
			feedErrs: map[string]error{"two": errors.New("timeout")},
			want:     []string{"A"},
		},
		{
			name:       "FailureBetweenWorkingFeeds",
			categories: []string{"one", "two", "three"},
			feeds: map[string][]domain.Video{
				"one":   {{UUID: "A"}},
				"two":   {{UUID: "B"}},
				"three": {{UUID: "C"}},
			},
			feedErrs: map[string]error{"two": errors.New("timeout")},
			want:     []string{"A", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{categories: tt.categories, feeds: tt.feeds, feedErrs: tt.feedErrs}
			svc := NewFeedService(repo, staticToken("tok"))

			videos, err := svc.SavedVideos(context.Background(), domain.NewBookmarkSet("A", "B", "C"))

			require.NoError(t, err)
			uuids := make([]string, 0, len(videos))
			for _, v := range videos {
				uuids = append(uuids, v.UUID)
			}
			assert.Equal(t, tt.want, uuids)
		})
	}
}

func TestSavedVideos_DuplicateUUIDLastCategoryWins(t *testing.T) {
	repo := &fakeRepository{
		categories: []string{"first", "second"},
		feeds: map[string][]domain.Video{
			"first":  {{UUID: "A", CustomCaption: "from first"}},
			"second": {{UUID: "A", CustomCaption: "from second"}},
		},
	}
	svc := NewFeedService(repo, staticToken("tok"))

	videos, err := svc.SavedVideos(context.Background(), domain.NewBookmarkSet("A"))

	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "second", videos[0].Category)
	assert.Equal(t, "from second", videos[0].CustomCaption)
}

func TestSavedVideos_CategoryFailureIsSurfaced(t *testing.T) {
	repo := &fakeRepository{categoriesErr: errors.New("down")}
	svc := NewFeedService(repo, staticToken("tok"))

	_, err := svc.SavedVideos(context.Background(), domain.NewBookmarkSet("A"))

	assert.Error(t, err)
}

func TestFeedService_NoToken(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewFeedService(repo, staticToken(""))

	_, err := svc.Categories(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
	_, err = svc.Stream(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Zero(t, repo.calls)
}

func TestFeedService_FeedIsTagged(t *testing.T) {
	repo := &fakeRepository{feeds: map[string][]domain.Video{"c": {{UUID: "1"}}}}
	svc := NewFeedService(repo, staticToken("tok"))

	videos, err := svc.Feed(context.Background(), "c")

	require.NoError(t, err)
	assert.Equal(t, []domain.Video{{UUID: "1", Category: "c"}}, videos)
}
