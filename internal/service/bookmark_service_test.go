package service

import (
	"context"
	"errors"
	"testing"

	"github.com/PizzaHomicide/tanpen/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestBookmarkService_Sync(t *testing.T) {
	t.Run("ReplacesSetOnSuccess", func(t *testing.T) {
		repo := &fakeRepository{saved: []string{"b", "a"}}
		svc := NewBookmarkService(repo, staticToken("tok"), nil)

		set := svc.Sync(context.Background())

		assert.Equal(t, []string{"b", "a"}, set.UUIDs())
		assert.True(t, svc.Snapshot().Equal(set))
	})

	t.Run("KeepsPreviousSetOnFailure", func(t *testing.T) {
		repo := &fakeRepository{saved: []string{"a"}}
		svc := NewBookmarkService(repo, staticToken("tok"), nil)
		svc.Sync(context.Background())

		repo.savedErr = errors.New("boom")
		set := svc.Sync(context.Background())

		assert.Equal(t, []string{"a"}, set.UUIDs())
	})

	t.Run("InitialFailureIsEmpty", func(t *testing.T) {
		repo := &fakeRepository{savedErr: errors.New("boom")}
		svc := NewBookmarkService(repo, staticToken("tok"), nil)

		assert.Equal(t, 0, svc.Sync(context.Background()).Len())
	})

	t.Run("NoTokenMakesNoCall", func(t *testing.T) {
		repo := &fakeRepository{saved: []string{"a"}}
		svc := NewBookmarkService(repo, staticToken(""), nil)

		assert.Equal(t, 0, svc.Sync(context.Background()).Len())
		assert.Zero(t, repo.calls)
	})
}

func TestBookmarkService_Toggle(t *testing.T) {
	t.Run("OptimisticThenConfirmed", func(t *testing.T) {
		repo := &fakeRepository{}
		haptics := &recordingHaptics{}
		svc := NewBookmarkService(repo, staticToken("tok"), haptics)
		repo.observed = func() {
			assert.True(t, svc.Snapshot().Has("v1"), "set must change before the request completes")
		}

		ok := svc.Toggle(context.Background(), "v1", true)

		assert.True(t, ok)
		assert.True(t, svc.Snapshot().Has("v1"))
		assert.Equal(t, []bookmarkCall{{uuid: "v1", bookmarked: true}}, repo.bookmarkCalls)
		assert.Equal(t, []session.NotificationType{session.NotificationSuccess}, haptics.notifications)
	})

	t.Run("RollbackOnFailure", func(t *testing.T) {
		repo := &fakeRepository{saved: []string{"v1", "v2"}}
		haptics := &recordingHaptics{}
		svc := NewBookmarkService(repo, staticToken("tok"), haptics)
		before := svc.Sync(context.Background())
		repo.bookmarkErr = errors.New("server down")

		ok := svc.Toggle(context.Background(), "v1", false)

		assert.False(t, ok)
		assert.True(t, svc.Snapshot().Equal(before))
		assert.Equal(t, []string{"v1", "v2"}, svc.Snapshot().UUIDs())
		assert.Equal(t, []session.NotificationType{session.NotificationError}, haptics.notifications)
	})

	t.Run("NoTokenReturnsFalseWithoutCall", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewBookmarkService(repo, staticToken(""), nil)

		assert.False(t, svc.Toggle(context.Background(), "v1", true))
		assert.Zero(t, repo.calls)
		assert.False(t, svc.Snapshot().Has("v1"))
	})

	t.Run("SnapshotIsNotMutatedByLaterToggles", func(t *testing.T) {
		repo := &fakeRepository{}
		svc := NewBookmarkService(repo, staticToken("tok"), nil)
		snapshot := svc.Snapshot()

		svc.Toggle(context.Background(), "v1", true)

		assert.False(t, snapshot.Has("v1"))
	})
}

func TestBookmarkService_FailedToggleKeepsConcurrentSuccess(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	repo := &fakeRepository{
		setBookmark: func(uuid string, bookmarked bool) error {
			if uuid == "v1" {
				close(started)
				<-release
				return errors.New("server unavailable")
			}
			return nil
		},
	}
	svc := NewBookmarkService(repo, staticToken("tok"), nil)

	done := make(chan bool)
	go func() {
		done <- svc.Toggle(context.Background(), "v1", true)
	}()
	<-started

	assert.True(t, svc.Toggle(context.Background(), "v2", true))
	close(release)
	assert.False(t, <-done)

	final := svc.Snapshot()
	assert.False(t, final.Has("v1"))
	assert.True(t, final.Has("v2"), "a toggle accepted by the server must survive another toggle's rollback")
	assert.Equal(t, []string{"v2"}, final.UUIDs())
}
