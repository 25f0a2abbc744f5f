package player

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFactory records how many references were created and released
type countingFactory struct {
	server  *BlobServer
	mu      sync.Mutex
	created []*ObjectURL
}

func (f *countingFactory) CreateObjectURL(data []byte, contentType string) (*ObjectURL, error) {
	ref, err := f.server.CreateObjectURL(data, contentType)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.created = append(f.created, ref)
	f.mu.Unlock()
	return ref, nil
}

type scriptedDownloader struct {
	results []error
	calls   int
	// gate, when set, blocks the download until closed or the context ends
	gate chan struct{}
}

func (d *scriptedDownloader) Stream(ctx context.Context, uuid string) ([]byte, error) {
	i := d.calls
	d.calls++
	if d.gate != nil {
		select {
		case <-d.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if i < len(d.results) && d.results[i] != nil {
		return nil, d.results[i]
	}
	return []byte("video:" + uuid), nil
}

func newSession(d Downloader) (*PlaybackSession, *countingFactory) {
	factory := &countingFactory{server: NewBlobServer("")}
	return NewPlaybackSession(domain.Video{UUID: "v1"}, d, factory), factory
}

func TestPlaybackSession_LoadSuccess(t *testing.T) {
	session, factory := newSession(&scriptedDownloader{})

	run, ok := session.Load()
	require.True(t, ok)
	assert.Equal(t, StateLoading, session.State())

	result := run()

	assert.Equal(t, StateReady, result.State)
	assert.Equal(t, 1, result.Attempt)
	assert.NotEmpty(t, session.URL())
	assert.Equal(t, 1, factory.server.Len())

	session.Close()
	assert.Equal(t, StateClosed, session.State())
	assert.Equal(t, 0, factory.server.Len())
	assert.Empty(t, session.URL())
}

func TestPlaybackSession_FailureMessage(t *testing.T) {
	t.Run("ApiDetail", func(t *testing.T) {
		session, _ := newSession(&scriptedDownloader{results: []error{&api.Error{Status: 404, Message: "Video not found"}}})
		run, _ := session.Load()

		result := run()

		assert.Equal(t, StateFailed, result.State)
		assert.Equal(t, "Video not found", result.Message)
	})

	t.Run("Fallback", func(t *testing.T) {
		session, _ := newSession(&scriptedDownloader{results: []error{errors.New("weird")}})
		run, _ := session.Load()

		result := run()

		assert.Equal(t, LoadFailedMessage, result.Message)
		assert.Equal(t, LoadFailedMessage, session.Message())
	})
}

func TestPlaybackSession_RetryFromFailedThenReady(t *testing.T) {
	session, factory := newSession(&scriptedDownloader{results: []error{errors.New("first fails")}})
	run, _ := session.Load()
	require.Equal(t, StateFailed, run().State)

	_, ok := session.Load()
	assert.False(t, ok, "Load is only valid from Idle")

	run, ok = session.Retry()
	require.True(t, ok)
	result := run()

	assert.Equal(t, StateReady, result.State)
	assert.Equal(t, 2, result.Attempt)
	assert.Equal(t, 1, factory.server.Len())
}

func TestPlaybackSession_RetryFromReadyReleasesReference(t *testing.T) {
	session, factory := newSession(&scriptedDownloader{})
	run, _ := session.Load()
	run()

	run, ok := session.Retry()
	require.True(t, ok)
	assert.Equal(t, 0, factory.server.Len(), "leaving Ready releases the reference")
	run()

	assert.Len(t, factory.created, 2)
	assert.Equal(t, 1, factory.server.Len())
	session.Close()
	assert.Equal(t, 0, factory.server.Len())
}

func TestPlaybackSession_CloseBeforeDownloadCompletes(t *testing.T) {
	downloader := &scriptedDownloader{gate: make(chan struct{})}
	session, factory := newSession(downloader)
	run, _ := session.Load()

	done := make(chan LoadResult)
	go func() { done <- run() }()

	session.Close()
	result := <-done

	assert.True(t, result.Stale)
	assert.Equal(t, StateClosed, session.State())
	assert.Empty(t, factory.created, "a download finishing after close must not register a reference")
	assert.Equal(t, 0, factory.server.Len())
}

func TestPlaybackSession_CloseIsIdempotent(t *testing.T) {
	session, factory := newSession(&scriptedDownloader{})
	run, _ := session.Load()
	run()

	session.Close()
	session.Close()

	assert.Equal(t, 0, factory.server.Len())
	_, ok := session.Retry()
	assert.False(t, ok)
}

func TestPlaybackSession_BlobServerDownFailsWithRetry(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	factory := &countingFactory{server: failedBlobServer(t, taken.Addr().String())}
	session := NewPlaybackSession(domain.Video{UUID: "v1"}, &scriptedDownloader{}, factory)

	run, ok := session.Load()
	require.True(t, ok)
	result := run()

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, UnavailableMessage, result.Message)
	assert.Empty(t, session.URL())
	assert.Empty(t, factory.created)

	_, ok = session.Retry()
	assert.True(t, ok)
	session.Close()
}
