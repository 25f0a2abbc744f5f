package player

import (
	"context"
	"net/http"
	"sync"

	"github.com/PizzaHomicide/tanpen/internal/api"
	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
)

// Downloader fetches the complete payload of a video
type Downloader interface {
	Stream(ctx context.Context, uuid string) ([]byte, error)
}

// ObjectURLFactory registers payloads and hands out references to them
type ObjectURLFactory interface {
	CreateObjectURL(data []byte, contentType string) (*ObjectURL, error)
}

// LoadResult is the outcome of one download attempt
type LoadResult struct {
	Attempt int
	State   PlaybackState
	URL     string
	Message string
	// Stale is set when the session moved on (retried or closed) before the download finished.  Such results must be
	// ignored.
	Stale bool
}

// PlaybackSession tracks the download of one selected video and owns the object URL created for it.
//
//	Idle -> Loading -> Ready | Failed
//	Ready | Failed -> Loading (Retry)
//	any -> Closed (Close)
//
// Every object URL created by a session is released exactly once: when the session leaves Ready or is closed.
type PlaybackSession struct {
	video      domain.Video
	downloader Downloader
	blobs      ObjectURLFactory

	mu        sync.Mutex
	state     PlaybackState
	attempt   int
	objectURL *ObjectURL
	message   string
	cancel    context.CancelFunc
}

func NewPlaybackSession(video domain.Video, downloader Downloader, blobs ObjectURLFactory) *PlaybackSession {
	return &PlaybackSession{
		video:      video,
		downloader: downloader,
		blobs:      blobs,
		state:      StateIdle,
	}
}

func (s *PlaybackSession) Video() domain.Video {
	return s.video
}

func (s *PlaybackSession) State() PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *PlaybackSession) Attempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// URL returns the playable reference while Ready, and an empty string otherwise
func (s *PlaybackSession) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.objectURL == nil {
		return ""
	}
	return s.objectURL.URL()
}

// Message returns the error message while Failed
func (s *PlaybackSession) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Load starts the first download.  It returns the blocking download function to run off the UI loop, or false when
// the session is not Idle.
func (s *PlaybackSession) Load() (func() LoadResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return nil, false
	}
	return s.beginLocked(), true
}

// Retry starts another download from Ready or Failed.  A held reference is released first.
func (s *PlaybackSession) Retry() (func() LoadResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady && s.state != StateFailed {
		return nil, false
	}
	s.releaseLocked()
	return s.beginLocked(), true
}

// Close ends the session: the download in flight is cancelled and any reference released.  Close is idempotent.
func (s *PlaybackSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.releaseLocked()
	s.state = StateClosed
	log.Debug("Playback session closed", "uuid", s.video.UUID, "attempts", s.attempt)
}

func (s *PlaybackSession) beginLocked() func() LoadResult {
	s.attempt++
	attempt := s.attempt
	s.state = StateLoading
	s.message = ""

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	log.Debug("Loading video", "uuid", s.video.UUID, "attempt", attempt)
	return func() LoadResult {
		data, err := s.downloader.Stream(ctx, s.video.UUID)
		return s.finish(attempt, data, err)
	}
}

func (s *PlaybackSession) finish(attempt int, data []byte, err error) LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed || attempt != s.attempt {
		log.Debug("Discarding stale video download", "uuid", s.video.UUID, "attempt", attempt)
		return LoadResult{Attempt: attempt, State: s.state, Stale: true}
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if err != nil {
		s.state = StateFailed
		s.message = api.UserMessage(err, LoadFailedMessage)
		log.Warn("Video download failed", "uuid", s.video.UUID, "attempt", attempt, "error", err)
		return LoadResult{Attempt: attempt, State: s.state, Message: s.message}
	}

	objectURL, err := s.blobs.CreateObjectURL(data, http.DetectContentType(data))
	if err != nil {
		s.state = StateFailed
		s.message = UnavailableMessage
		log.Error("Unable to hand video to the player", "uuid", s.video.UUID, "attempt", attempt, "error", err)
		return LoadResult{Attempt: attempt, State: s.state, Message: s.message}
	}
	s.objectURL = objectURL
	s.state = StateReady
	log.Info("Video ready", "uuid", s.video.UUID, "attempt", attempt, "bytes", len(data))
	return LoadResult{Attempt: attempt, State: s.state, URL: s.objectURL.URL()}
}

func (s *PlaybackSession) releaseLocked() {
	if s.objectURL != nil {
		s.objectURL.Release()
		s.objectURL = nil
	}
}
