package player

import (
	"context"
	"errors"
)

// PlaybackEventType represents the type of playback event
type PlaybackEventType string

const (
	// PlaybackStarted indicates that playback has successfully started
	PlaybackStarted PlaybackEventType = "started"
	// PlaybackEnded indicates that playback has completed
	PlaybackEnded PlaybackEventType = "ended"
	// PlaybackError indicates an error during playback
	PlaybackError PlaybackEventType = "error"
	// PlaybackProgress indicates a progress update
	PlaybackProgress PlaybackEventType = "progress"
	// PlaybackPaused reports a change of the pause state, see PlaybackEvent.Paused
	PlaybackPaused PlaybackEventType = "paused"
)

// PlaybackEvent represents an event from the video player
type PlaybackEvent struct {
	Type     PlaybackEventType
	Progress float64 // Percentage of progress (0-100)
	Paused   bool
	Error    error // Error if Type is PlaybackError
}

var (
	// ErrPauseUnsupported is returned by players that cannot be controlled once launched
	ErrPauseUnsupported = errors.New("this player does not support pausing")
	// ErrNotPlaying is returned when a control command is sent with nothing playing
	ErrNotPlaying = errors.New("nothing is playing")
)

// VideoPlayer defines the interface for media player implementations
type VideoPlayer interface {
	// Play starts playback of the given URL and returns a channel for playback events.  The channel is closed when
	// playback ends.
	Play(ctx context.Context, url, title string) (<-chan PlaybackEvent, error)

	// TogglePause flips between playing and paused
	TogglePause() error

	// Stop stops the current playback
	Stop() error

	// Cleanup performs any necessary cleanup
	Cleanup()
}
