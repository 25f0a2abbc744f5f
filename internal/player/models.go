package player

// PlayerType defines the type of media player to use
type PlayerType string

const (
	// PlayerTypeMPV represents the MPV player
	PlayerTypeMPV PlayerType = "mpv"
	// PlayerTypeCustom represents a custom player executable
	PlayerTypeCustom PlayerType = "custom"
)

// PlaybackState is the lifecycle state of a PlaybackSession
type PlaybackState int

const (
	StateIdle PlaybackState = iota
	StateLoading
	StateReady
	StateFailed
	StateClosed
)

func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// LoadFailedMessage is shown when a download fails without a more specific message
const LoadFailedMessage = "Could not load video. It may have been removed."

// UnavailableMessage is shown when a downloaded video cannot be handed to the player
const UnavailableMessage = "Playback is unavailable: the local video server is not running."
