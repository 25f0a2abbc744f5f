package player

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/PizzaHomicide/tanpen/internal/log"
)

// MPVPlayer implements the VideoPlayer interface for MPV
type MPVPlayer struct {
	path string
	args string

	mu         sync.Mutex
	ipcClient  *MPVIPCClient
	cmd        *exec.Cmd
	socketPath string
}

// NewMPVPlayer creates a new MPV player instance
func NewMPVPlayer(path, args string) *MPVPlayer {
	if path == "" {
		path = "mpv"
	}
	return &MPVPlayer{
		path:       path,
		args:       args,
		socketPath: GetMPVSocketPath(),
	}
}

// Play starts playback of the given URL, monitors for playback start, and returns a notification channel.  Any
// previous playback is stopped first.
func (p *MPVPlayer) Play(ctx context.Context, url, title string) (<-chan PlaybackEvent, error) {
	log.Info("Starting MPV playback", "url", url, "title", title)

	if err := p.Stop(); err != nil {
		log.Debug("Failed to stop previous MPV instance", "error", err)
	}
	removeStaleSocket(p.socketPath)

	events := make(chan PlaybackEvent, 10)

	args := []string{
		"--no-terminal",                      // Disable terminal control
		"--keep-open=no",                     // Exit when playback is complete
		"--force-window=immediate",           // Show the window while the local server is still answering
		"--input-ipc-server=" + p.socketPath, // Set IPC socket path
	}
	if title != "" {
		args = append(args, "--force-media-title="+title)
	}
	if p.args != "" {
		args = append(args, ParseArgs(p.args)...)
	}
	// The URL is always the final argument
	args = append(args, url)

	cmd := exec.Command(p.path, args...)
	setupPlayerProcess(cmd)

	if err := cmd.Start(); err != nil {
		close(events)
		return events, fmt.Errorf("failed to start MPV: %w", err)
	}
	ipcClient := NewMPVIPCClient(p.socketPath)

	p.mu.Lock()
	p.cmd = cmd
	p.ipcClient = ipcClient
	p.mu.Unlock()

	// Reap the process so it does not linger as a zombie
	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	go p.monitor(ctx, ipcClient, exited, events)

	return events, nil
}

func (p *MPVPlayer) monitor(ctx context.Context, ipcClient *MPVIPCClient, exited <-chan struct{}, events chan<- PlaybackEvent) {
	defer close(events)

	// Allow time for MPV to create the socket
	time.Sleep(300 * time.Millisecond)

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := ipcClient.WaitForConnection(connCtx, 20, 500*time.Millisecond); err != nil {
		log.Error("Failed to connect to MPV", "error", err)
		events <- PlaybackEvent{Type: PlaybackError, Error: err}
		return
	}

	if err := ipcClient.WaitForPlaybackStart(ctx, 30*time.Second); err != nil {
		log.Error("Failed to detect MPV playback start", "error", err)
		events <- PlaybackEvent{Type: PlaybackError, Error: err}
		return
	}

	events <- PlaybackEvent{Type: PlaybackStarted}

	if err := ipcClient.ObserveProperty(2, "duration"); err != nil {
		log.Warn("Failed to observe duration property", "error", err)
	}
	if err := ipcClient.ObserveProperty(3, "pause"); err != nil {
		log.Warn("Failed to observe pause property", "error", err)
	}

	var playbackTime, duration float64
	// Progress is reported in whole percent steps, so many property changes map to the same number
	lastReported := -1

	mpvEventCh := ipcClient.Events()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Context cancelled, stopping MPV monitoring")
			return
		case <-exited:
			log.Debug("MPV process exited")
			events <- PlaybackEvent{Type: PlaybackEnded, Progress: calculateProgressPercentage(playbackTime, duration)}
			return
		case event, ok := <-mpvEventCh:
			if !ok {
				log.Debug("MPV event channel closed")
				events <- PlaybackEvent{Type: PlaybackEnded, Progress: calculateProgressPercentage(playbackTime, duration)}
				return
			}

			switch event.Event {
			case "end-file":
				log.Info("MPV playback ended")
				events <- PlaybackEvent{Type: PlaybackEnded, Progress: calculateProgressPercentage(playbackTime, duration)}
				return
			case "property-change":
				switch event.Name {
				case "duration":
					if v, err := extractEventDataFloat(event); err == nil {
						duration = v
					}
				case "playback-time":
					if v, err := extractEventDataFloat(event); err == nil {
						playbackTime = v
						progress := int(calculateProgressPercentage(playbackTime, duration))
						if progress != lastReported {
							lastReported = progress
							log.Trace("Playback progress", "percent", progress)
							sendNonBlocking(events, PlaybackEvent{Type: PlaybackProgress, Progress: float64(progress)})
						}
					}
				case "pause":
					var paused bool
					if err := json.Unmarshal(event.Data, &paused); err == nil {
						sendNonBlocking(events, PlaybackEvent{Type: PlaybackPaused, Paused: paused})
					}
				}
			}
		}
	}
}

// sendNonBlocking drops informational events when the consumer is behind
func sendNonBlocking(events chan<- PlaybackEvent, event PlaybackEvent) {
	select {
	case events <- event:
	default:
	}
}

func extractEventDataFloat(event MPVEvent) (float64, error) {
	var value float64
	if err := json.Unmarshal(event.Data, &value); err != nil {
		log.Trace("Failed to unmarshal event data", "name", event.Name, "data", string(event.Data))
		return 0.0, fmt.Errorf("failed to unmarshal event data: %w", err)
	}
	return value, nil
}

func calculateProgressPercentage(playbackTime, duration float64) float64 {
	if playbackTime <= 0.0 || duration <= 0.0 {
		return 0.0
	}
	return min((playbackTime/duration)*100, 100)
}

// TogglePause flips the pause property of the running MPV instance
func (p *MPVPlayer) TogglePause() error {
	p.mu.Lock()
	ipcClient := p.ipcClient
	p.mu.Unlock()

	if ipcClient == nil || !ipcClient.Connected() {
		return ErrNotPlaying
	}
	return ipcClient.SendCommand([]interface{}{"cycle", "pause"})
}

// Stop stops playback if it's active
func (p *MPVPlayer) Stop() error {
	p.mu.Lock()
	ipcClient, cmd := p.ipcClient, p.cmd
	p.ipcClient, p.cmd = nil, nil
	p.mu.Unlock()

	if ipcClient != nil {
		_ = ipcClient.SendCommand([]interface{}{"quit"})
		ipcClient.Close()
	}

	if cmd != nil && cmd.Process != nil {
		log.Info("Stopping MPV playback")
		return stopPlayerProcess(cmd)
	}

	return nil
}

// Cleanup performs any necessary cleanup
func (p *MPVPlayer) Cleanup() {
	if err := p.Stop(); err != nil {
		log.Debug("Error stopping MPV during cleanup", "error", err)
	}
	removeStaleSocket(p.socketPath)
}

// removeStaleSocket deletes a socket file left over from an earlier run (Unix only)
func removeStaleSocket(path string) {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			log.Warn("Failed to remove MPV socket file", "path", path, "error", err)
		}
	}
}
