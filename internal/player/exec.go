package player

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/PizzaHomicide/tanpen/internal/log"
)

// ExecPlayer launches an arbitrary player binary with the video URL as its last argument.  Once launched the player
// cannot be controlled, only stopped.
type ExecPlayer struct {
	path string
	args string

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewExecPlayer(path, args string) *ExecPlayer {
	return &ExecPlayer{path: path, args: args}
}

func (p *ExecPlayer) Play(ctx context.Context, url, title string) (<-chan PlaybackEvent, error) {
	events := make(chan PlaybackEvent, 2)
	if p.path == "" {
		close(events)
		return events, fmt.Errorf("no player path configured for the custom player")
	}

	if err := p.Stop(); err != nil {
		log.Debug("Failed to stop previous player", "error", err)
	}

	args := append(ParseArgs(p.args), url)
	cmd := exec.Command(p.path, args...)
	setupPlayerProcess(cmd)

	log.Info("Starting custom player", "path", p.path, "title", title)
	if err := cmd.Start(); err != nil {
		close(events)
		return events, fmt.Errorf("failed to start player %s: %w", p.path, err)
	}

	p.mu.Lock()
	p.cmd = cmd
	p.mu.Unlock()

	events <- PlaybackEvent{Type: PlaybackStarted}

	go func() {
		defer close(events)
		err := cmd.Wait()

		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
		}
		p.mu.Unlock()

		if err != nil && ctx.Err() == nil {
			log.Debug("Custom player exited with error", "error", err)
		}
		events <- PlaybackEvent{Type: PlaybackEnded}
	}()

	return events, nil
}

func (p *ExecPlayer) TogglePause() error {
	return ErrPauseUnsupported
}

func (p *ExecPlayer) Stop() error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	log.Info("Stopping custom player")
	return stopPlayerProcess(cmd)
}

func (p *ExecPlayer) Cleanup() {
	if err := p.Stop(); err != nil {
		log.Debug("Error stopping custom player during cleanup", "error", err)
	}
}
