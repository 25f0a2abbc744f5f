package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PizzaHomicide/tanpen/internal/domain"
	"github.com/PizzaHomicide/tanpen/internal/log"
	"github.com/PizzaHomicide/tanpen/internal/player"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/components"
	kb "github.com/PizzaHomicide/tanpen/internal/ui/tui/keybindings"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/styles"
	"github.com/PizzaHomicide/tanpen/internal/ui/tui/util"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PlayerModel is the overlay shown while a selected video is downloaded and played
type PlayerModel struct {
	width, height int

	session     *player.PlaybackSession
	videoPlayer player.VideoPlayer
	loading     *LoadingModel

	bookmarked bool
	playing    bool
	paused     bool
	progress   float64
	status     string
	// playGen identifies the current launch of the external player, events from earlier launches are ignored
	playGen int

	playCtx    context.Context
	playCancel context.CancelFunc
}

func NewPlayerModel(session *player.PlaybackSession, videoPlayer player.VideoPlayer, bookmarked bool) *PlayerModel {
	return &PlayerModel{
		session:     session,
		videoPlayer: videoPlayer,
		loading:     newVideoLoader(),
		bookmarked:  bookmarked,
	}
}

// The whole video is downloaded before the player can start
func newVideoLoader() *LoadingModel {
	return NewLoadingModel("Loading video...").WithContextInfo("Downloading the full video before playback")
}

func (m *PlayerModel) ViewType() View {
	return ViewPlayer
}

func (m *PlayerModel) Video() domain.Video {
	return m.session.Video()
}

func (m *PlayerModel) Bookmarked() bool {
	return m.bookmarked
}

// SetBookmarked updates the bookmark icon
func (m *PlayerModel) SetBookmarked(bookmarked bool) {
	m.bookmarked = bookmarked
}

func (m *PlayerModel) Init() tea.Cmd {
	run, ok := m.session.Load()
	if !ok {
		return nil
	}
	return tea.Batch(m.loading.Init(), downloadVideo(m.session, run))
}

func (m *PlayerModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.loading.Resize(width, height-4)
}

// Close releases everything held by the overlay.  Safe to call more than once.
func (m *PlayerModel) Close() {
	m.stopPlayback()
	m.session.Close()
}

func (m *PlayerModel) stopPlayback() {
	if m.playCancel != nil {
		m.playCancel()
		m.playCancel = nil
	}
	if m.playing {
		if err := m.videoPlayer.Stop(); err != nil {
			log.Warn("Failed to stop player", "error", err)
		}
	}
	m.playing = false
	m.paused = false
	m.progress = 0
}

func (m *PlayerModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		if m.session.State() == player.StateLoading {
			_, cmd := m.loading.Update(msg)
			return m, cmd
		}

	case VideoLoadedMsg:
		if msg.Session != m.session || msg.Result.Stale {
			return m, nil
		}
		if msg.Result.State != player.StateReady {
			return m, nil
		}
		m.playCtx, m.playCancel = context.WithCancel(context.Background())
		m.playGen++
		m.playing = true
		m.status = "Starting player..."
		return m, startPlayback(m.playCtx, m.videoPlayer, m.session, m.playGen, msg.Result.URL)

	case PlaybackStartFailedMsg:
		if msg.Session != m.session || msg.Gen != m.playGen {
			return m, nil
		}
		m.playing = false
		m.status = fmt.Sprintf("Could not start the player: %v", msg.Err)

	case PlaybackEventMsg:
		if msg.Session != m.session || msg.Gen != m.playGen || m.playCancel == nil {
			return m, nil
		}
		if msg.Closed {
			m.playing = false
			return m, nil
		}
		m.handlePlaybackEvent(msg.Event)
		return m, waitForPlaybackEvent(m.session, msg.Gen, msg.events)

	case PlayerControlErrorMsg:
		if errors.Is(msg.Err, player.ErrPauseUnsupported) {
			m.status = "This player cannot be paused from here"
		} else {
			m.status = "Player is not responding"
		}
	}
	return m, nil
}

func (m *PlayerModel) handlePlaybackEvent(event player.PlaybackEvent) {
	switch event.Type {
	case player.PlaybackStarted:
		m.status = "Playing"
	case player.PlaybackPaused:
		m.paused = event.Paused
		if event.Paused {
			m.status = "Paused"
		} else {
			m.status = "Playing"
		}
	case player.PlaybackProgress:
		m.progress = event.Progress
	case player.PlaybackEnded:
		m.playing = false
		m.status = "Finished"
	case player.PlaybackError:
		m.playing = false
		m.status = "Playback failed"
		log.Error("Playback error", "uuid", m.session.Video().UUID, "error", event.Error)
	}
}

func (m *PlayerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch kb.GetActionByKey(msg, kb.ContextPlayer) {
	case kb.ActionTogglePause:
		if m.session.State() != player.StateReady || !m.playing {
			return Handled("pause:not_ready")
		}
		return togglePause(m.videoPlayer)
	case kb.ActionToggleBookmark:
		video := m.session.Video()
		return func() tea.Msg { return ToggleBookmarkMsg{Video: video} }
	case kb.ActionRetry:
		m.stopPlayback()
		run, ok := m.session.Retry()
		if !ok {
			return Handled("retry:not_allowed")
		}
		m.status = ""
		m.loading = newVideoLoader()
		m.loading.Resize(m.width, m.height-4)
		return tea.Batch(m.loading.Init(), downloadVideo(m.session, run))
	}
	return nil
}

func (m *PlayerModel) View() string {
	video := m.session.Video()

	title := util.TruncateString(video.DisplayCaption(), max(m.width-4, 4))
	header := styles.Header(m.width, title)

	var body string
	switch m.session.State() {
	case player.StateLoading, player.StateIdle:
		body = m.loading.View()
	case player.StateFailed:
		body = styles.CenteredView(m.width, max(m.height-4, 1),
			components.ErrorPanel(m.width, "Playback failed", m.session.Message(), "r"))
	default:
		body = styles.CenteredView(m.width, max(m.height-4, 1), m.renderNowPlaying())
	}

	icon := "☆ Save"
	if m.bookmarked {
		icon = styles.Bookmarked.Render("★ Saved")
	}
	caption := lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).
		Render(icon + "   " + styles.Hint.Render(video.Category))

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "space", Desc: "Play/pause"},
		{Key: "b", Desc: "Save"},
		{Key: "r", Desc: "Retry"},
		{Key: "esc", Desc: "Close"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, body, caption, footer)
}

func (m *PlayerModel) renderNowPlaying() string {
	var b strings.Builder

	status := m.status
	if status == "" {
		status = "Ready"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(status))

	if m.playing {
		barWidth := min(max(m.width-30, 10), 50)
		filled := int(m.progress / 100 * float64(barWidth))
		bar := lipgloss.NewStyle().Foreground(styles.Accent).Render(strings.Repeat("━", filled)) +
			lipgloss.NewStyle().Foreground(styles.Muted).Render(strings.Repeat("─", barWidth-filled))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %3.0f%%", bar, m.progress))
		b.WriteString("\n\n")
		b.WriteString(styles.Hint.Render("Video is playing in an external window"))
	}
	return styles.ContentBox(min(max(m.width-20, 30), 70), lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String()), 1)
}
