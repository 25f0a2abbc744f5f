package session

import (
	"io"
	"sync"

	"github.com/PizzaHomicide/tanpen/internal/log"
)

type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

type ImpactStyle string

const (
	ImpactLight  ImpactStyle = "light"
	ImpactMedium ImpactStyle = "medium"
	ImpactHeavy  ImpactStyle = "heavy"
)

// Haptics is the feedback side channel.  Calls never fail and never block.
type Haptics interface {
	NotificationOccurred(kind NotificationType)
	ImpactOccurred(style ImpactStyle)
	SelectionChanged()
}

// NopHaptics discards all feedback
type NopHaptics struct{}

func (NopHaptics) NotificationOccurred(NotificationType) {}
func (NopHaptics) ImpactOccurred(ImpactStyle)            {}
func (NopHaptics) SelectionChanged()                     {}

// LogHaptics records feedback in the log
type LogHaptics struct{}

func (LogHaptics) NotificationOccurred(kind NotificationType) {
	log.Debug("Haptic notification", "type", kind)
}

func (LogHaptics) ImpactOccurred(style ImpactStyle) {
	log.Debug("Haptic impact", "style", style)
}

func (LogHaptics) SelectionChanged() {
	log.Debug("Haptic selection changed")
}

// BellHaptics rings the terminal bell on error notifications and logs everything else
type BellHaptics struct {
	LogHaptics
	mu sync.Mutex
	w  io.Writer
}

func NewBellHaptics(w io.Writer) *BellHaptics {
	return &BellHaptics{w: w}
}

func (b *BellHaptics) NotificationOccurred(kind NotificationType) {
	b.LogHaptics.NotificationOccurred(kind)
	if kind != NotificationError || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.w.Write([]byte("\a")); err != nil {
		log.Debug("Unable to ring terminal bell", "error", err)
	}
}

// NewHaptics picks the feedback implementation for the configured mode.  Without a session there is no host to
// give feedback through, so everything is discarded.
func NewHaptics(mode string, hasSession bool, w io.Writer) Haptics {
	if !hasSession {
		return NopHaptics{}
	}
	switch mode {
	case "off":
		return NopHaptics{}
	case "log":
		return LogHaptics{}
	case "bell", "":
		return NewBellHaptics(w)
	default:
		log.Warn("Unknown haptics mode, falling back to bell", "mode", mode)
		return NewBellHaptics(w)
	}
}
