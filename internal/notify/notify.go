// Package notify dispatches best-effort completion alerts: a sound cue plus
// an OS-level notification. Failures are logged and swallowed; nothing here
// may ever delay the countdown.
package notify

import (
	"fmt"

	"github.com/BogdanLi/productivity-timer/internal/logging"
	"github.com/BogdanLi/productivity-timer/internal/store"
)

// Dispatcher is the engine's notification collaborator. Tests substitute a
// fake.
type Dispatcher interface {
	// RequestPermission probes once whether OS notifications can be shown.
	RequestPermission() bool
	// Notify alerts the user that the given mode finished.
	Notify(mode store.TimerMode)
}

var modeMessages = map[store.TimerMode]string{
	store.ModeFocus:     "Focus time is over! Take a break.",
	store.ModeBreak:     "Break time is over! Ready to focus?",
	store.ModeLongBreak: "Long break is over! Time to get back to work!",
}

// Desktop alerts through platform commands: afplay/paplay for sound,
// osascript/notify-send for the visual notification. Platform specifics live
// in platform_*.go behind build tags.
type Desktop struct {
	permitted    bool
	soundEnabled bool
}

func NewDesktop(soundEnabled bool) *Desktop {
	return &Desktop{soundEnabled: soundEnabled}
}

// RequestPermission checks for a usable notifier command. The result gates
// only the visual notification; the sound cue plays regardless.
func (d *Desktop) RequestPermission() bool {
	d.permitted = probeNotifier()
	if !d.permitted {
		logging.Logger.Info("no notifier command available, visual notifications disabled")
	}
	return d.permitted
}

func (d *Desktop) Notify(mode store.TimerMode) {
	if d.soundEnabled {
		if err := playSound(); err != nil {
			logging.Logger.Warn("play notification sound", "error", err)
		}
	}

	if !d.permitted {
		return
	}
	body := modeMessages[mode]
	if err := sendNotification("Timer Complete!", body); err != nil {
		logging.Logger.Warn("send notification", "error", err)
	}
}

// SetSoundEnabled applies a settings change.
func (d *Desktop) SetSoundEnabled(enabled bool) {
	d.soundEnabled = enabled
}

// terminalBell is the cross-platform sound fallback.
func terminalBell() error {
	fmt.Print("\a")
	return nil
}
