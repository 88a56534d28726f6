//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// playSound plays a completion sound on macOS using afplay.
func playSound() error {
	soundFiles := []string{
		"/System/Library/Sounds/Glass.aiff",
		"/System/Library/Sounds/Tink.aiff",
	}
	for _, soundFile := range soundFiles {
		cmd := exec.Command("afplay", soundFile)
		if err := cmd.Start(); err == nil {
			return nil
		}
	}
	return terminalBell()
}

// sendNotification shows a Notification Center banner via osascript.
func sendNotification(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return exec.Command("osascript", "-e", script).Start()
}

func probeNotifier() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}
