//go:build linux

package notify

import "os/exec"

// playSound plays a completion sound through the freedesktop sound theme,
// trying paplay then aplay.
func playSound() error {
	soundFiles := []string{
		"/usr/share/sounds/freedesktop/stereo/complete.oga",
		"/usr/share/sounds/freedesktop/stereo/bell.oga",
	}
	for _, soundFile := range soundFiles {
		cmd := exec.Command("paplay", soundFile)
		if err := cmd.Start(); err == nil {
			return nil
		}
	}
	if err := exec.Command("aplay", "/usr/share/sounds/alsa/Front_Center.wav").Start(); err == nil {
		return nil
	}
	return terminalBell()
}

// sendNotification shows a desktop notification via notify-send.
func sendNotification(title, body string) error {
	return exec.Command("notify-send", "--app-name=pomo", title, body).Start()
}

func probeNotifier() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}
