//go:build !darwin && !linux

package notify

// playSound falls back to the terminal bell on unsupported platforms.
func playSound() error {
	return terminalBell()
}

func sendNotification(title, body string) error {
	return nil
}

func probeNotifier() bool {
	return false
}
