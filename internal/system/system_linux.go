package system

import (
	"fmt"
	"os"
	"time"
)

func appCommands(app App) [][]string {
	switch app {
	case Chrome:
		return [][]string{{"google-chrome"}, {"google-chrome-stable"}, {"chromium"}, {"chromium-browser"}}
	case Notepad:
		return [][]string{{"gnome-text-editor"}, {"gedit"}, {"kate"}, {"mousepad"}, {"xed"}}
	case Calculator:
		return [][]string{{"gnome-calculator"}, {"kcalc"}, {"galculator"}, {"qalculate-gtk"}}
	case Explorer:
		home, err := os.UserHomeDir()
		if err != nil {
			home = "/"
		}
		return [][]string{{"xdg-open", home}}
	default:
		return nil
	}
}

func urlCommands(url string) [][]string {
	return [][]string{{"xdg-open", url}}
}

// systemd has no sub-minute delay, so the wait happens in a shell
func powerCommands(restart bool, delay time.Duration) [][]string {
	verb := "poweroff"
	if restart {
		verb = "reboot"
	}
	script := fmt.Sprintf("sleep %d && systemctl %s", seconds(delay), verb)
	return [][]string{{"sh", "-c", script}}
}

func lockCommands() [][]string {
	return [][]string{{"loginctl", "lock-session"}, {"xdg-screensaver", "lock"}}
}
