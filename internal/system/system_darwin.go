package system

import (
	"fmt"
	"time"
)

func appCommands(app App) [][]string {
	switch app {
	case Chrome:
		return [][]string{{"open", "-a", "Google Chrome"}}
	case Notepad:
		return [][]string{{"open", "-a", "TextEdit"}}
	case Calculator:
		return [][]string{{"open", "-a", "Calculator"}}
	case Explorer:
		return [][]string{{"open", "-a", "Finder"}}
	default:
		return nil
	}
}

func urlCommands(url string) [][]string {
	return [][]string{{"open", url}}
}

func powerCommands(restart bool, delay time.Duration) [][]string {
	verb := "shut down"
	if restart {
		verb = "restart"
	}
	script := fmt.Sprintf(`sleep %d && osascript -e 'tell application "System Events" to %s'`, seconds(delay), verb)
	return [][]string{{"sh", "-c", script}}
}

func lockCommands() [][]string {
	return [][]string{{"pmset", "displaysleepnow"}}
}
