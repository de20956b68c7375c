package system

import (
	"strconv"
	"time"
)

func appCommands(app App) [][]string {
	switch app {
	case Chrome:
		return [][]string{{"cmd", "/c", "start", "chrome"}}
	case Notepad:
		return [][]string{{"notepad"}}
	case Calculator:
		return [][]string{{"calc"}}
	case Explorer:
		return [][]string{{"explorer"}}
	default:
		return nil
	}
}

func urlCommands(url string) [][]string {
	return [][]string{{"rundll32", "url.dll,FileProtocolHandler", url}}
}

func powerCommands(restart bool, delay time.Duration) [][]string {
	flag := "/s"
	if restart {
		flag = "/r"
	}
	return [][]string{{"shutdown", flag, "/t", strconv.Itoa(seconds(delay))}}
}

func lockCommands() [][]string {
	return [][]string{{"rundll32.exe", "user32.dll,LockWorkStation"}}
}
