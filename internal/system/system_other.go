//go:build !linux && !windows && !darwin

package system

import "time"

func appCommands(App) [][]string { return nil }

func urlCommands(string) [][]string { return nil }

func powerCommands(bool, time.Duration) [][]string { return nil }

func lockCommands() [][]string { return nil }
