// Package nlu maps a transcript to an intent with an ordered phrase table.
//
// The table is evaluated top to bottom and the first command whose phrase
// occurs in the utterance, and whose required capability is present, wins.
// Later commands are never considered, so an utterance holding several
// trigger phrases always resolves to the earliest entry. Keep this in mind
// when adding commands: position in the table is precedence.
package nlu

import "strings"

type Intent string

const (
	OpenChrome     Intent = "open_chrome"
	OpenNotepad    Intent = "open_notepad"
	OpenCalculator Intent = "open_calculator"
	OpenExplorer   Intent = "open_explorer"
	VolumeUp       Intent = "volume_up"
	VolumeDown     Intent = "volume_down"
	Mute           Intent = "mute"
	Unmute         Intent = "unmute"
	BrightnessUp   Intent = "brightness_up"
	BrightnessDown Intent = "brightness_down"
	TellTime       Intent = "time"
	TellDate       Intent = "date"
	OpenYouTube    Intent = "open_youtube"
	OpenGoogle     Intent = "open_google"
	Shutdown       Intent = "shutdown"
	Restart        Intent = "restart"
	LockSystem     Intent = "lock_system"
	Exit           Intent = "exit"
)

// Capability gates a command on an optional subsystem.
type Capability uint8

const (
	None Capability = iota
	Volume
)

func (c Capability) String() string {
	switch c {
	case None:
		return "none"
	case Volume:
		return "volume"
	default:
		return "unknown"
	}
}

type Command struct {
	Intent   Intent
	Phrases  []string // any one occurring as a substring triggers
	Requires Capability
}

func (c Command) matches(utterance string) bool {
	for _, p := range c.Phrases {
		if strings.Contains(utterance, p) {
			return true
		}
	}
	return false
}

// Table is an ordered command list. Order is precedence.
type Table []Command

// Commands is the built-in table.
//
// "unmute" contains "mute", so with volume available an "unmute" utterance
// resolves to Mute. The order is kept as is.
func Commands() Table {
	return Table{
		{Intent: OpenChrome, Phrases: []string{"open chrome"}},
		{Intent: OpenNotepad, Phrases: []string{"open notepad"}},
		{Intent: OpenCalculator, Phrases: []string{"open calculator"}},
		{Intent: OpenExplorer, Phrases: []string{"open explorer"}},

		{Intent: VolumeUp, Phrases: []string{"increase volume", "volume up"}, Requires: Volume},
		{Intent: VolumeDown, Phrases: []string{"decrease volume", "volume down"}, Requires: Volume},
		{Intent: Mute, Phrases: []string{"mute"}, Requires: Volume},
		{Intent: Unmute, Phrases: []string{"unmute"}, Requires: Volume},

		{Intent: BrightnessUp, Phrases: []string{"increase brightness"}},
		{Intent: BrightnessDown, Phrases: []string{"decrease brightness"}},

		{Intent: TellTime, Phrases: []string{"time"}},
		{Intent: TellDate, Phrases: []string{"date"}},

		{Intent: OpenYouTube, Phrases: []string{"open youtube"}},
		{Intent: OpenGoogle, Phrases: []string{"open google"}},

		{Intent: Shutdown, Phrases: []string{"shutdown"}},
		{Intent: Restart, Phrases: []string{"restart"}},
		{Intent: LockSystem, Phrases: []string{"lock system"}},
		{Intent: Exit, Phrases: []string{"exit", "stop assistant"}},
	}
}

// Phrases lists every trigger phrase once, in table order.
func (t Table) Phrases() []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range t {
		for _, p := range c.Phrases {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// Match returns the first command that fires for utterance. has reports
// whether a capability is present; a nil has treats every capability as
// absent.
func (t Table) Match(utterance string, has func(Capability) bool) (Command, bool) {
	for _, c := range t {
		if c.Requires != None && (has == nil || !has(c.Requires)) {
			continue
		}
		if c.matches(utterance) {
			return c, true
		}
	}
	return Command{}, false
}
