package nlu

import "testing"

func withVolume(c Capability) bool { return c == Volume }

func TestMatchFirstWins(t *testing.T) {
	table := Commands()

	tests := []struct {
		utterance string
		has       func(Capability) bool
		want      Intent
	}{
		{"please open chrome and open notepad", withVolume, OpenChrome},
		{"open notepad and open chrome", withVolume, OpenChrome},
		{"open youtube please", withVolume, OpenYouTube},
		{"what time is it", withVolume, TellTime},
		{"what is the date and time", withVolume, TellTime},
		{"what is the date", withVolume, TellDate},
		{"volume up", withVolume, VolumeUp},
		{"decrease volume a bit", withVolume, VolumeDown},
		{"mute", withVolume, Mute},
		{"unmute", withVolume, Mute},
		{"increase brightness", withVolume, BrightnessUp},
		{"decrease brightness", nil, BrightnessDown},
		{"restart now", withVolume, Restart},
		{"shutdown and restart", withVolume, Shutdown},
		{"lock system", withVolume, LockSystem},
		{"stop assistant", withVolume, Exit},
		{"exit", nil, Exit},
		{"open google and exit", withVolume, OpenGoogle},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			cmd, ok := table.Match(tt.utterance, tt.has)
			if !ok {
				t.Fatalf("expected a match")
			}
			if cmd.Intent != tt.want {
				t.Errorf("expected %s, got %s", tt.want, cmd.Intent)
			}
		})
	}
}

func TestMatchSkipsMissingCapability(t *testing.T) {
	table := Commands()

	for _, u := range []string{"increase volume", "volume down", "mute", "unmute"} {
		if cmd, ok := table.Match(u, nil); ok {
			t.Errorf("%q: expected no match without volume, got %s", u, cmd.Intent)
		}
	}

	// falls through to a later ungated command
	cmd, ok := table.Match("mute the time", nil)
	if !ok || cmd.Intent != TellTime {
		t.Errorf("expected time, got %v %v", cmd.Intent, ok)
	}
}

func TestMatchNothing(t *testing.T) {
	if cmd, ok := Commands().Match("hello there", withVolume); ok {
		t.Errorf("expected no match, got %s", cmd.Intent)
	}
}

func TestCommandsOrder(t *testing.T) {
	want := []Intent{
		OpenChrome, OpenNotepad, OpenCalculator, OpenExplorer,
		VolumeUp, VolumeDown, Mute, Unmute,
		BrightnessUp, BrightnessDown,
		TellTime, TellDate,
		OpenYouTube, OpenGoogle,
		Shutdown, Restart, LockSystem,
		Exit,
	}

	table := Commands()
	if len(table) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(table))
	}
	for i, c := range table {
		if c.Intent != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], c.Intent)
		}
	}
}

func TestPhrases(t *testing.T) {
	table := Table{
		{Intent: Mute, Phrases: []string{"mute"}},
		{Intent: Unmute, Phrases: []string{"unmute", "mute"}},
		{Intent: Exit, Phrases: []string{"exit", "stop assistant"}},
	}

	got := table.Phrases()
	want := []string{"mute", "unmute", "exit", "stop assistant"}
	if len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if n := len(Commands().Phrases()); n != 22 {
		t.Errorf("expected 22 built-in phrases, got %d", n)
	}
}
