package audio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"strconv"
)

var (
	percentRe = regexp.MustCompile(`(\d+)\s*%`)
)

const defaultSink = "@DEFAULT_SINK@"

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PulseVolume drives the default sink through pactl, which works on both
// PulseAudio and PipeWire.
type PulseVolume struct {
	run Runner
}

// NewPulseVolume probes the default sink once. An error means volume control
// is unavailable for the whole session.
func NewPulseVolume(ctx context.Context) (*PulseVolume, error) {
	return newPulseVolume(ctx, execRunner)
}

func newPulseVolume(ctx context.Context, run Runner) (*PulseVolume, error) {
	v := &PulseVolume{run: run}
	if _, err := v.Volume(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

// Volume returns the default sink level as a 0..1 scalar. Only the first
// channel is read; pactl reports all channels at the same level unless
// the user has unbalanced them.
func (v *PulseVolume) Volume(ctx context.Context) (float64, error) {
	out, err := v.run(ctx, "pactl", "get-sink-volume", defaultSink)
	if err != nil {
		return 0, fmt.Errorf("pactl get-sink-volume: %w", err)
	}

	percent, err := parsePercent(string(out))
	if err != nil {
		return 0, fmt.Errorf("pactl get-sink-volume: %w", err)
	}

	return float64(percent) / 100, nil
}

func (v *PulseVolume) SetVolume(ctx context.Context, level float64) error {
	level = math.Max(0, math.Min(1, level))
	arg := fmt.Sprintf("%d%%", int(math.Round(level*100)))

	if _, err := v.run(ctx, "pactl", "set-sink-volume", defaultSink, arg); err != nil {
		return fmt.Errorf("pactl set-sink-volume %s: %w", arg, err)
	}
	return nil
}

func (v *PulseVolume) SetMute(ctx context.Context, mute bool) error {
	arg := "0"
	if mute {
		arg = "1"
	}

	if _, err := v.run(ctx, "pactl", "set-sink-mute", defaultSink, arg); err != nil {
		return fmt.Errorf("pactl set-sink-mute %s: %w", arg, err)
	}
	return nil
}

// "Volume: front-left: 32768 /  50% / -18.06 dB,   front-right: ..."
func parsePercent(text string) (int, error) {
	m := percentRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0, fmt.Errorf("no volume percentage in %q", text)
	}
	return strconv.Atoi(m[1])
}
