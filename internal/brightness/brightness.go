// Package brightness reads and sets the display backlight through
// brightnessctl. Every call stands alone: a failure now says nothing about
// the next attempt.
package brightness

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrUnsupported means there is no way to control brightness here: the tool
// is missing or there is no backlight device.
var ErrUnsupported = errors.New("brightness: not supported")

type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type Controller struct {
	run    Runner
	device string
}

// New returns a controller for device, or for the first backlight
// brightnessctl finds when device is empty.
func New(device string) *Controller {
	return &Controller{run: execRunner, device: device}
}

// Brightness returns the current level in percent.
func (c *Controller) Brightness(ctx context.Context) (int, error) {
	out, err := c.run(ctx, "brightnessctl", c.args("-m", "info")...)
	if err != nil {
		return 0, classify("info", err)
	}
	return parseMachine(string(out))
}

// SetBrightness sets the level, clamped to 0..100 percent.
func (c *Controller) SetBrightness(ctx context.Context, percent int) error {
	percent = max(0, min(100, percent))

	_, err := c.run(ctx, "brightnessctl", c.args("-m", "set", strconv.Itoa(percent)+"%")...)
	if err != nil {
		return classify("set", err)
	}
	return nil
}

func (c *Controller) args(a ...string) []string {
	if c.device == "" {
		return a
	}
	return append([]string{"-d", c.device}, a...)
}

func classify(op string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("brightnessctl %s: %w", op, ErrUnsupported)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && strings.Contains(string(exitErr.Stderr), "No devices") {
		return fmt.Errorf("brightnessctl %s: %w", op, ErrUnsupported)
	}

	return fmt.Errorf("brightnessctl %s: %w", op, err)
}

// "intel_backlight,backlight,19200,100%,19200"
func parseMachine(out string) (int, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return 0, fmt.Errorf("brightnessctl: unexpected output %q", out)
	}

	percent, err := strconv.Atoi(strings.TrimSuffix(fields[3], "%"))
	if err != nil {
		return 0, fmt.Errorf("brightnessctl: bad percentage %q: %w", fields[3], err)
	}
	return percent, nil
}
