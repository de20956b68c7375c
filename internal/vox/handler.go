// Package vox runs the listen, recognize, match, act cycle.
//
// Everything happens on the caller's goroutine. Reading a frame is the only
// place the loop waits for input, and speech output blocks it as well, so
// the assistant does not listen while it talks.
package vox

import (
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"time"

	"offvox/internal/audio"
	"offvox/internal/nlu"
	"offvox/internal/system"
	"offvox/pkg/stt"
)

// MaxConsecutiveFailures is how many frames in a row may fail to read or
// recognize before the source is considered gone.
const MaxConsecutiveFailures = 25

var ErrSourceFailed = errors.New("vox: audio source failed")

type State int

const (
	Listening State = iota
	Terminated
)

func (s State) String() string {
	switch s {
	case Listening:
		return "listening"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Speaker interface {
	Speak(text string) error
}

type VolumeController interface {
	Volume(ctx context.Context) (float64, error)
	SetVolume(ctx context.Context, level float64) error
	SetMute(ctx context.Context, mute bool) error
}

// BrightnessController errors wrapping brightness.ErrUnsupported mean the
// display cannot be controlled; anything else is a one-off failure.
type BrightnessController interface {
	Brightness(ctx context.Context) (int, error)
	SetBrightness(ctx context.Context, percent int) error
}

type System interface {
	Launch(app system.App) error
	OpenURL(url string) error
	Shutdown(delay time.Duration) error
	Restart(delay time.Duration) error
	Lock() error
}

type Config struct {
	Source     audio.Source
	Recognizer stt.Recognizer
	Speaker    Speaker
	Volume     VolumeController // nil disables volume commands for the session
	Brightness BrightnessController
	System     System
	Commands   nlu.Table        // nil => nlu.Commands()
	Now        func() time.Time // nil => time.Now
}

type Vox struct {
	source     audio.Source
	recognizer stt.Recognizer
	speaker    Speaker
	volume     VolumeController
	brightness BrightnessController
	system     System
	commands   nlu.Table
	now        func() time.Time

	state    State
	failures int
}

func New(cfg *Config) (*Vox, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("source is nil")
	}
	if cfg.Recognizer == nil {
		return nil, fmt.Errorf("recognizer is nil")
	}
	if cfg.Speaker == nil {
		return nil, fmt.Errorf("speaker is nil")
	}
	if cfg.System == nil {
		return nil, fmt.Errorf("system is nil")
	}

	v := &Vox{
		source:     cfg.Source,
		recognizer: cfg.Recognizer,
		speaker:    cfg.Speaker,
		volume:     cfg.Volume,
		brightness: cfg.Brightness,
		system:     cfg.System,
		commands:   cfg.Commands,
		now:        cfg.Now,
		state:      Listening,
	}
	if v.commands == nil {
		v.commands = nlu.Commands()
	}
	if v.now == nil {
		v.now = time.Now
	}

	return v, nil
}

func (v *Vox) State() State { return v.state }

// Run greets, then loops until an exit command, until the source is
// exhausted (io.EOF) or fails for good, or until ctx is done. It does not
// close the source or recognizer.
func (v *Vox) Run(ctx context.Context) error {
	if err := v.say("Offline voice assistant started"); err != nil {
		return err
	}

	log.Info("Vox ready")

	for v.state == Listening {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := v.source.ReadFrame()
		if errors.Is(err, io.EOF) {
			log.Info("Input exhausted")
			return v.drain(ctx)
		}
		if errors.Is(err, audio.ErrClosed) {
			return fmt.Errorf("%w: %w", ErrSourceFailed, err)
		}
		if err != nil {
			if err := v.fail("read", err); err != nil {
				return err
			}
			continue
		}

		final, err := v.recognizer.Accept(frame)
		if err != nil {
			if err := v.fail("recognize", err); err != nil {
				return err
			}
			continue
		}
		v.failures = 0

		if !final {
			continue
		}

		text, err := v.recognizer.Result()
		if err != nil {
			log.Warn("Failed to fetch result", "err", err)
			continue
		}

		if err := v.dispatch(ctx, text); err != nil {
			return err
		}
	}

	log.Info("Vox stopped")
	return nil
}

// Handle runs match-and-act on one non-empty utterance. It reports the
// intent that fired, if any. Only speech failures are returned; every
// other action failure is logged.
func (v *Vox) Handle(ctx context.Context, utterance string) (nlu.Intent, bool, error) {
	cmd, ok := v.commands.Match(utterance, v.has)
	if !ok {
		log.Debug("No command matched", "text", utterance)
		return "", false, nil
	}

	log.Debug("Matched", "intent", cmd.Intent)
	return cmd.Intent, true, v.act(ctx, cmd.Intent)
}

func (v *Vox) dispatch(ctx context.Context, text string) error {
	utterance := stt.Normalize(text)
	if utterance == "" {
		return nil
	}

	log.Info("Command", "text", utterance)

	_, _, err := v.Handle(ctx, utterance)
	return err
}

func (v *Vox) drain(ctx context.Context) error {
	text, err := v.recognizer.Flush()
	if err != nil {
		log.Warn("Failed to flush recognizer", "err", err)
		return nil
	}
	return v.dispatch(ctx, text)
}

func (v *Vox) fail(op string, err error) error {
	v.failures++
	log.Warn("Frame failed", "op", op, "failures", v.failures, "err", err)

	if v.failures >= MaxConsecutiveFailures {
		return fmt.Errorf("%w: %d consecutive failures: %w", ErrSourceFailed, v.failures, err)
	}
	return nil
}

func (v *Vox) has(c nlu.Capability) bool {
	switch c {
	case nlu.Volume:
		return v.volume != nil
	default:
		return false
	}
}
