package vox

import (
	"context"
	"errors"
	log "log/slog"
	"math"
	"time"

	"offvox/internal/brightness"
	"offvox/internal/nlu"
	"offvox/internal/system"
)

const (
	VolumeStep     = 0.10
	BrightnessStep = 10
	PowerDelay     = 5 * time.Second

	YouTubeURL = "https://youtube.com"
	GoogleURL  = "https://google.com"
)

// Outcome of a brightness change, used to pick what to say.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeUnsupported
	OutcomeFailed
)

func (v *Vox) act(ctx context.Context, intent nlu.Intent) error {
	switch intent {
	case nlu.OpenChrome:
		return v.launch(system.Chrome, "Opening Chrome")
	case nlu.OpenNotepad:
		return v.launch(system.Notepad, "Opening Notepad")
	case nlu.OpenCalculator:
		return v.launch(system.Calculator, "Opening Calculator")
	case nlu.OpenExplorer:
		return v.launch(system.Explorer, "Opening File Explorer")

	case nlu.VolumeUp:
		return v.stepVolume(ctx, VolumeStep, "Increasing volume")
	case nlu.VolumeDown:
		return v.stepVolume(ctx, -VolumeStep, "Decreasing volume")
	case nlu.Mute:
		return v.mute(ctx, true, "Muted")
	case nlu.Unmute:
		return v.mute(ctx, false, "Unmuted")

	case nlu.BrightnessUp:
		return v.stepBrightness(ctx, BrightnessStep, "Increasing brightness")
	case nlu.BrightnessDown:
		return v.stepBrightness(ctx, -BrightnessStep, "Decreasing brightness")

	case nlu.TellTime:
		return v.say(v.now().Format("Time is 15 04"))
	case nlu.TellDate:
		return v.say(v.now().Format("Today is 02 January 2006"))

	case nlu.OpenYouTube:
		return v.browse(YouTubeURL, "Opening YouTube")
	case nlu.OpenGoogle:
		return v.browse(GoogleURL, "Opening Google")

	case nlu.Shutdown:
		return v.osAction("Shutting down", func() error { return v.system.Shutdown(PowerDelay) })
	case nlu.Restart:
		return v.osAction("Restarting", func() error { return v.system.Restart(PowerDelay) })
	case nlu.LockSystem:
		return v.osAction("Locking system", v.system.Lock)

	case nlu.Exit:
		v.state = Terminated
		return v.say("Goodbye")
	}

	log.Warn("No action for intent", "intent", intent)
	return nil
}

func (v *Vox) say(text string) error {
	log.Debug("Speaking", "text", text)
	return v.speaker.Speak(text)
}

func (v *Vox) launch(app system.App, ack string) error {
	return v.osAction(ack, func() error { return v.system.Launch(app) })
}

func (v *Vox) browse(url, ack string) error {
	return v.osAction(ack, func() error { return v.system.OpenURL(url) })
}

func (v *Vox) osAction(ack string, do func() error) error {
	if err := v.say(ack); err != nil {
		return err
	}
	if err := do(); err != nil {
		log.Warn("OS action failed", "action", ack, "err", err)
	}
	return nil
}

func (v *Vox) stepVolume(ctx context.Context, delta float64, ack string) error {
	if v.volume == nil {
		return nil
	}
	if err := v.say(ack); err != nil {
		return err
	}

	cur, err := v.volume.Volume(ctx)
	if err != nil {
		log.Warn("Failed to read volume", "err", err)
		return nil
	}

	next := clampVolume(cur + delta)
	if err := v.volume.SetVolume(ctx, next); err != nil {
		log.Warn("Failed to set volume", "level", next, "err", err)
		return nil
	}

	log.Debug("Volume changed", "from", cur, "to", next)
	return nil
}

func (v *Vox) mute(ctx context.Context, mute bool, ack string) error {
	if v.volume == nil {
		return nil
	}
	if err := v.say(ack); err != nil {
		return err
	}
	if err := v.volume.SetMute(ctx, mute); err != nil {
		log.Warn("Failed to set mute", "mute", mute, "err", err)
	}
	return nil
}

func (v *Vox) stepBrightness(ctx context.Context, delta int, ack string) error {
	switch level, outcome := v.adjustBrightness(ctx, delta); outcome {
	case OutcomeApplied:
		log.Debug("Brightness changed", "to", level)
		return v.say(ack)
	case OutcomeUnsupported:
		return v.say("Brightness control not supported")
	default:
		return v.say("Brightness change failed")
	}
}

func (v *Vox) adjustBrightness(ctx context.Context, delta int) (int, Outcome) {
	if v.brightness == nil {
		return 0, OutcomeUnsupported
	}

	cur, err := v.brightness.Brightness(ctx)
	if err != nil {
		return 0, brightnessOutcome(err)
	}

	next := clampBrightness(cur + delta)
	if err := v.brightness.SetBrightness(ctx, next); err != nil {
		return cur, brightnessOutcome(err)
	}
	return next, OutcomeApplied
}

func brightnessOutcome(err error) Outcome {
	if errors.Is(err, brightness.ErrUnsupported) {
		log.Info("Brightness control unsupported", "err", err)
		return OutcomeUnsupported
	}
	log.Warn("Brightness change failed", "err", err)
	return OutcomeFailed
}

// clampVolume keeps x in [0, 1] at whole-percent resolution.
func clampVolume(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return math.Round(x*100) / 100
}

func clampBrightness(x int) int {
	return max(0, min(100, x))
}
