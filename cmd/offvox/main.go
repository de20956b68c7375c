package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lmittmann/tint"
	log "log/slog"

	"offvox/internal/audio"
	"offvox/internal/brightness"
	"offvox/internal/config"
	"offvox/internal/nlu"
	"offvox/internal/notify"
	"offvox/internal/system"
	"offvox/internal/tts"
	"offvox/internal/vox"
	"offvox/pkg/stt"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: cfg.LogLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error("Vox failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log.Info("Booting up", "engine", cfg.Engine, "model", cfg.ModelPath)
	if cfg.EnvFile != "" {
		log.Debug("Loaded env", "file", cfg.EnvFile)
	}

	speaker := tts.NewEspeak(tts.DefaultVoice, tts.DefaultRate)
	if err := speaker.Open(); err != nil {
		return fmt.Errorf("init speech: %w", err)
	}
	defer speaker.Close()

	log.Debug("Loaded speaker")

	rec, err := openRecognizer(cfg)
	if err != nil {
		return err
	}
	defer rec.Close()

	log.Debug("Loaded recognizer")

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	log.Debug("Loaded source")

	var volume vox.VolumeController
	if pv, err := audio.NewPulseVolume(ctx); err != nil {
		log.Warn("Volume control unavailable", "err", err)
	} else {
		volume = pv
	}

	v, err := vox.New(&vox.Config{
		Source:     src,
		Recognizer: rec,
		Speaker:    speaker,
		Volume:     volume,
		Brightness: brightness.New(""),
		System:     system.New(),
	})
	if err != nil {
		return err
	}

	log.Info("Boot up - successful")

	if err := notify.Chime(cfg.ChimePath); err != nil {
		if notify.IsMissing(err) {
			log.Debug("No chime", "path", cfg.ChimePath)
		} else {
			log.Warn("Failed to play chime", "err", err)
		}
	}

	err = v.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("Interrupted")
		return nil
	}
	return err
}

func openRecognizer(cfg *config.Config) (stt.Recognizer, error) {
	switch cfg.Engine {
	case config.EngineWhisper:
		w, err := stt.NewWhisper(cfg.ModelPath, audio.SampleRate, stt.Options{
			InitialPrompt: strings.Join(nlu.Commands().Phrases(), ", "),
		})
		if err != nil {
			return nil, fmt.Errorf("init whisper: %w", err)
		}
		return w, nil
	default:
		r, err := stt.NewVosk(cfg.ModelPath, audio.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("init vosk: %w", err)
		}
		return r, nil
	}
}

func openSource(ctx context.Context, cfg *config.Config) (audio.Source, error) {
	if cfg.InputPath != "" {
		f, err := audio.OpenFile(ctx, cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		log.Info("Replaying file", "path", cfg.InputPath)
		return f, nil
	}

	mic := audio.NewMic()
	if err := mic.Open(); err != nil {
		mic.Close()
		return nil, fmt.Errorf("open microphone: %w", err)
	}
	return mic, nil
}
