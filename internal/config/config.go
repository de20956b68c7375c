// Package config resolves the optional runtime knobs. With no flags and no
// environment every field falls back to a compiled-in default next to the
// executable.
package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"
)

type Engine string

const (
	EngineVosk    Engine = "vosk"
	EngineWhisper Engine = "whisper"
)

const (
	VoskModelDir     = "vosk-model-small-en-us-0.15"
	WhisperModelFile = "models/ggml-base.en.bin"
	ChimeFile        = "beep.mp3"
)

var (
	ErrUnknownEngine = errors.New("config: unknown engine")
	ErrUnknownLevel  = errors.New("config: unknown log level")
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

type Config struct {
	LogLevel  log.Level
	Engine    Engine
	ModelPath string
	InputPath string // replay file instead of the microphone, empty = mic
	ChimePath string
	EnvFile   string // dotenv file that was loaded, empty when none
}

// Load parses args (without the program name), loads the dotenv file named
// by -e, if any, and applies OFFVOX_* overrides. Flags beat environment,
// environment beats defaults.
func Load(args []string) (*Config, error) {
	base, err := exeDir()
	if err != nil {
		return nil, err
	}
	return load(args, base)
}

func load(args []string, base string) (*Config, error) {
	fs := cli.NewFlagSet("offvox", cli.ContinueOnError)
	envFile := fs.StringP("env", "e", "", "Env file path (none by default)")
	logLevel := fs.StringP("log", "l", "info", "Log level")
	engine := fs.String("engine", string(EngineVosk), "Recognizer engine (vosk|whisper)")
	model := fs.StringP("model", "m", "", "Model path (default depends on engine)")
	input := fs.StringP("input", "i", "", "Replay an audio file instead of the microphone")
	chime := fs.String("chime", filepath.Join(base, ChimeFile), "Mp3 played when listening starts")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return nil, fmt.Errorf("load env %s: %w", *envFile, err)
		}
	}

	pick := func(flag, env, val string) string {
		if fs.Changed(flag) {
			return val
		}
		if v, ok := os.LookupEnv(env); ok && v != "" {
			return v
		}
		return val
	}

	cfg := &Config{
		Engine:    Engine(strings.ToLower(pick("engine", "OFFVOX_ENGINE", *engine))),
		ModelPath: pick("model", "OFFVOX_MODEL", *model),
		InputPath: pick("input", "OFFVOX_INPUT", *input),
		ChimePath: pick("chime", "OFFVOX_CHIME", *chime),
		EnvFile:   *envFile,
	}

	levelName := strings.ToLower(pick("log", "OFFVOX_LOG", *logLevel))
	level, ok := logLevelMap[levelName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, levelName)
	}
	cfg.LogLevel = level

	switch cfg.Engine {
	case EngineVosk:
		if cfg.ModelPath == "" {
			cfg.ModelPath = filepath.Join(base, VoskModelDir)
		}
	case EngineWhisper:
		if cfg.ModelPath == "" {
			cfg.ModelPath = filepath.Join(base, WhisperModelFile)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
	}

	return cfg, nil
}

func exeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
