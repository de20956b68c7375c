package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"runtime"
	"strings"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

type Options struct {
	Language      string // e.g. "auto", "en"
	Threads       int    // <=0 => NumCPU()
	InitialPrompt string // optional prefix prompt, biases towards command words
}

// Whisper wraps a whisper.cpp model as a Recognizer. whisper.cpp works on
// whole clips, so frames go through an Endpointer first and each finished
// utterance is transcribed in one pass.
type Whisper struct {
	model   whisper.Model
	opt     Options
	ep      *Endpointer
	pending string
}

func NewWhisper(modelPath string, sampleRate int, opt Options) (*Whisper, error) {
	if modelPath == "" {
		return nil, ErrNoModel
	}
	m, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if opt.Language == "" {
		opt.Language = "en"
	}

	return &Whisper{
		model: m,
		opt:   opt,
		ep:    NewEndpointer(sampleRate),
	}, nil
}

func (w *Whisper) Accept(frame []byte) (bool, error) {
	if w.model == nil {
		return false, ErrClosed
	}

	clip, done := w.ep.Push(s16ToFloat(frame))
	if !done {
		return false, nil
	}

	text, err := w.transcribe(context.Background(), clip)
	if err != nil {
		return false, err
	}
	w.pending = text
	return true, nil
}

func (w *Whisper) Result() (string, error) {
	text := w.pending
	w.pending = ""
	return text, nil
}

func (w *Whisper) Flush() (string, error) {
	if w.model == nil {
		return "", ErrClosed
	}
	clip := w.ep.Drain()
	if len(clip) == 0 {
		return "", nil
	}
	return w.transcribe(context.Background(), clip)
}

func (w *Whisper) Close() error {
	if w.model == nil {
		return nil
	}
	err := w.model.Close()
	w.model = nil
	return err
}

func (w *Whisper) transcribe(ctx context.Context, pcm []float32) (string, error) {
	if len(pcm) == 0 {
		return "", errors.New("no audio samples provided")
	}

	wctx, err := w.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("new context: %w", err)
	}
	if err := configure(wctx, w.opt); err != nil {
		return "", err
	}

	if err := wctx.Process(pcm, nil, nil, nil); err != nil {
		return "", fmt.Errorf("process: %w", err)
	}

	var parts []string
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		s, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("next segment: %w", err)
		}
		if text := strings.TrimSpace(s.Text); !isAnnotation(text) {
			parts = append(parts, text)
		}
	}

	text := strings.Join(parts, " ")
	log.Debug("Whisper transcribed", "samples", len(pcm), "text", text)
	return text, nil
}

func configure(wctx whisper.Context, opt Options) error {
	if err := wctx.SetLanguage(opt.Language); err != nil {
		return fmt.Errorf("set language: %w", err)
	}

	threads := opt.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	wctx.SetThreads(uint(threads))

	if opt.InitialPrompt != "" {
		wctx.SetInitialPrompt(opt.InitialPrompt)
	}
	return nil
}

// whisper emits "[BLANK_AUDIO]", "(wind blowing)" and the like for non-speech
func isAnnotation(text string) bool {
	if text == "" {
		return true
	}
	first, last := text[0], text[len(text)-1]
	return first == '[' || first == '(' || last == ']' || last == ')'
}

func s16ToFloat(frame []byte) []float32 {
	out := make([]float32, len(frame)/2)
	const scale = 1.0 / 32768.0
	for i := range out {
		v := int16(uint16(frame[2*i]) | uint16(frame[2*i+1])<<8)
		out[i] = float32(v) * scale
	}
	return out
}
