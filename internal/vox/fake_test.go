package vox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"offvox/internal/audio"
	"offvox/internal/brightness"
	"offvox/internal/system"
)

// fakeSource serves n silent frames, then tail (io.EOF when nil).
// errs injects a read error at a given read index.
type fakeSource struct {
	n     int
	reads int
	errs  map[int]error
	tail  error
}

func (s *fakeSource) ReadFrame() ([]byte, error) {
	i := s.reads
	s.reads++
	if err, ok := s.errs[i]; ok {
		return nil, err
	}
	if i >= s.n {
		if s.tail != nil {
			return nil, s.tail
		}
		return nil, io.EOF
	}
	return make([]byte, audio.FrameSize*2), nil
}

func (s *fakeSource) Close() error { return nil }

type step struct {
	final bool
	text  string
	err   error
}

// fakeRecognizer plays one step per accepted frame.
type fakeRecognizer struct {
	steps   []step
	i       int
	pending string
	flush   string
}

func said(texts ...string) []step {
	out := make([]step, len(texts))
	for i, t := range texts {
		out[i] = step{final: true, text: t}
	}
	return out
}

func (r *fakeRecognizer) Accept([]byte) (bool, error) {
	if r.i >= len(r.steps) {
		return false, nil
	}
	s := r.steps[r.i]
	r.i++
	if s.err != nil {
		return false, s.err
	}
	r.pending = s.text
	return s.final, nil
}

func (r *fakeRecognizer) Result() (string, error) { return r.pending, nil }
func (r *fakeRecognizer) Flush() (string, error)  { return r.flush, nil }
func (r *fakeRecognizer) Close() error            { return nil }

type recordingSpeaker struct {
	spoken []string
	err    error
}

func (s *recordingSpeaker) Speak(text string) error {
	if s.err != nil {
		return s.err
	}
	s.spoken = append(s.spoken, text)
	return nil
}

type fakeVolume struct {
	level float64
	muted bool
	calls int
}

func (f *fakeVolume) Volume(context.Context) (float64, error) {
	f.calls++
	return f.level, nil
}

func (f *fakeVolume) SetVolume(_ context.Context, level float64) error {
	f.calls++
	f.level = level
	return nil
}

func (f *fakeVolume) SetMute(_ context.Context, mute bool) error {
	f.calls++
	f.muted = mute
	return nil
}

type fakeBrightness struct {
	level int
	errs  []error // consumed one per Brightness call
}

func (f *fakeBrightness) Brightness(context.Context) (int, error) {
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	return f.level, nil
}

func (f *fakeBrightness) SetBrightness(_ context.Context, percent int) error {
	f.level = percent
	return nil
}

var errUnsupportedBrightness = fmt.Errorf("brightnessctl info: %w", brightness.ErrUnsupported)

type fakeSystem struct {
	calls []string
	err   error
}

func (f *fakeSystem) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeSystem) Launch(app system.App) error { return f.record("launch " + string(app)) }
func (f *fakeSystem) OpenURL(url string) error    { return f.record("open " + url) }
func (f *fakeSystem) Lock() error                 { return f.record("lock") }

func (f *fakeSystem) Shutdown(d time.Duration) error {
	return f.record("shutdown " + d.String())
}

func (f *fakeSystem) Restart(d time.Duration) error {
	return f.record("restart " + d.String())
}

var errMic = errors.New("device unavailable")
