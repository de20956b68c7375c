package audio

import (
	"errors"
	"testing"

	"github.com/gordonklaus/portaudio"
)

type fakeStream struct {
	err     error
	reads   int
	stopped bool
	closed  bool
}

func (s *fakeStream) Read() error  { s.reads++; return s.err }
func (s *fakeStream) Stop() error  { s.stopped = true; return nil }
func (s *fakeStream) Close() error { s.closed = true; return nil }

func openedMic(stream *fakeStream) *Mic {
	m := NewMic()
	m.stream = stream
	for i := range m.buf {
		m.buf[i] = int16(i)
	}
	return m
}

func TestMicReadFrame(t *testing.T) {
	t.Run("overflow keeps the frame", func(t *testing.T) {
		m := openedMic(&fakeStream{err: portaudio.InputOverflowed})

		frame, err := m.ReadFrame()
		if err != nil {
			t.Fatalf("expected overflow to be tolerated, got %v", err)
		}
		if len(frame) != FrameSize*2 {
			t.Fatalf("expected %d bytes, got %d", FrameSize*2, len(frame))
		}
		if got := Samples(frame)[FrameSize-1]; got != int16(FrameSize-1) {
			t.Errorf("expected last sample %d, got %d", FrameSize-1, got)
		}
	})

	t.Run("other errors are returned", func(t *testing.T) {
		m := openedMic(&fakeStream{err: portaudio.DeviceUnavailable})

		frame, err := m.ReadFrame()
		if !errors.Is(err, portaudio.DeviceUnavailable) {
			t.Fatalf("expected wrapped device error, got %v", err)
		}
		if frame != nil {
			t.Errorf("expected no frame, got %d bytes", len(frame))
		}
	})

	t.Run("frames are not shared", func(t *testing.T) {
		m := openedMic(&fakeStream{})

		first, _ := m.ReadFrame()
		m.buf[0] = 1234
		second, _ := m.ReadFrame()
		if Samples(first)[0] != 0 || Samples(second)[0] != 1234 {
			t.Errorf("expected independent frames, got %d and %d", Samples(first)[0], Samples(second)[0])
		}
	})
}

func TestMicClose(t *testing.T) {
	stream := &fakeStream{}
	m := openedMic(stream)

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !stream.stopped || !stream.closed {
		t.Error("expected stream stopped and closed")
	}
	if _, err := m.ReadFrame(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
