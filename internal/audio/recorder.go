package audio

import (
	"fmt"
	log "log/slog"

	"github.com/gordonklaus/portaudio"
)

// inputStream is the part of *portaudio.Stream the Mic uses.
type inputStream interface {
	Read() error
	Stop() error
	Close() error
}

// Mic is the default input device opened through PortAudio.
type Mic struct {
	buf    []int16
	out    []byte
	stream inputStream
	inited bool
	closed bool
}

func NewMic() *Mic {
	return &Mic{
		buf: make([]int16, FrameSize),
		out: make([]byte, FrameSize*2),
	}
}

// Open initializes PortAudio and starts a blocking input stream.
// Close is safe to call whether or not Open succeeded.
func (m *Mic) Open() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	m.inited = true

	stream, err := portaudio.OpenDefaultStream(
		Channels, // in
		0,        // no out
		float64(SampleRate),
		len(m.buf),
		m.buf,
	)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start stream: %w", err)
	}

	m.stream = stream
	return nil
}

// ReadFrame blocks for one frame. An input overflow still returns the frame:
// the samples are whatever the driver kept, and the loop keeps going.
func (m *Mic) ReadFrame() ([]byte, error) {
	if m.stream == nil || m.closed {
		return nil, ErrClosed
	}

	if err := m.stream.Read(); err != nil {
		if err != portaudio.InputOverflowed {
			return nil, fmt.Errorf("read stream: %w", err)
		}
		log.Debug("Input overflowed, frame degraded")
	}

	PutSamples(m.out, m.buf)

	frame := make([]byte, len(m.out))
	copy(frame, m.out)
	return frame, nil
}

func (m *Mic) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	var firstErr error
	if m.stream != nil {
		if err := m.stream.Stop(); err != nil {
			firstErr = fmt.Errorf("stop stream: %w", err)
		}
		if err := m.stream.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close stream: %w", err)
		}
		m.stream = nil
	}

	if m.inited {
		if err := portaudio.Terminate(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("portaudio terminate: %w", err)
		}
		m.inited = false
	}

	return firstErr
}
