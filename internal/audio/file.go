package audio

import (
	"context"
	"fmt"
	"io"

	"offvox/pkg/audioconv"
)

// FileSource replays a decoded audio file as if it came from the microphone.
// The last frame is zero padded; after it ReadFrame returns io.EOF.
type FileSource struct {
	samples []int16
	pos     int
	closed  bool
}

func OpenFile(ctx context.Context, path string) (*FileSource, error) {
	pcm, err := audioconv.DecodeFile(ctx, path, audioconv.Options{SampleRate: SampleRate})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return NewSampleSource(FloatToInt16(pcm)), nil
}

// NewSampleSource serves frames from samples already at SampleRate.
func NewSampleSource(samples []int16) *FileSource {
	return &FileSource{samples: samples}
}

func (f *FileSource) ReadFrame() ([]byte, error) {
	if f.closed {
		return nil, ErrClosed
	}
	if f.pos >= len(f.samples) {
		return nil, io.EOF
	}

	end := min(f.pos+FrameSize, len(f.samples))
	frame := make([]byte, FrameSize*2)
	PutSamples(frame, f.samples[f.pos:end])
	f.pos = end

	return frame, nil
}

func (f *FileSource) Close() error {
	f.closed = true
	return nil
}
