package audio

import (
	"encoding/binary"
	"errors"
)

// Capture format shared by every source. Recognizers are built for exactly this.
const (
	SampleRate = 16000
	Channels   = 1
	FrameSize  = 4096 // samples per read
)

var ErrClosed = errors.New("audio: source closed")

// Source yields fixed-size frames of mono s16le PCM.
// ReadFrame blocks until a frame is available. It returns io.EOF once a
// finite source is exhausted.
type Source interface {
	ReadFrame() ([]byte, error)
	Close() error
}

// PutSamples encodes s as little-endian 16-bit PCM into dst, which must hold
// at least 2*len(s) bytes.
func PutSamples(dst []byte, s []int16) {
	for i, v := range s {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(v))
	}
}

// Samples decodes little-endian 16-bit PCM. A trailing odd byte is dropped.
func Samples(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}

// FloatToInt16 converts [-1, 1] float samples, clipping anything outside.
func FloatToInt16(f []float32) []int16 {
	out := make([]int16, len(f))
	for i, x := range f {
		switch {
		case x >= 1:
			out[i] = 32767
		case x <= -1:
			out[i] = -32768
		default:
			out[i] = int16(x * 32767)
		}
	}
	return out
}
