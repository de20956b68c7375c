package audioconv

import (
	"bufio"
	"cmp"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	popus "github.com/pekim/opus"
)

const DefaultSampleRate = 16000

var ErrUnsupportedFormat = errors.New("audioconv: unsupported format")

type Options struct {
	SampleRate int // output rate, 0 => DefaultSampleRate
	MaxSamples int // 0 = no limit
}

func (o Options) rate() int {
	if o.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return o.SampleRate
}

// mono PCM in [-1, 1] at its native rate
type decoded struct {
	pcm  []float32
	rate int
}

type decodeFunc func(io.ReadSeeker) (decoded, error)

// DecodeFile reads a wav, mp3 or ogg (vorbis/opus) file and returns mono
// float samples at opt.SampleRate.
func DecodeFile(ctx context.Context, path string, opt Options) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(ctx, f, strings.ToLower(filepath.Ext(path)), opt)
}

// Decode picks a decoder from ext (".wav", ".mp3", ".ogg", ".oga"), falling
// back to sniffing the container magic when ext is unknown.
func Decode(ctx context.Context, r io.ReadSeeker, ext string, opt Options) ([]float32, error) {
	decoders, err := decodersFor(r, ext)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, dec := range decoders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("rewind: %w", err)
		}

		d, err := dec(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		return finish(d, opt), nil
	}

	return nil, fmt.Errorf("decode %s: %w", ext, errors.Join(errs...))
}

func decodersFor(r io.ReadSeeker, ext string) ([]decodeFunc, error) {
	switch ext {
	case ".wav":
		return []decodeFunc{decodeWAV}, nil
	case ".mp3":
		return []decodeFunc{decodeMP3}, nil
	case ".ogg", ".oga", ".opus":
		return []decodeFunc{decodeOggVorbis, decodeOggOpus}, nil
	}

	// Quick sniff
	magic, _ := bufio.NewReader(r).Peek(4)
	switch string(magic) {
	case "RIFF":
		return []decodeFunc{decodeWAV}, nil
	case "OggS":
		return []decodeFunc{decodeOggVorbis, decodeOggOpus}, nil
	}
	if isMP3(magic) {
		return []decodeFunc{decodeMP3}, nil
	}

	return nil, fmt.Errorf("%w: %q (supported: wav/mp3/ogg-vorbis/ogg-opus)", ErrUnsupportedFormat, ext)
}

// isMP3 matches an ID3v2 tag or a bare MPEG audio frame sync.
func isMP3(magic []byte) bool {
	if len(magic) >= 3 && string(magic[:3]) == "ID3" {
		return true
	}
	return len(magic) >= 2 && magic[0] == 0xFF && magic[1]&0xE0 == 0xE0
}

func finish(d decoded, opt Options) []float32 {
	x := d.pcm
	if d.rate != opt.rate() {
		x = resample(x, d.rate, opt.rate())
	}
	if opt.MaxSamples > 0 && len(x) > opt.MaxSamples {
		x = x[:opt.MaxSamples]
	}
	return x
}

func decodeWAV(r io.ReadSeeker) (decoded, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return decoded{}, errors.New("invalid wav")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return decoded{}, fmt.Errorf("read wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return decoded{}, errors.New("empty wav")
	}

	depth := cmp.Or(int(dec.BitDepth), 16)
	channels, rate := 1, 44100
	if f := buf.Format; f != nil {
		channels = cmp.Or(f.NumChannels, channels)
		rate = cmp.Or(f.SampleRate, rate)
	}

	full := float64(int64(1) << (depth - 1))
	pcm := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		pcm[i] = float32(max(-1, min(1, float64(v)/full)))
	}

	return decoded{pcm: toMono(pcm, channels), rate: rate}, nil
}

// go-mp3 always yields interleaved 16-bit stereo
func decodeMP3(r io.ReadSeeker) (decoded, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return decoded{}, fmt.Errorf("mp3 header: %w", err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return decoded{}, fmt.Errorf("read mp3: %w", err)
	}

	return decoded{
		pcm:  toMono(s16le(raw), 2),
		rate: cmp.Or(dec.SampleRate(), 44100),
	}, nil
}

func decodeOggVorbis(r io.ReadSeeker) (decoded, error) {
	pcm, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return decoded{}, fmt.Errorf("read vorbis: %w", err)
	}
	if format == nil || format.Channels <= 0 || format.SampleRate <= 0 {
		return decoded{}, errors.New("invalid ogg/vorbis stream")
	}
	return decoded{pcm: toMono(pcm, format.Channels), rate: format.SampleRate}, nil
}

// opus decodes at 48 kHz regardless of the input rate
const opusRate = 48000

func decodeOggOpus(r io.ReadSeeker) (decoded, error) {
	dec, err := popus.NewDecoder(r)
	if err != nil {
		return decoded{}, fmt.Errorf("opus header: %w", err)
	}
	defer dec.Destroy()

	channels := max(dec.ChannelCount(), 1)
	chunk := make([]int16, opusRate/2*channels)

	var pcm []float32
	for {
		n, err := dec.Read(chunk)
		for _, v := range chunk[:n*channels] {
			pcm = append(pcm, float32(v)/32768)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return decoded{}, fmt.Errorf("read opus: %w", err)
		}
	}
	if len(pcm) == 0 {
		return decoded{}, errors.New("empty ogg/opus stream")
	}

	return decoded{pcm: toMono(pcm, channels), rate: opusRate}, nil
}

func s16le(b []byte) []float32 {
	out := make([]float32, len(b)/2)
	for i := range out {
		out[i] = float32(int16(binary.LittleEndian.Uint16(b[2*i:]))) / 32768
	}
	return out
}

// toMono averages each interleaved frame across its channels.
func toMono(in []float32, channels int) []float32 {
	if channels <= 1 {
		return in
	}
	out := make([]float32, len(in)/channels)
	for i := range out {
		var sum float64
		for _, v := range in[i*channels : (i+1)*channels] {
			sum += float64(v)
		}
		out[i] = float32(sum / float64(channels))
	}
	return out
}

// resample converts between rates by linear interpolation. The output has
// ceil(len(in) * to / from) samples; positions past the end hold the last
// input sample.
func resample(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}

	step := float64(from) / float64(to)
	out := make([]float32, int(math.Ceil(float64(len(in))*float64(to)/float64(from))))
	last := len(in) - 1

	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= last {
			out[i] = in[last]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = in[j] + (in[j+1]-in[j])*frac
	}
	return out
}
