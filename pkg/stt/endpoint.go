package stt

import (
	"math"
	"time"
)

const (
	DefaultSilenceRMS      = 0.015
	DefaultSilenceDuration = 600 * time.Millisecond
	DefaultMaxUtterance    = 10 * time.Second
)

// Endpointer splits a continuous stream into utterances by frame energy:
// an utterance starts at the first loud frame and ends after enough quiet
// time, or when it grows past MaxLength.
type Endpointer struct {
	SampleRate int
	Threshold  float64
	Silence    time.Duration
	MaxLength  time.Duration

	speaking bool
	quiet    time.Duration
	buf      []float32
}

func NewEndpointer(sampleRate int) *Endpointer {
	return &Endpointer{
		SampleRate: sampleRate,
		Threshold:  DefaultSilenceRMS,
		Silence:    DefaultSilenceDuration,
		MaxLength:  DefaultMaxUtterance,
	}
}

// Push consumes one frame. When an utterance ends it is returned with done
// set and the Endpointer starts over.
func (e *Endpointer) Push(frame []float32) (utterance []float32, done bool) {
	if len(frame) == 0 {
		return nil, false
	}

	if frameRMS(frame) > e.Threshold {
		e.speaking = true
		e.quiet = 0
		e.buf = append(e.buf, frame...)
	} else if e.speaking {
		e.quiet += e.duration(len(frame))
		e.buf = append(e.buf, frame...)
		if e.quiet >= e.Silence {
			return e.cut(), true
		}
	}

	if e.speaking && e.duration(len(e.buf)) >= e.MaxLength {
		return e.cut(), true
	}

	return nil, false
}

// Drain returns whatever was captured of an unfinished utterance.
func (e *Endpointer) Drain() []float32 {
	if !e.speaking {
		return nil
	}
	return e.cut()
}

func (e *Endpointer) cut() []float32 {
	out := e.buf
	e.buf = nil
	e.speaking = false
	e.quiet = 0
	return out
}

func (e *Endpointer) duration(samples int) time.Duration {
	return time.Duration(samples) * time.Second / time.Duration(e.SampleRate)
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
