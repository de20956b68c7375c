// Package stt turns 16 kHz mono s16le frames into finalized utterances.
//
// Two offline engines are provided: Vosk, which streams and detects
// utterance boundaries itself, and Whisper, which needs an Endpointer to cut
// the stream into utterances before transcribing each one.
package stt

import (
	"errors"
	"strings"
)

var (
	ErrNoModel = errors.New("stt: empty model path")
	ErrClosed  = errors.New("stt: recognizer closed")
)

type Recognizer interface {
	// Accept feeds one frame and reports whether an utterance just ended.
	Accept(frame []byte) (bool, error)
	// Result returns the transcript of the utterance that just ended.
	Result() (string, error)
	// Flush ends any utterance in progress and returns its transcript.
	Flush() (string, error)
	Close() error
}

// Normalize lowercases and trims a transcript. Empty means nothing was said.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
