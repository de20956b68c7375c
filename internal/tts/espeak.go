package tts

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <string.h>
#include <espeak-ng/speak_lib.h>

static int
espeak_open(const char *voice, int rate)
{
	if (espeak_Initialize(AUDIO_OUTPUT_SYNCH_PLAYBACK, 500, NULL, 0) < 0)
	{ return -1; }

	if (espeak_SetVoiceByName(voice) != EE_OK)
	{ return -2; }

	if (espeak_SetParameter(espeakRATE, rate, 0) != EE_OK)
	{ return -3; }

	return 0;
}

static int
espeak_say(const char *text)
{
	if (!text)
	{ return -1; }

	if (espeak_Synth(text, strlen(text) + 1, 0, POS_CHARACTER, 0, espeakCHARS_AUTO, NULL, NULL) != EE_OK)
	{ return -2; }

	if (espeak_Synchronize() != EE_OK)
	{ return -3; }

	return 0;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

const (
	DefaultVoice = "en"
	DefaultRate  = 165 // words per minute
)

var ErrNotOpen = errors.New("tts: espeak not open")

// espeak-ng keeps global state, so only one Espeak may be open at a time.
var openMu sync.Mutex

// Espeak speaks through libespeak-ng. Speak returns only after playback.
type Espeak struct {
	voice string
	rate  int
	open  bool
}

func NewEspeak(voice string, rate int) *Espeak {
	if voice == "" {
		voice = DefaultVoice
	}
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Espeak{voice: voice, rate: rate}
}

func (e *Espeak) Open() error {
	if !openMu.TryLock() {
		return errors.New("tts: espeak already open")
	}

	cvoice := C.CString(e.voice)
	defer C.free(unsafe.Pointer(cvoice))

	if rc := C.espeak_open(cvoice, C.int(e.rate)); rc != 0 {
		C.espeak_Terminate()
		openMu.Unlock()
		return fmt.Errorf("espeak_open failed: %d", int(rc))
	}

	e.open = true
	return nil
}

func (e *Espeak) Speak(text string) error {
	if !e.open {
		return ErrNotOpen
	}
	if text == "" {
		return nil
	}

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	if rc := C.espeak_say(ctext); rc != 0 {
		return fmt.Errorf("espeak_say failed: %d", int(rc))
	}

	return nil
}

func (e *Espeak) Close() error {
	if !e.open {
		return nil
	}
	e.open = false
	defer openMu.Unlock()

	if rc := C.espeak_Terminate(); rc != 0 {
		return fmt.Errorf("espeak_Terminate failed: %d", int(rc))
	}
	return nil
}
