package notify

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Chime plays an mp3 to completion. A missing file is reported with
// os.ErrNotExist so callers can treat the chime as optional.
func Chime(path string) error {
	if path == "" {
		return fmt.Errorf("chime: %w", os.ErrNotExist)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("chime: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("chime: decode mp3: %w", err)
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("chime: speaker init: %w", err)
	}
	defer speaker.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done

	return nil
}

// IsMissing reports whether err came from an absent chime file.
func IsMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
