package stt

import (
	"encoding/json"
	"fmt"
	"os"

	vosk "github.com/alphacep/vosk-api/go"
)

type voskResult struct {
	Text string `json:"text"`
}

// Vosk is a streaming Kaldi recognizer. It buffers internally and signals a
// finalized utterance when it hears an endpoint.
type Vosk struct {
	model *vosk.VoskModel
	rec   *vosk.VoskRecognizer
}

func NewVosk(modelDir string, sampleRate float64) (*Vosk, error) {
	if modelDir == "" {
		return nil, ErrNoModel
	}
	if _, err := os.Stat(modelDir); err != nil {
		return nil, fmt.Errorf("vosk model: %w", err)
	}

	vosk.SetLogLevel(-1)

	model, err := vosk.NewModel(modelDir)
	if err != nil {
		return nil, fmt.Errorf("load vosk model: %w", err)
	}

	rec, err := vosk.NewRecognizer(model, sampleRate)
	if err != nil {
		model.Free()
		return nil, fmt.Errorf("new vosk recognizer: %w", err)
	}

	return &Vosk{model: model, rec: rec}, nil
}

func (v *Vosk) Accept(frame []byte) (bool, error) {
	if v.rec == nil {
		return false, ErrClosed
	}

	switch rc := v.rec.AcceptWaveform(frame); {
	case rc < 0:
		return false, fmt.Errorf("vosk accept waveform: rc=%d", rc)
	case rc > 0:
		return true, nil
	default:
		return false, nil
	}
}

func (v *Vosk) Result() (string, error) {
	if v.rec == nil {
		return "", ErrClosed
	}
	return decodeVosk(v.rec.Result())
}

func (v *Vosk) Flush() (string, error) {
	if v.rec == nil {
		return "", ErrClosed
	}
	return decodeVosk(v.rec.FinalResult())
}

func (v *Vosk) Close() error {
	if v.rec != nil {
		v.rec.Free()
		v.rec = nil
	}
	if v.model != nil {
		v.model.Free()
		v.model = nil
	}
	return nil
}

func decodeVosk(raw string) (string, error) {
	var res voskResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return "", fmt.Errorf("unmarshal vosk result: %w (raw: %s)", err, raw)
	}
	return res.Text, nil
}
