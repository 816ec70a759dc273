package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// PCM holds mono samples in [-1, 1].
type PCM struct {
	Samples    []float64
	SampleRate int
}

// DurationSeconds reports the length of the signal.
func (p PCM) DurationSeconds() float64 {
	if p.SampleRate <= 0 {
		return 0
	}
	return float64(len(p.Samples)) / float64(p.SampleRate)
}

// LoadWAV decodes a PCM WAV file.
func LoadWAV(path string) (PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return PCM{}, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return PCM{}, errors.New("open wav: not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return PCM{}, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || buf.Format == nil {
		return PCM{}, errors.New("decode wav: missing format")
	}
	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range frames {
		var sum float64
		for c := range channels {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / scale
	}
	return PCM{Samples: samples, SampleRate: buf.Format.SampleRate}, nil
}
