package ffprobe

import (
	"context"
	"math"
)

// Summary is the reduced view of a media file the analysis pipeline needs.
type Summary struct {
	DurationSeconds float64
	HasAudio        bool
	HasVideo        bool
	FrameCount      int
	FrameRate       float64
}

// Prober inspects media files with a configured ffprobe binary.
type Prober struct {
	Binary string

	inspect func(ctx context.Context, binary, path string) (Result, error)
}

// NewProber returns a Prober for binary ("ffprobe" when empty).
func NewProber(binary string) *Prober {
	return &Prober{Binary: binary, inspect: Inspect}
}

// Probe inspects path and summarizes it.
func (p *Prober) Probe(ctx context.Context, path string) (Summary, error) {
	inspect := p.inspect
	if inspect == nil {
		inspect = Inspect
	}
	result, err := inspect(ctx, p.Binary, path)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(result), nil
}

// Summarize reduces an ffprobe Result. NaN durations collapse to 0.
func Summarize(r Result) Summary {
	duration := r.DurationSeconds()
	if math.IsNaN(duration) || duration < 0 {
		duration = 0
	}
	summary := Summary{
		DurationSeconds: duration,
		HasAudio:        r.AudioStreamCount() > 0,
		HasVideo:        r.VideoStreamCount() > 0,
	}
	if video, ok := r.VideoStream(); ok {
		summary.FrameCount = video.FrameCount()
		summary.FrameRate = video.FrameRate()
	}
	return summary
}
