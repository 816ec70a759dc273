package audioanalysis

import (
	"math"

	"presentcoach/internal/analysis"
)

const (
	frameLength = 2048
	hopLength   = 512
	// Pitch frames do not overlap; autocorrelation is the expensive step.
	pitchHop = frameLength

	minPitchHz = 70.0
	maxPitchHz = 400.0

	// Frames quieter than this RMS are treated as unvoiced.
	voicedRMS = 0.01
	// Minimum normalized autocorrelation for a periodic frame.
	voicingThreshold = 0.5

	powerFloor = 1e-10
	topDB      = 80.0
)

// frames yields the start offsets of analysis windows over n samples. Signals
// shorter than one window produce a single window.
func frames(n, hop int) []int {
	if n == 0 {
		return nil
	}
	if n <= frameLength {
		return []int{0}
	}
	starts := make([]int, 0, (n-frameLength)/hop+1)
	for start := 0; start+frameLength <= n; start += hop {
		starts = append(starts, start)
	}
	return starts
}

func window(samples []float64, start int) []float64 {
	return samples[start:min(start+frameLength, len(samples))]
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// estimatePitch returns the fundamental frequency of a frame, or 0 when the
// frame is not periodic within the speech range.
func estimatePitch(x []float64, sampleRate int) float64 {
	minLag := int(float64(sampleRate) / maxPitchHz)
	maxLag := int(float64(sampleRate) / minPitchHz)
	if minLag < 1 || maxLag >= len(x) {
		return 0
	}
	corr := make([]float64, maxLag+1)
	best := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var num, e0, e1 float64
		for i := 0; i+lag < len(x); i++ {
			num += x[i] * x[i+lag]
			e0 += x[i] * x[i]
			e1 += x[i+lag] * x[i+lag]
		}
		if e0 == 0 || e1 == 0 {
			continue
		}
		corr[lag] = num / math.Sqrt(e0*e1)
		best = max(best, corr[lag])
	}
	if best < voicingThreshold {
		return 0
	}
	// The first peak near the global maximum is the period; later ones are
	// its multiples.
	for lag := minLag; lag <= maxLag; lag++ {
		if corr[lag] < 0.9*best {
			continue
		}
		for lag < maxLag && corr[lag+1] > corr[lag] {
			lag++
		}
		return float64(sampleRate) / float64(lag)
	}
	return 0
}

// AnalyzePitch summarizes pitch over voiced frames. A signal with no voiced
// frames reports zeros with a zero stability score.
func AnalyzePitch(samples []float64, sampleRate int) analysis.Pitch {
	var values []float64
	for _, start := range frames(len(samples), pitchHop) {
		frame := window(samples, start)
		if rms(frame) < voicedRMS {
			continue
		}
		if f0 := estimatePitch(frame, sampleRate); f0 > 0 {
			values = append(values, f0)
		}
	}
	if len(values) == 0 {
		zero := 0.0
		return analysis.Pitch{
			Mean:           analysis.Float(zero),
			Std:            analysis.Float(zero),
			StabilityScore: analysis.Float(zero),
			Min:            analysis.Float(zero),
			Max:            analysis.Float(zero),
		}
	}
	mean, std, lo, hi := describe(values)
	return analysis.Pitch{
		Mean:           analysis.Float(round2(mean)),
		Std:            analysis.Float(round2(std)),
		StabilityScore: analysis.Float(round2(clampScore(100 - std/50*100))),
		Min:            analysis.Float(round2(lo)),
		Max:            analysis.Float(round2(hi)),
	}
}

// AnalyzeVolume summarizes frame loudness in dB relative to full scale.
func AnalyzeVolume(samples []float64) analysis.Volume {
	starts := frames(len(samples), hopLength)
	if len(starts) == 0 {
		return analysis.Volume{}
	}
	levels := make([]float64, len(starts))
	peak := math.Inf(-1)
	for i, start := range starts {
		r := rms(window(samples, start))
		levels[i] = 10 * math.Log10(max(r*r, powerFloor))
		peak = max(peak, levels[i])
	}
	for i := range levels {
		levels[i] = max(levels[i], peak-topDB)
	}
	mean, std, lo, hi := describe(levels)
	return analysis.Volume{
		MeanDB:         analysis.Float(round2(mean)),
		StdDB:          analysis.Float(round2(std)),
		StabilityScore: analysis.Float(round2(clampScore(100 - std/10*100))),
		LevelScore:     analysis.Float(VolumeLevelScore(mean)),
		Min:            analysis.Float(round2(lo)),
		Max:            analysis.Float(round2(hi)),
	}
}

// VolumeLevelScore rates mean loudness; -20 to -12 dB is optimal.
func VolumeLevelScore(meanDB float64) float64 {
	switch {
	case meanDB < -30:
		return 30
	case meanDB < -20:
		return 60
	case meanDB <= -12:
		return 100
	case meanDB <= -6:
		return 80
	default:
		return 50
	}
}

// describe returns mean, population standard deviation, min and max.
func describe(values []float64) (mean, std, lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values {
		mean += v
		lo = min(lo, v)
		hi = max(hi, v)
	}
	mean /= float64(len(values))
	for _, v := range values {
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / float64(len(values)))
	return mean, std, lo, hi
}

func clampScore(v float64) float64 {
	return min(100, max(0, v))
}
