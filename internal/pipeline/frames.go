package pipeline

// maxPlausibleFrames bounds container frame counts; larger values come from
// overflowed or corrupt metadata.
const maxPlausibleFrames = 1_000_000

// SanitizeFrameCount replaces an implausible frame count with duration*fps.
// It returns 0 when neither source is usable.
func SanitizeFrameCount(frames int, duration, fps float64) int {
	if frames > 0 && frames <= maxPlausibleFrames {
		return frames
	}
	if duration > 0 && fps > 0 {
		return int(duration * fps)
	}
	return 0
}
