package pipeline

import "sync"

// ProgressFunc receives checkpoint updates. Percent never decreases within a
// run.
type ProgressFunc func(percent int, message string)

// Progress checkpoints.
const (
	ProgressExtracting       = 5
	ProgressTranscribing     = 15
	ProgressTranscribingLong = 20
	ProgressAudio            = 30
	ProgressText             = 45
	ProgressVideo            = 60
	ProgressVideoFrames      = 65
	ProgressVideoDetect      = 70
	ProgressVideoFinalize    = 80
	ProgressScoring          = 85
	ProgressFeedback         = 95
	ProgressComplete         = 100
)

// Checkpoint messages.
const (
	MessageExtracting       = "Extracting audio..."
	MessageTranscribing     = "Transcribing audio..."
	MessageTranscribingLong = "Transcribing audio (this may take a moment)..."
	MessageAudio            = "Analyzing audio..."
	MessageText             = "Analyzing text..."
	MessageVideo            = "Analyzing video..."
	MessageVideoFrames      = "Processing video frames..."
	MessageVideoDetect      = "Detecting faces and poses..."
	MessageVideoFinalize    = "Finalizing video analysis..."
	MessageScoring          = "Calculating scores..."
	MessageFeedback         = "Generating feedback..."
	MessageComplete         = "Analysis complete!"
)

// monotone forwards updates that do not move progress backwards.
type monotone struct {
	mu   sync.Mutex
	last int
	next ProgressFunc
}

func newMonotone(next ProgressFunc) *monotone {
	return &monotone{last: -1, next: next}
}

func (m *monotone) report(percent int, message string) {
	percent = min(max(percent, 0), 100)
	m.mu.Lock()
	if percent < m.last {
		m.mu.Unlock()
		return
	}
	m.last = percent
	m.mu.Unlock()
	if m.next != nil {
		m.next(percent, message)
	}
}
