package vision

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	recordFrame   = "frame"
	recordSummary = "summary"

	maxLineBytes = 1 << 20
)

// Frame is one sampled frame reported by the sidecar. Nil scores mean the
// detector produced no evidence for that frame.
type Frame struct {
	Face         bool     `json:"face"`
	EyeContact   *float64 `json:"eye_contact"`
	Pose         bool     `json:"pose"`
	Posture      *float64 `json:"posture"`
	Gesture      bool     `json:"gesture"`
	Brightness   *float64 `json:"brightness"`
	Contrast     *float64 `json:"contrast"`
	LaplacianVar *float64 `json:"laplacian_var"`
}

// Stream is the decoded sidecar output.
type Stream struct {
	Frames []Frame
	// FramesRead counts every decoded frame, sampled or not. Zero when the
	// sidecar sent no summary.
	FramesRead int
	FPS        float64
}

type record struct {
	Type       string  `json:"type"`
	FramesRead int     `json:"frames_read"`
	FPS        float64 `json:"fps"`
	Frame
}

// Parse decodes JSON-lines sidecar output. Blank lines are ignored.
func Parse(r io.Reader) (Stream, error) {
	var stream Stream
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Stream{}, fmt.Errorf("vision output line %d: %w", line, err)
		}
		switch strings.ToLower(strings.TrimSpace(rec.Type)) {
		case "", recordFrame:
			stream.Frames = append(stream.Frames, rec.Frame)
		case recordSummary:
			stream.FramesRead = rec.FramesRead
			stream.FPS = rec.FPS
		default:
			return Stream{}, fmt.Errorf("vision output line %d: unknown record type %q", line, rec.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return Stream{}, fmt.Errorf("read vision output: %w", err)
	}
	return stream, nil
}
