package ffprobe

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", NBFrames: "750", AvgFrameRate: "30000/1001"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{Duration: "123.45"},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	video, ok := result.VideoStream()
	if !ok {
		t.Fatal("expected a video stream")
	}
	if video.FrameCount() != 750 {
		t.Fatalf("unexpected frame count %d", video.FrameCount())
	}
	if fps := video.FrameRate(); math.Abs(fps-29.97) > 0.01 {
		t.Fatalf("unexpected frame rate %v", fps)
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	stream := Stream{NBFrames: "N/A", AvgFrameRate: "0/0", RFrameRate: "25"}
	if stream.FrameCount() != 0 {
		t.Fatalf("expected frame count 0, got %d", stream.FrameCount())
	}
	if stream.FrameRate() != 25 {
		t.Fatalf("expected r_frame_rate fallback, got %v", stream.FrameRate())
	}
}

func TestParse(t *testing.T) {
	payload := []byte(`{"streams":[{"index":0,"codec_type":"video","nb_frames":"300","avg_frame_rate":"30/1"}],"format":{"duration":"10.000000"}}`)
	result, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	summary := Summarize(result)
	if summary.HasAudio {
		t.Fatal("expected no audio")
	}
	if !summary.HasVideo || summary.FrameCount != 300 || summary.FrameRate != 30 || summary.DurationSeconds != 10 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if _, err := Parse([]byte("nope")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestProberUsesInspector(t *testing.T) {
	p := &Prober{Binary: "custom", inspect: func(_ context.Context, binary, path string) (Result, error) {
		if binary != "custom" || path != "talk.mp4" {
			t.Errorf("unexpected inspect args %q %q", binary, path)
		}
		return Result{Streams: []Stream{{CodecType: "audio"}}, Format: Format{Duration: "bad"}}, nil
	}}
	summary, err := p.Probe(context.Background(), "talk.mp4")
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if !summary.HasAudio || summary.DurationSeconds != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	p.inspect = func(context.Context, string, string) (Result, error) { return Result{}, errors.New("boom") }
	if _, err := p.Probe(context.Background(), "talk.mp4"); err == nil {
		t.Fatal("expected error")
	}
}
