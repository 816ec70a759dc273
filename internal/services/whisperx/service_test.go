package whisperx

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestTranscribeLoadsWhisperXJSON(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "talk.wav")
	var gotName string
	var gotArgs []string
	svc := NewService(Config{Language: "english", CacheDir: "/models"}, "")
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		gotName, gotArgs = name, args
		payload := `{"language":"en","segments":[{"start":0,"end":1.5,"text":" Hello everyone "},{"start":1.5,"end":2,"text":"  "},{"start":2,"end":4,"text":"today we discuss Go."}]}`
		return os.WriteFile(filepath.Join(dir, "talk.json"), []byte(payload), 0o644)
	})

	transcript, err := svc.Transcribe(context.Background(), source, dir)
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if gotName != UVXCommand {
		t.Fatalf("expected %s, got %s", UVXCommand, gotName)
	}
	if !slices.Contains(gotArgs, "--language") || !slices.Contains(gotArgs, "en") {
		t.Fatalf("expected normalized language flag, got %v", gotArgs)
	}
	if !slices.Contains(gotArgs, "--model_dir") {
		t.Fatalf("expected model dir flag, got %v", gotArgs)
	}
	if transcript.Text != "Hello everyone today we discuss Go." {
		t.Fatalf("unexpected text %q", transcript.Text)
	}
	if len(transcript.Segments) != 2 {
		t.Fatalf("expected blank segments dropped, got %d", len(transcript.Segments))
	}
	if transcript.Language != "en" {
		t.Fatalf("unexpected language %q", transcript.Language)
	}
	if transcript.WordCount() != 6 {
		t.Fatalf("expected 6 words, got %d", transcript.WordCount())
	}
}

func TestTranscribeMissingOutput(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(Config{}, "")
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return nil })
	if _, err := svc.Transcribe(context.Background(), filepath.Join(dir, "a.wav"), dir); err == nil {
		t.Fatal("expected error when whisperx wrote no json")
	}
}

func TestBuildArgsDevices(t *testing.T) {
	cpu := NewService(Config{}, "").buildArgs("in.wav", "out")
	if !slices.Contains(cpu, CPUDevice) || !slices.Contains(cpu, CPUComputeType) {
		t.Fatalf("expected cpu device flags, got %v", cpu)
	}
	if !slices.Contains(cpu, VADMethodSilero) {
		t.Fatalf("expected silero by default, got %v", cpu)
	}

	gpu := NewService(Config{CUDAEnabled: true, VADMethod: VADMethodPyannote, HFToken: "hf_x"}, "").buildArgs("in.wav", "out")
	if !slices.Contains(gpu, CUDADevice) || !slices.Contains(gpu, CUDAIndexURL) {
		t.Fatalf("expected cuda flags, got %v", gpu)
	}
	if !slices.Contains(gpu, "hf_x") {
		t.Fatalf("expected hf token for pyannote, got %v", gpu)
	}
}

func TestExtractAudioUsesFFmpeg(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "talk.mp4")
	if err := os.WriteFile(source, []byte("video"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dest := filepath.Join(dir, "talk.wav")
	svc := NewService(Config{}, "/opt/ffmpeg")
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		if name != "/opt/ffmpeg" {
			t.Errorf("unexpected binary %s", name)
		}
		if !strings.Contains(strings.Join(args, " "), "-ar 16000") {
			t.Errorf("expected 16 kHz resample in %v", args)
		}
		return os.WriteFile(dest, []byte("RIFF"), 0o644)
	})
	if err := svc.ExtractAudio(context.Background(), source, dest); err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}
}

func TestExtractAudioMissingSource(t *testing.T) {
	svc := NewService(Config{}, "")
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return nil })
	if err := svc.ExtractAudio(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"), "out.wav"); err == nil {
		t.Fatal("expected error for missing source")
	}
}
