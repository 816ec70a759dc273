package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWAV(t *testing.T, path string, rate, channels int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}
}

func TestLoadWAVMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")
	writeWAV(t, path, 16000, 1, []int{0, 16384, -16384, 32767})

	pcm, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV returned error: %v", err)
	}
	if pcm.SampleRate != 16000 || len(pcm.Samples) != 4 {
		t.Fatalf("unexpected pcm rate=%d len=%d", pcm.SampleRate, len(pcm.Samples))
	}
	if math.Abs(pcm.Samples[1]-0.5) > 1e-9 || math.Abs(pcm.Samples[2]+0.5) > 1e-9 {
		t.Fatalf("unexpected scaling %v", pcm.Samples)
	}
}

func TestLoadWAVDownmixesStereo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeWAV(t, path, 8000, 2, []int{16384, 0, -16384, -16384})

	pcm, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV returned error: %v", err)
	}
	if len(pcm.Samples) != 2 {
		t.Fatalf("expected 2 mono frames, got %d", len(pcm.Samples))
	}
	if math.Abs(pcm.Samples[0]-0.25) > 1e-9 || math.Abs(pcm.Samples[1]+0.5) > 1e-9 {
		t.Fatalf("unexpected downmix %v", pcm.Samples)
	}
	if got := pcm.DurationSeconds(); got != 2.0/8000 {
		t.Fatalf("unexpected duration %v", got)
	}
}

func TestLoadWAVRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wav file"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWAV(path); err == nil {
		t.Fatal("expected error for invalid wav")
	}
}
