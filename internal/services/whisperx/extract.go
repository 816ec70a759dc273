package whisperx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ExtractAudio writes the first audio stream of source to dest as a mono
// 16 kHz PCM WAV file.
func (s *Service) ExtractAudio(ctx context.Context, source, dest string) error {
	if source == "" || dest == "" {
		return errors.New("extract audio: source and destination required")
	}
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	if err := s.run(ctx, s.ffmpegBinary, extractArgs(source, dest)...); err != nil {
		return fmt.Errorf("ffmpeg extract: %w", err)
	}
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("ffmpeg extract: audio file was not created: %w", err)
	}
	if info.Size() == 0 {
		return errors.New("ffmpeg extract: audio file is empty")
	}
	return nil
}

func extractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", strconv.Itoa(Channels),
		"-ar", strconv.Itoa(SampleRate),
		"-c:a", "pcm_s16le",
		dest,
	}
}
