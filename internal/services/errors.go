package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureHint returns an operator-facing next step for a stage error. The
// hint is attached to failure logs as error_hint.
func FailureHint(err error) string {
	switch {
	case err == nil:
		return "check logs for details"
	case errors.Is(err, ErrExternalTool):
		return "verify ffmpeg, ffprobe and uvx are installed (presentcoach deps check)"
	case errors.Is(err, ErrConfiguration):
		return "review the configuration file (presentcoach config validate)"
	case errors.Is(err, ErrValidation):
		return "inspect the source video; it may be unreadable or too short"
	case errors.Is(err, ErrNotFound):
		return "confirm the video path exists and is readable"
	case errors.Is(err, ErrTimeout):
		return "retry the analysis; the external backend did not respond in time"
	default:
		return "retry the analysis; check logs for details"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
