package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"presentcoach/internal/config"
)

// Requirement defines an external dependency presentcoach relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// Requirements lists the executables an analysis run invokes under cfg.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "Extracts 16 kHz mono audio"},
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "Reads duration and stream layout"},
		{Name: "uvx", Command: "uvx", Description: "Runs WhisperX transcription"},
	}
	vision := Requirement{
		Name:        "Vision sidecar",
		Command:     strings.TrimSpace(cfg.Vision.Command),
		Description: "Detects faces and poses; body language is skipped without it",
		Optional:    true,
	}
	return append(reqs, vision)
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Check runs every binary and disk check for cfg.
func Check(cfg *config.Config) []Status {
	results := CheckBinaries(Requirements(cfg))
	return append(results, CheckDiskSpace(cfg.Paths.WorkDir, MinWorkDirFreeBytes))
}

// Satisfied reports whether every required dependency is available.
func Satisfied(results []Status) bool {
	for _, result := range results {
		if !result.Optional && !result.Available {
			return false
		}
	}
	return true
}
