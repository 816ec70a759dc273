package deps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

// MinWorkDirFreeBytes is the free space a run needs for its scratch audio.
const MinWorkDirFreeBytes uint64 = 512 << 20

// CheckDiskSpace reports whether the filesystem holding path has at least
// minFree bytes available. Missing directories are checked at their nearest
// existing parent.
func CheckDiskSpace(path string, minFree uint64) Status {
	status := Status{
		Name:        "Work directory space",
		Command:     path,
		Description: fmt.Sprintf("At least %s free for scratch audio", humanize.IBytes(minFree)),
	}
	target, err := existingAncestor(path)
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	var fs unix.Statfs_t
	if err := unix.Statfs(target, &fs); err != nil {
		status.Detail = fmt.Sprintf("statfs %s: %v", target, err)
		return status
	}
	free := uint64(fs.Bavail) * uint64(fs.Bsize)
	if free < minFree {
		status.Detail = fmt.Sprintf("only %s free on %s", humanize.IBytes(free), target)
		return status
	}
	status.Available = true
	return status
}

func existingAncestor(path string) (string, error) {
	if path == "" {
		return "", errors.New("work directory not configured")
	}
	current := filepath.Clean(path)
	for {
		if _, err := os.Stat(current); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent for %s", path)
		}
		current = parent
	}
}
