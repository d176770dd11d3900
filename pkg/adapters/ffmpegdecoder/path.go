package ffmpegdecoder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrFFmpegNotFound is returned when ffmpeg is not found on the system.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// findTool searches for a tool such as ffmpeg or ffprobe.
// A non-empty custom path is used as-is and must exist.
func findTool(name, custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonDirs []string
	if runtime.GOOS == "windows" {
		commonDirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	} else {
		commonDirs = []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}

	for _, dir := range commonDirs {
		p := filepath.Join(dir, execName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// siblingProbe returns the ffprobe that sits next to ffmpegPath, if any.
func siblingProbe(ffmpegPath string) string {
	name := "ffprobe"
	if runtime.GOOS == "windows" {
		name = "ffprobe.exe"
	}
	p := filepath.Join(filepath.Dir(ffmpegPath), name)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
