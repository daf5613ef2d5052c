package types

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Config holds the external tool paths and working directories used by the
// pipeline. It is constructed once at startup and passed by reference; there
// is no ambient global configuration.
type Config struct {
	ExifToolPath  string
	FFmpegPath    string
	MediaInfoPath string

	// WorkDir is the scratch area for intermediate files before relocation.
	WorkDir string
	// OutputDir is the root of the organized folder hierarchy.
	OutputDir string
}

// NewConfig builds a Config with tool paths discovered from PATH. A tool
// that cannot be found keeps its bare name so a later invocation produces a
// normal "not found" error instead of an empty command.
func NewConfig() *Config {
	cfg := &Config{
		ExifToolPath:  findTool("exiftool"),
		FFmpegPath:    findTool("ffmpeg"),
		MediaInfoPath: findTool("mediainfo"),
	}

	if home, err := os.UserHomeDir(); err == nil {
		cfg.WorkDir = filepath.Join(home, ".mediasort", "work")
	} else {
		cfg.WorkDir = filepath.Join(os.TempDir(), "mediasort-work")
	}

	return cfg
}

// EnsureWorkDir creates the scratch directory if it does not exist yet.
func (c *Config) EnsureWorkDir() error {
	return os.MkdirAll(c.WorkDir, 0o755)
}

func findTool(name string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return name
}
