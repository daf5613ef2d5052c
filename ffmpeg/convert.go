// Package ffmpeg wraps ffmpeg for profile-driven video conversion.
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// conversionTimeout bounds a single conversion. Long camcorder tapes can
// take a while; anything past an hour is treated as stuck.
const conversionTimeout = time.Hour

// Service invokes ffmpeg as a subprocess.
type Service struct {
	toolPath string
}

// New creates a Service using the given ffmpeg executable path.
func New(toolPath string) *Service {
	return &Service{toolPath: toolPath}
}

// Version returns the first line of ffmpeg -version output.
func (s *Service) Version() (string, error) {
	output, err := exec.Command(s.toolPath, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg not usable at %q: %w", s.toolPath, err)
	}
	line, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(line), nil
}

// Convert runs a conversion profile's command template against source and
// dest. The template is a full shell command with two %s placeholders, the
// first for the source path and the second for the destination, and is run
// through the shell because profiles carry complete filter chains.
// Success requires both a zero exit status and a non-empty destination file.
func (s *Service) Convert(source, dest, commandTemplate string) error {
	command := BuildCommand(commandTemplate, source, dest)

	ctx, cancel := context.WithTimeout(context.Background(), conversionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("conversion of %s timed out after %s", source, conversionTimeout)
	}
	if err != nil {
		return fmt.Errorf("conversion of %s failed: %w\nffmpeg output: %s", source, err, lastLine(string(output)))
	}

	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("conversion of %s produced no destination file: %w", source, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("conversion of %s produced an empty destination file", source)
	}
	return nil
}

// BuildCommand substitutes source and dest into a profile command template.
func BuildCommand(template, source, dest string) string {
	return fmt.Sprintf(template, source, dest)
}

// lastLine returns the final non-empty line of tool output, which is where
// ffmpeg puts its actual error message.
func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no output"
}
