// Package exiftool wraps the exiftool command-line tool. All metadata
// reading and writing, date normalization and the final rename/organize pass
// go through here; the tool itself is treated as a black box.
package exiftool

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Service invokes exiftool as a subprocess.
type Service struct {
	toolPath string
}

// New creates a Service using the given exiftool executable path.
func New(toolPath string) *Service {
	return &Service{toolPath: toolPath}
}

// baseArgs are prepended to every invocation. Large file support is needed
// for multi-gigabyte camcorder footage, the charset flag for non-ASCII
// filenames on Windows.
func (s *Service) baseArgs() []string {
	return []string{"-api", "largefilesupport=1", "-charset", "filename=utf8"}
}

// Version returns the installed exiftool version string.
func (s *Service) Version() (string, error) {
	output, err := exec.Command(s.toolPath, "-ver").Output()
	if err != nil {
		return "", fmt.Errorf("exiftool not usable at %q: %w", s.toolPath, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Extract reads metadata for a batch of files in one invocation. The paths
// are passed through an argument file so arbitrarily large batches do not
// exceed command-line limits. Each returned map contains at least a
// SourceFile entry; the order follows the input order.
func (s *Service) Extract(paths []string) ([]map[string]any, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	argFile, err := writeArgFile(paths)
	if err != nil {
		return nil, err
	}
	defer os.Remove(argFile)

	args := append(s.baseArgs(), "-@", argFile, "-json")
	cmd := exec.Command(s.toolPath, args...)
	output, err := cmd.Output()
	if err != nil && len(output) == 0 {
		return nil, fmt.Errorf("exiftool metadata extraction failed: %w", err)
	}

	var metadata []map[string]any
	if err := json.Unmarshal(output, &metadata); err != nil {
		return nil, fmt.Errorf("parsing exiftool output: %w", err)
	}
	return metadata, nil
}

// CopyTags copies all metadata tags from source to dest in place.
func (s *Service) CopyTags(source, dest string) error {
	args := append(s.baseArgs(), "-q", "-tagsfromfile", source, dest)
	cmd := exec.Command(s.toolPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("copying tags to %s: %w\nexiftool output: %s", dest, err, strings.TrimSpace(string(output)))
	}

	removeBackup(dest)
	return nil
}

// NormalizeDates rewrites the filesystem dates of a file from its metadata.
// Assignments are evaluated left to right and later ones win, so for each
// target the last tag present on the file takes effect: CreationDate beats
// DateTimeOriginal beats CreateDate. This order deliberately differs from
// the folder-date cascade used by Organize.
func (s *Service) NormalizeDates(path string) error {
	args := append(s.baseArgs(),
		"-FileModifyDate<CreateDate",
		"-FileModifyDate<DateTimeOriginal",
		"-FileModifyDate<CreationDate",
		"-FileAccessDate<FileModifyDate",
		"-FileAccessDate<CreateDate",
		"-FileAccessDate<DateTimeOriginal",
		"-FileAccessDate<CreationDate",
		"-FileCreateDate<FileModifyDate",
		"-FileCreateDate<CreateDate",
		"-FileCreateDate<DateTimeOriginal",
		"-FileCreateDate<CreationDate",
		path,
	)

	cmd := exec.Command(s.toolPath, args...)
	output, err := cmd.CombinedOutput()
	// exiftool exits non-zero when some assignments fail their condition
	// check, which is expected for files missing optional tags.
	if err != nil && !strings.Contains(string(output), "files failed condition") {
		return fmt.Errorf("normalizing dates of %s: %w\nexiftool output: %s", path, err, strings.TrimSpace(string(output)))
	}

	removeBackup(path)
	return nil
}

// Tag reads a single tag value, trying the given tag names in order and
// returning the first non-empty value. An empty string means no candidate
// tag is present.
func (s *Service) Tag(path string, tagNames ...string) (string, error) {
	args := append(s.baseArgs(), "-json")
	for _, name := range tagNames {
		args = append(args, "-"+name)
	}
	args = append(args, path)

	cmd := exec.Command(s.toolPath, args...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("reading tags of %s: %w", path, err)
	}

	var metadata []map[string]any
	if err := json.Unmarshal(output, &metadata); err != nil {
		return "", fmt.Errorf("parsing exiftool output: %w", err)
	}
	if len(metadata) == 0 {
		return "", nil
	}

	for _, name := range tagNames {
		if value, ok := metadata[0][name].(string); ok && value != "" {
			return value, nil
		}
	}
	return "", nil
}

// CaptureMode returns the capture mode of a video, checking the plain tag
// first and the Apple Photos variant as fallback.
func (s *Service) CaptureMode(path string) (string, error) {
	return s.Tag(path, "CaptureMode", "ApplePhotosCaptureMode")
}

// writeArgFile writes one path per line into a temp file for -@ batching.
func writeArgFile(paths []string) (string, error) {
	f, err := os.CreateTemp("", "mediasort-args-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating exiftool argument file: %w", err)
	}

	for _, path := range paths {
		if _, err := fmt.Fprintln(f, path); err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", fmt.Errorf("writing exiftool argument file: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// removeBackup deletes the *_original copy exiftool leaves after in-place
// writes.
func removeBackup(path string) {
	_ = os.Remove(filepath.Join(filepath.Dir(path), filepath.Base(path)+"_original"))
}
