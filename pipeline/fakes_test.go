package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/lepinkainen/mediasort/media"
	"github.com/lepinkainen/mediasort/mediainfo"
)

// fakeMetadata is a scriptable stand-in for the exiftool service.
type fakeMetadata struct {
	extract        []map[string]any
	extractErr     error
	captureMode    string
	captureModeErr error
	copyTagsErr    error
	// organizeDest maps an intermediate path to its resolved destination;
	// absent entries fail destination resolution.
	organizeDest map[string]string
	organizeErr  error

	copiedTags    [][2]string
	normalized    []string
	organizeCalls []bool
}

func (f *fakeMetadata) Extract(paths []string) ([]map[string]any, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	if f.extract != nil {
		return f.extract, nil
	}
	// Default: echo back the input paths with no tags
	var out []map[string]any
	for _, p := range paths {
		out = append(out, map[string]any{"SourceFile": p})
	}
	return out, nil
}

func (f *fakeMetadata) CopyTags(source, dest string) error {
	f.copiedTags = append(f.copiedTags, [2]string{source, dest})
	return f.copyTagsErr
}

func (f *fakeMetadata) NormalizeDates(path string) error {
	f.normalized = append(f.normalized, path)
	return nil
}

func (f *fakeMetadata) Organize(files []string, root string, isLivePhoto bool) (map[string]string, error) {
	f.organizeCalls = append(f.organizeCalls, isLivePhoto)
	if f.organizeErr != nil {
		return nil, f.organizeErr
	}
	mapping := make(map[string]string)
	for _, file := range files {
		if dest, ok := f.organizeDest[file]; ok {
			mapping[file] = dest
		}
	}
	return mapping, nil
}

func (f *fakeMetadata) CaptureMode(path string) (string, error) {
	return f.captureMode, f.captureModeErr
}

// fakeAnalysis returns canned analysis results keyed by path.
type fakeAnalysis struct {
	results map[string]*mediainfo.Result
}

func (f *fakeAnalysis) Analyze(path string) (*mediainfo.Result, error) {
	if r, ok := f.results[path]; ok {
		return r, nil
	}
	return nil, errors.New("analysis failed")
}

func (f *fakeAnalysis) ValidateStreams(path string) (bool, string) {
	r, ok := f.results[path]
	if !ok {
		return false, "could not analyze video file"
	}
	return mediainfo.ValidateStreamCounts(r)
}

// fakeTranscode pretends to convert by writing a marker file, unless told
// to fail.
type fakeTranscode struct {
	err   error
	calls [][3]string
}

func (f *fakeTranscode) Convert(source, dest, template string) error {
	f.calls = append(f.calls, [3]string{source, dest, template})
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("converted"), 0o644)
}

// recordingObserver captures all events for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	progress [][2]int
	logs     []string
	states   []string
}

func (r *recordingObserver) Progress(current, total int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, [2]int{current, total})
}

func (r *recordingObserver) Log(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, fmt.Sprintf("%s: %s", level, message))
}

func (r *recordingObserver) FileChanged(file *media.File) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, fmt.Sprintf("%s=%s", file.FileName, file.State))
}

func (r *recordingObserver) hasLog(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range r.logs {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
