// Package pipeline contains the import stage and the processing state
// machine that drive media files from classification through conversion to
// their final destination. The pipeline is headless: all progress and log
// output goes through an Observer, and the three external tools are reached
// through small service interfaces so the core can be tested without them.
package pipeline

import (
	"github.com/lepinkainen/mediasort/media"
	"github.com/lepinkainen/mediasort/mediainfo"
)

// Log severity levels carried by observer events.
const (
	LevelInfo    = "INFO"
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// Observer receives progress, log and state-change events from a running
// batch. A Progress call with total 0 is a completion or status message, not
// a per-item progress step.
type Observer interface {
	Progress(current, total int, message string)
	Log(level, message string)
	FileChanged(file *media.File)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Progress(current, total int, message string) {}
func (NopObserver) Log(level, message string)                   {}
func (NopObserver) FileChanged(file *media.File)                {}

// MetadataService is the metadata collaborator surface the pipeline needs.
// The concrete implementation drives exiftool.
type MetadataService interface {
	Extract(paths []string) ([]map[string]any, error)
	CopyTags(source, dest string) error
	NormalizeDates(path string) error
	Organize(files []string, root string, isLivePhoto bool) (map[string]string, error)
	CaptureMode(path string) (string, error)
}

// TranscodeService is the conversion collaborator surface (ffmpeg).
type TranscodeService interface {
	Convert(source, dest, commandTemplate string) error
}

// AnalysisService is the media-analysis collaborator surface (mediainfo).
type AnalysisService interface {
	Analyze(path string) (*mediainfo.Result, error)
	ValidateStreams(path string) (bool, string)
}
