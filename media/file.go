package media

import "path/filepath"

// ProcessingState tracks a file through the processing pipeline. Transitions
// only move forward: Pending -> InProgress -> Success or Error.
type ProcessingState int

const (
	NoState ProcessingState = iota
	Pending
	InProgress
	Success
	Warning
	Error
)

func (s ProcessingState) String() string {
	switch s {
	case NoState:
		return "NoState"
	case Pending:
		return "Pending"
	case InProgress:
		return "InProgress"
	case Success:
		return "Success"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state ends processing for this run.
func (s ProcessingState) Terminal() bool {
	return s == Success || s == Warning || s == Error
}

// File is the per-item record for one imported media file. The source path
// is the unique key within a working set; format fields are populated from
// the analysis tool during import.
type File struct {
	SourceFile string
	FileName   string
	MIMEType   string

	ContainerFormat  string
	VideoFormat      string
	VideoScanType    string
	VideoStreamCount int
	AudioFormat      string
	AudioStreamCount int
	IsLivePhotoVideo bool

	IntermediateFile string
	DestinationFile  string
	State            ProcessingState
}

// New creates a record for the given source path in NoState.
func New(sourceFile, mimeType string) *File {
	return &File{
		SourceFile: sourceFile,
		FileName:   filepath.Base(sourceFile),
		MIMEType:   mimeType,
	}
}

// Extension returns the source file's extension including the dot, with its
// original casing intact.
func (f *File) Extension() string {
	return filepath.Ext(f.SourceFile)
}

// SetUnknownFormats marks the format fields of a record whose analysis
// failed. "Unknown" is a valid, matchable value for the profile matcher, not
// an error sentinel.
func (f *File) SetUnknownFormats() {
	f.ContainerFormat = "Unknown"
	f.VideoFormat = "Unknown"
	f.VideoScanType = "Unknown"
	f.AudioFormat = "Unknown"
}

// IsVideo reports whether the record belongs to the video MIME family.
func (f *File) IsVideo() bool {
	return hasMIMEPrefix(f.MIMEType, "video")
}

// IsImage reports whether the record belongs to the image MIME family.
func (f *File) IsImage() bool {
	return hasMIMEPrefix(f.MIMEType, "image")
}
