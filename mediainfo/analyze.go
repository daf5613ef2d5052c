// Package mediainfo wraps the mediainfo command-line tool for container and
// stream analysis. The tool itself is a black box; this package only parses
// its JSON report into the attributes the pipeline needs.
package mediainfo

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lepinkainen/mediasort/media"
)

// Service invokes mediainfo as a subprocess.
type Service struct {
	toolPath string
}

// New creates a Service using the given mediainfo executable path.
func New(toolPath string) *Service {
	return &Service{toolPath: toolPath}
}

// Version returns the installed mediainfo version. The library version is on
// the last line of --Version output.
func (s *Service) Version() (string, error) {
	output, err := exec.Command(s.toolPath, "--Version").Output()
	if err != nil {
		return "", fmt.Errorf("mediainfo not usable at %q: %w", s.toolPath, err)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1]), nil
}

// Result holds the analysis attributes of one media file.
type Result struct {
	ContainerFormat  string
	MIMEType         string
	VideoStreamCount int
	AudioStreamCount int
	VideoFormat      string
	VideoScanType    string
	AudioFormat      string
	IsLivePhoto      bool
}

// Apply populates a media record's format fields from the analysis result.
func (r *Result) Apply(f *media.File) {
	f.ContainerFormat = r.ContainerFormat
	f.VideoStreamCount = r.VideoStreamCount
	f.AudioStreamCount = r.AudioStreamCount
	f.VideoFormat = r.VideoFormat
	f.VideoScanType = r.VideoScanType
	f.AudioFormat = r.AudioFormat
	f.IsLivePhotoVideo = r.IsLivePhoto
}

// Analyze runs mediainfo against a single file and parses the JSON report.
func (s *Service) Analyze(path string) (*Result, error) {
	cmd := exec.Command(s.toolPath, "--Output=JSON", "--", path)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("mediainfo failed for %s: %w", path, err)
	}
	return parseReport(output)
}

// ValidateStreams checks the video stream layout of a file. Exactly one
// video stream is the normal case; two are allowed for footage that carries
// a depth-map style secondary stream.
func (s *Service) ValidateStreams(path string) (bool, string) {
	result, err := s.Analyze(path)
	if err != nil {
		return false, "could not analyze video file"
	}
	return ValidateStreamCounts(result)
}

// ValidateStreamCounts applies the stream-count policy to an analysis result.
func ValidateStreamCounts(r *Result) (bool, string) {
	switch {
	case r.VideoStreamCount == 0:
		return false, "no video stream found"
	case r.VideoStreamCount > 2:
		return false, fmt.Sprintf("too many video streams (%d)", r.VideoStreamCount)
	default:
		return true, ""
	}
}

// report mirrors the mediainfo --Output=JSON structure.
type report struct {
	Media struct {
		Track []track `json:"track"`
	} `json:"media"`
}

type track struct {
	Type              string `json:"@type"`
	Format            string `json:"Format"`
	InternetMediaType string `json:"InternetMediaType"`
	ScanType          string `json:"ScanType"`
	Extra             struct {
		ContentIdentifier string `json:"com_apple_quicktime_content_identifier"`
	} `json:"extra"`
}

func parseReport(data []byte) (*Result, error) {
	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing mediainfo report: %w", err)
	}

	result := &Result{}
	for _, t := range rep.Media.Track {
		switch t.Type {
		case "General":
			result.ContainerFormat = orUnknown(t.Format)
			result.MIMEType = orUnknown(t.InternetMediaType)
			// A non-empty QuickTime content identifier marks the video half
			// of an Apple Live Photo.
			result.IsLivePhoto = t.Extra.ContentIdentifier != ""
		case "Video":
			result.VideoStreamCount++
			if result.VideoStreamCount == 1 {
				result.VideoFormat = orUnknown(t.Format)
				result.VideoScanType = t.ScanType
			}
		case "Audio":
			result.AudioStreamCount++
			if result.AudioStreamCount == 1 {
				result.AudioFormat = orUnknown(t.Format)
			}
		}
	}

	return result, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
