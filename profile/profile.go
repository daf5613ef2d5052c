package profile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

//go:embed profiles.json
var embeddedProfiles []byte

// ErrDuplicateProfile is returned when two profiles share the same key tuple.
var ErrDuplicateProfile = errors.New("duplicate conversion profile")

// ErrNoProfileSource is returned when the profile source is missing or empty.
var ErrNoProfileSource = errors.New("conversion profile source not found")

// ConversionProfile is one immutable conversion rule. A profile is selected
// by exact match on its key tuple; the execution string decides whether the
// file is transcoded (non-empty template) or byte-copied (empty).
type ConversionProfile struct {
	UseCase               string `json:"UseCase"`
	Description           string `json:"Description"`
	OriginalFileExtension string `json:"OriginalFileExtension"`
	VideoFormat           string `json:"VideoFormat"`
	VideoScanType         string `json:"VideoScanType"`
	AudioFormat           string `json:"AudioFormat"`
	IsLivePhotoVideo      bool   `json:"IsLivePhotoVideo"`
	FfmpegExecutionString string `json:"FfmpegExecutionString"`
	NewFileExtension      string `json:"NewFileExtension"`
}

// Key is the 5-tuple used for exact-match profile lookup. Extension is
// compared lower-cased; empty format strings are valid key components.
type Key struct {
	Extension        string
	VideoFormat      string
	VideoScanType    string
	AudioFormat      string
	IsLivePhotoVideo bool
}

// Key returns the profile's lookup key with the extension lower-cased.
func (p ConversionProfile) Key() Key {
	return Key{
		Extension:        strings.ToLower(p.OriginalFileExtension),
		VideoFormat:      p.VideoFormat,
		VideoScanType:    p.VideoScanType,
		AudioFormat:      p.AudioFormat,
		IsLivePhotoVideo: p.IsLivePhotoVideo,
	}
}

// IsCopyOnly reports whether the profile copies instead of transcoding.
func (p ConversionProfile) IsCopyOnly() bool {
	return p.FfmpegExecutionString == ""
}

// Load parses the embedded profile table and validates key uniqueness.
// Loading fails on the first duplicate key rather than deduplicating, so a
// broken rule source is caught at startup.
func Load() ([]ConversionProfile, error) {
	return Parse(embeddedProfiles)
}

// Parse reads a profile table from raw JSON.
func Parse(data []byte) ([]ConversionProfile, error) {
	if len(data) == 0 {
		return nil, ErrNoProfileSource
	}

	var profiles []ConversionProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing conversion profiles: %w", err)
	}

	seen := make(map[Key]struct{}, len(profiles))
	for _, p := range profiles {
		key := p.Key()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: OriginalFileExtension=%q, VideoFormat=%q, VideoScanType=%q, AudioFormat=%q, IsLivePhotoVideo=%t",
				ErrDuplicateProfile, p.OriginalFileExtension, p.VideoFormat, p.VideoScanType, p.AudioFormat, p.IsLivePhotoVideo)
		}
		seen[key] = struct{}{}
	}

	return profiles, nil
}
