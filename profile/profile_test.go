package profile

import (
	"errors"
	"strings"
	"testing"
)

func TestLoad_Embedded(t *testing.T) {
	profiles, err := Load()
	if err != nil {
		t.Fatalf("Load() failed on embedded table: %v", err)
	}
	if len(profiles) == 0 {
		t.Fatal("Load() returned an empty profile table")
	}

	// The table must contain a plain keep-as-is rule for QuickTime AVC
	found := false
	for _, p := range profiles {
		if p.Key() == (Key{".mov", "AVC", "Progressive", "AAC", false}) {
			found = true
			if !p.IsCopyOnly() {
				t.Error("expected the plain .mov AVC profile to be copy-only")
			}
		}
	}
	if !found {
		t.Error("embedded table is missing the .mov AVC/Progressive/AAC profile")
	}
}

func TestParse_PreservesCount(t *testing.T) {
	data := []byte(`[
		{"UseCase":"a","OriginalFileExtension":".mov","VideoFormat":"AVC","VideoScanType":"Progressive","AudioFormat":"AAC","IsLivePhotoVideo":false,"FfmpegExecutionString":"","NewFileExtension":".mov"},
		{"UseCase":"b","OriginalFileExtension":".mp4","VideoFormat":"AVC","VideoScanType":"Progressive","AudioFormat":"AAC","IsLivePhotoVideo":false,"FfmpegExecutionString":"","NewFileExtension":".mp4"}
	]`)

	profiles, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Errorf("Parse() returned %d profiles, expected 2", len(profiles))
	}
}

func TestParse_DuplicateKey(t *testing.T) {
	// Same key tuple, extension differing only in case
	data := []byte(`[
		{"UseCase":"a","OriginalFileExtension":".mov","VideoFormat":"AVC","VideoScanType":"Progressive","AudioFormat":"AAC","IsLivePhotoVideo":false,"FfmpegExecutionString":"","NewFileExtension":".mov"},
		{"UseCase":"b","OriginalFileExtension":".MOV","VideoFormat":"AVC","VideoScanType":"Progressive","AudioFormat":"AAC","IsLivePhotoVideo":false,"FfmpegExecutionString":"","NewFileExtension":".mov"}
	]`)

	_, err := Parse(data)
	if err == nil {
		t.Fatal("Parse() accepted a duplicate profile key")
	}
	if !errors.Is(err, ErrDuplicateProfile) {
		t.Errorf("expected ErrDuplicateProfile, got: %v", err)
	}

	// The error must name the offending key fields so the source can be fixed
	for _, field := range []string{"OriginalFileExtension", "VideoFormat", "VideoScanType", "AudioFormat", "IsLivePhotoVideo"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("duplicate error does not mention %s: %v", field, err)
		}
	}
}

func TestParse_MissingSource(t *testing.T) {
	_, err := Parse(nil)
	if !errors.Is(err, ErrNoProfileSource) {
		t.Errorf("expected ErrNoProfileSource for empty source, got: %v", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	if err == nil {
		t.Error("Parse() accepted malformed JSON")
	}
}

func TestKey_LowercasesExtension(t *testing.T) {
	p := ConversionProfile{
		OriginalFileExtension: ".MOV",
		VideoFormat:           "AVC",
		VideoScanType:         "Progressive",
		AudioFormat:           "AAC",
	}

	if p.Key().Extension != ".mov" {
		t.Errorf("Key().Extension = %q, expected %q", p.Key().Extension, ".mov")
	}
}
