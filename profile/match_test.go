package profile

import (
	"errors"
	"testing"
)

func testTable() []ConversionProfile {
	return []ConversionProfile{
		{
			UseCase:               "keep",
			OriginalFileExtension: ".mov",
			VideoFormat:           "AVC",
			VideoScanType:         "Progressive",
			AudioFormat:           "AAC",
			NewFileExtension:      ".mov",
		},
		{
			UseCase:               "convert",
			OriginalFileExtension: ".mts",
			VideoFormat:           "AVC",
			VideoScanType:         "Interlaced",
			AudioFormat:           "AC-3",
			FfmpegExecutionString: "ffmpeg -i %s %s",
			NewFileExtension:      ".mp4",
		},
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		key         Key
		wantUseCase string
		wantErr     error
	}{
		{
			name:        "exact match",
			key:         Key{".mov", "AVC", "Progressive", "AAC", false},
			wantUseCase: "keep",
		},
		{
			name:        "second entry",
			key:         Key{".mts", "AVC", "Interlaced", "AC-3", false},
			wantUseCase: "convert",
		},
		{
			name:    "no match on codec",
			key:     Key{".mov", "HEVC", "Progressive", "AAC", false},
			wantErr: ErrNoMatch,
		},
		{
			name:    "no match on live photo flag",
			key:     Key{".mov", "AVC", "Progressive", "AAC", true},
			wantErr: ErrNoMatch,
		},
		{
			name:    "no partial matching",
			key:     Key{".mov", "AVC", "", "", false},
			wantErr: ErrNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Match(testTable(), tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Match() error = %v, expected %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Match() failed: %v", err)
			}
			if p.UseCase != tt.wantUseCase {
				t.Errorf("Match() = %q, expected %q", p.UseCase, tt.wantUseCase)
			}
		})
	}
}

func TestMatch_Ambiguous(t *testing.T) {
	// A manufactured table with two entries sharing a key. Load prevents
	// this, but the matcher must still report it instead of picking one.
	table := []ConversionProfile{
		{UseCase: "a", OriginalFileExtension: ".mov", VideoFormat: "AVC", VideoScanType: "Progressive", AudioFormat: "AAC"},
		{UseCase: "b", OriginalFileExtension: ".MOV", VideoFormat: "AVC", VideoScanType: "Progressive", AudioFormat: "AAC"},
	}

	_, err := Match(table, Key{".mov", "AVC", "Progressive", "AAC", false})
	if !errors.Is(err, ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got: %v", err)
	}
}
