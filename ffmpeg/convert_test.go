package ffmpeg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildCommand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		source   string
		dest     string
		expected string
	}{
		{
			name:     "simple template",
			template: "ffmpeg -i %s %s",
			source:   "/in/a.mts",
			dest:     "/out/a.mp4",
			expected: "ffmpeg -i /in/a.mts /out/a.mp4",
		},
		{
			name:     "quoted paths with filters",
			template: `ffmpeg -y -i "%s" -vf yadif=1 -c:v libx264 "%s"`,
			source:   "/in/clip 1.mts",
			dest:     "/out/clip 1.mp4",
			expected: `ffmpeg -y -i "/in/clip 1.mts" -vf yadif=1 -c:v libx264 "/out/clip 1.mp4"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildCommand(tt.template, tt.source, tt.dest); got != tt.expected {
				t.Errorf("BuildCommand() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestConvert_Success(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.bin")
	dest := filepath.Join(dir, "dest.bin")
	if err := os.WriteFile(source, []byte("payload"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	// A copy stands in for a real transcode; the verification logic is the
	// same either way.
	svc := New("ffmpeg")
	if err := svc.Convert(source, dest, `cp "%s" "%s"`); err != nil {
		t.Fatalf("Convert() failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading destination: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("destination content = %q, expected %q", data, "payload")
	}
}

func TestConvert_CommandFailure(t *testing.T) {
	dir := t.TempDir()
	svc := New("ffmpeg")

	err := svc.Convert(filepath.Join(dir, "in"), filepath.Join(dir, "out"), `false "%s" "%s"`)
	if err == nil {
		t.Fatal("Convert() succeeded despite a failing command")
	}
}

func TestConvert_MissingDestination(t *testing.T) {
	dir := t.TempDir()
	svc := New("ffmpeg")

	// The command exits zero but writes nothing
	err := svc.Convert(filepath.Join(dir, "in"), filepath.Join(dir, "out"), `true "%s" "%s"`)
	if err == nil {
		t.Fatal("Convert() succeeded without a destination file")
	}
	if !strings.Contains(err.Error(), "no destination file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConvert_EmptyDestination(t *testing.T) {
	dir := t.TempDir()
	svc := New("ffmpeg")

	err := svc.Convert(filepath.Join(dir, "in"), filepath.Join(dir, "out"), `touch "%s" "%s"`)
	if err == nil {
		t.Fatal("Convert() succeeded with an empty destination file")
	}
	if !strings.Contains(err.Error(), "empty destination") {
		t.Errorf("unexpected error: %v", err)
	}
}
