package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// requiredTools are the external programs the pipeline drives.
var requiredTools = []string{"exiftool", "ffmpeg", "mediainfo"}

// ValidateToolDependencies checks that exiftool, ffmpeg and mediainfo are
// available in PATH.
func ValidateToolDependencies() error {
	for _, tool := range requiredTools {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found in PATH. %s", tool, installInstructions(tool))
		}
	}
	return nil
}

// installInstructions returns platform-specific installation instructions
func installInstructions(tool string) string {
	switch runtime.GOOS {
	case "darwin":
		return fmt.Sprintf("Install with: brew install %s", tool)
	case "linux":
		return fmt.Sprintf("Install with: apt-get install %s (Ubuntu/Debian) or yum install %s (CentOS/RHEL)", tool, tool)
	case "windows":
		return "Download the tool and add it to PATH"
	default:
		return "Install the tool and add it to PATH"
	}
}
