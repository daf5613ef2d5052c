package exiftool

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// folderDateFormat renders the date subfolder as Year/MonthNumber-MonthName.
const folderDateFormat = "%Y/%m-%B"

// dateCascade lists the timestamp tags tried for the destination folder, in
// priority order. FileModifyDate first: post-conversion files may carry no
// embedded dates at all, while the modify date survives a timestamped copy.
var dateCascade = []string{"FileModifyDate", "CreateDate", "DateTimeOriginal", "CreationDate"}

// Organize moves a batch of files into the camera-model/date hierarchy under
// root and returns the verified source-to-destination mapping. Files whose
// destination could not be verified on disk are absent from the mapping.
//
// The actual rename decision is delegated to exiftool: for each date source
// an unknown_camera_model fallback and a ${Model} variant are emitted, and
// since exiftool evaluates -filename< assignments left to right with later
// valid ones winning, the rightmost template whose tags all resolve decides
// the destination. %-.37f drops the trailing intermediate-file UID from the
// basename and %+2c appends _01, _02... on collision.
func (s *Service) Organize(files []string, root string, isLivePhoto bool) (map[string]string, error) {
	if len(files) == 0 {
		return map[string]string{}, nil
	}

	argFile, err := writeArgFile(files)
	if err != nil {
		return nil, err
	}
	defer os.Remove(argFile)

	args := append(s.baseArgs(), "-L", "-@", argFile, "-d", folderDateFormat)
	args = append(args, filenameTemplates(root, isLivePhoto)...)
	args = append(args, "-v")

	cmd := exec.Command(s.toolPath, args...)
	// Verbose move lines go to stdout; a non-zero exit still usually moves
	// some of the batch, so the transcript is parsed either way and the
	// per-file verification decides success.
	output, err := cmd.Output()
	if err != nil && len(output) == 0 {
		return nil, fmt.Errorf("exiftool organize failed: %w", err)
	}

	mapping := make(map[string]string)
	for source, dest := range parseRenames(string(output)) {
		if _, statErr := os.Stat(dest); statErr == nil {
			mapping[source] = dest
		}
	}
	return mapping, nil
}

// filenameTemplates builds the -filename< cascade. Live Photo videos get a
// fixed LivePhotoVideo segment, everything else a per-extension one.
func filenameTemplates(root string, isLivePhoto bool) []string {
	kind := "%e"
	if isLivePhoto {
		kind = "LivePhotoVideo"
	}

	var templates []string
	for _, dateTag := range dateCascade {
		templates = append(templates,
			fmt.Sprintf("-filename<%s/unknown_camera_model/%s/${%s}/%%-.37f%%+2c.%%e", root, kind, dateTag),
			fmt.Sprintf("-filename<%s/${Model}/%s/${%s}/%%-.37f%%+2c.%%e", root, kind, dateTag),
		)
	}
	return templates
}

// parseRenames extracts source -> destination pairs from the verbose
// transcript. Move lines look like:
//
//	'/work/a-uid.mov' --> '/out/Model/mov/2023/05-May/a.mov'
func parseRenames(transcript string) map[string]string {
	renames := make(map[string]string)

	for _, line := range strings.Split(transcript, "\n") {
		source, dest, found := strings.Cut(line, " --> ")
		if !found {
			continue
		}
		source = strings.Trim(strings.TrimSpace(source), "'")
		dest = strings.Trim(strings.TrimSpace(dest), "'")
		if source != "" && dest != "" {
			renames[source] = dest
		}
	}
	return renames
}
