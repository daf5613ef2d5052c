package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lepinkainen/mediasort/media"
)

// Importer turns a list of filesystem paths into classified media records.
type Importer struct {
	Metadata MetadataService
	Analysis AnalysisService
	Observer Observer
}

// Run classifies the given paths (directories are expanded recursively) and
// returns the new records, all in Pending state. Paths already present in
// the existing working set, files without a usable MIME type and files
// outside the image/video families are skipped with a log line; a skip never
// fails the batch. Metadata for the whole batch is extracted in a single
// collaborator call.
func (im *Importer) Run(paths []string, existing []*media.File) ([]*media.File, error) {
	ob := im.observer()

	expanded, err := expandPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("expanding import paths: %w", err)
	}
	if len(expanded) == 0 {
		ob.Progress(0, 0, "Nothing to import")
		return nil, nil
	}

	total := len(expanded)
	ob.Log(LevelInfo, fmt.Sprintf("Starting import of %d files", total))
	ob.Progress(0, total, "Extracting metadata...")

	metadata, err := im.Metadata.Extract(expanded)
	if err != nil {
		return nil, fmt.Errorf("extracting metadata: %w", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, f := range existing {
		known[f.SourceFile] = struct{}{}
	}

	var imported []*media.File
	for i, tags := range metadata {
		sourceFile, _ := tags["SourceFile"].(string)
		if sourceFile == "" {
			continue
		}

		ob.Progress(i+1, total, fmt.Sprintf("Importing %s", filepath.Base(sourceFile)))

		if _, dup := known[sourceFile]; dup {
			ob.Log(LevelInfo, fmt.Sprintf("Skipping %s - already imported", sourceFile))
			continue
		}

		record := im.classify(sourceFile, tags)
		if record == nil {
			continue
		}

		known[sourceFile] = struct{}{}
		imported = append(imported, record)
		ob.FileChanged(record)
	}

	ob.Log(LevelInfo, fmt.Sprintf("Imported %d of %d files", len(imported), total))
	ob.Progress(0, 0, "Import finished")
	return imported, nil
}

// classify builds a Pending record for one file, or nil if the file is not
// a supported media type.
func (im *Importer) classify(sourceFile string, tags map[string]any) *media.File {
	ob := im.observer()

	mimeType, _ := tags["MIMEType"].(string)
	if mimeType == "" || mimeType == "unknown" {
		ob.Log(LevelInfo, fmt.Sprintf("Skipping %s - no MIME type", sourceFile))
		return nil
	}
	if !media.SupportedMIME(mimeType) {
		ob.Log(LevelInfo, fmt.Sprintf("Skipping %s - unsupported MIME type: %s", sourceFile, mimeType))
		return nil
	}

	record := media.New(sourceFile, mimeType)

	if record.IsVideo() {
		result, err := im.Analysis.Analyze(sourceFile)
		if err != nil || result == nil {
			ob.Log(LevelWarning, fmt.Sprintf("Analysis failed for %s, marking formats unknown", sourceFile))
			record.SetUnknownFormats()
		} else {
			result.Apply(record)
		}
	}

	record.State = media.Pending
	return record
}

// expandPaths resolves the input list into plain files, walking directories
// recursively.
func expandPaths(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func (im *Importer) observer() Observer {
	if im.Observer == nil {
		return NopObserver{}
	}
	return im.Observer
}
