package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lepinkainen/mediasort/media"
	"github.com/lepinkainen/mediasort/profile"
)

// timelapseKeywords mark filenames whose missing audio track needs no
// further justification.
var timelapseKeywords = []string{"timelapse", "hyperlaps"}

// acceptableCaptureModes are the capture-mode tag values that justify a
// video without an audio stream.
var acceptableCaptureModes = []string{"Time-lapse"}

// Processor drives a batch of Pending records through validation,
// conversion or copy, and destination resolution. Videos are processed
// before images; within each family records run in batch order. A failing
// record is marked Error and the batch continues.
type Processor struct {
	Files    []*media.File
	Profiles []profile.ConversionProfile
	// WorkDir holds intermediate files; OutputDir is the root of the final
	// organized hierarchy.
	WorkDir   string
	OutputDir string

	Metadata  MetadataService
	Transcode TranscodeService
	Analysis  AnalysisService
	Observer  Observer
}

// Run executes one full processing batch. Only batch setup failures (the
// work directory cannot be created) abort the run; everything else is
// per-record.
func (p *Processor) Run() error {
	ob := p.observer()
	ob.Log(LevelInfo, "Starting file processing...")

	if err := os.MkdirAll(p.WorkDir, 0o755); err != nil {
		return fmt.Errorf("creating work directory %s: %w", p.WorkDir, err)
	}

	p.processVideos()
	p.processImages()
	p.organize(false)
	p.organize(true)
	p.logSummary()

	ob.Progress(0, 0, "Processing finished")
	return nil
}

func (p *Processor) processVideos() {
	ob := p.observer()

	videos := p.pending((*media.File).IsVideo)
	if len(videos) == 0 {
		return
	}
	ob.Log(LevelInfo, fmt.Sprintf("Processing %d video files", len(videos)))

	for i, f := range videos {
		ob.Progress(i+1, len(videos), fmt.Sprintf("(%d of %d) - Processing video %s", i+1, len(videos), f.FileName))
		p.setState(f, media.InProgress)

		if valid, reason := p.Analysis.ValidateStreams(f.SourceFile); !valid {
			ob.Log(LevelError, fmt.Sprintf("Invalid video file %s: %s", f.SourceFile, reason))
			p.setState(f, media.Error)
			continue
		}

		if f.AudioStreamCount == 0 && !p.audioAbsenceJustified(f) {
			p.setState(f, media.Error)
			continue
		}

		matched, err := profile.Match(p.Profiles, searchKey(f))
		if err != nil {
			ob.Log(LevelError, fmt.Sprintf("%v for %s", err, f.SourceFile))
			p.setState(f, media.Error)
			continue
		}
		ob.Log(LevelInfo, fmt.Sprintf("Using profile: %s", matched.Description))

		targetExt := targetExtension(f.Extension(), matched.NewFileExtension)
		f.IntermediateFile = p.intermediatePath(f, targetExt)

		if matched.IsCopyOnly() {
			if err := copyPreservingTimes(f.SourceFile, f.IntermediateFile); err != nil {
				ob.Log(LevelError, fmt.Sprintf("File copy failed: %v", err))
				p.setState(f, media.Error)
				continue
			}
		} else {
			if err := p.Transcode.Convert(f.SourceFile, f.IntermediateFile, matched.FfmpegExecutionString); err != nil {
				ob.Log(LevelError, fmt.Sprintf("Video conversion failed: %v", err))
				p.setState(f, media.Error)
				continue
			}

			// The converted file already exists, so a metadata-restore
			// failure is only a warning.
			if err := p.Metadata.CopyTags(f.SourceFile, f.IntermediateFile); err != nil {
				ob.Log(LevelWarning, fmt.Sprintf("Failed to restore metadata (continuing anyway): %v", err))
			}
			if err := p.Metadata.NormalizeDates(f.IntermediateFile); err != nil {
				ob.Log(LevelWarning, fmt.Sprintf("Failed to normalize file dates: %v", err))
			}
		}

		ob.Log(LevelInfo, fmt.Sprintf("Created intermediate file: %s", f.IntermediateFile))
	}
}

func (p *Processor) processImages() {
	ob := p.observer()

	images := p.pending((*media.File).IsImage)
	if len(images) == 0 {
		return
	}
	ob.Log(LevelInfo, fmt.Sprintf("Processing %d image files", len(images)))

	for i, f := range images {
		ob.Progress(i+1, len(images), fmt.Sprintf("(%d of %d) - Copying image %s", i+1, len(images), f.FileName))
		p.setState(f, media.InProgress)

		f.IntermediateFile = p.intermediatePath(f, f.Extension())
		if err := copyPreservingTimes(f.SourceFile, f.IntermediateFile); err != nil {
			ob.Log(LevelError, fmt.Sprintf("Image copy failed: %v", err))
			p.setState(f, media.Error)
		}
	}
}

// organize resolves destinations for one Live-Photo partition of the
// InProgress records in a single batched collaborator call.
func (p *Processor) organize(livePhoto bool) {
	ob := p.observer()

	var batch []*media.File
	for _, f := range p.Files {
		if f.State == media.InProgress && f.IsLivePhotoVideo == livePhoto && f.IntermediateFile != "" {
			batch = append(batch, f)
		}
	}
	if len(batch) == 0 {
		return
	}

	kind := "regular files"
	if livePhoto {
		kind = "Live Photo videos"
	}
	ob.Log(LevelInfo, fmt.Sprintf("Organizing %d %s", len(batch), kind))
	ob.Progress(0, 0, fmt.Sprintf("Organizing %s into folder structure", kind))

	paths := make([]string, len(batch))
	for i, f := range batch {
		paths[i] = f.IntermediateFile
	}

	mapping, err := p.Metadata.Organize(paths, p.OutputDir, livePhoto)
	if err != nil {
		ob.Log(LevelError, fmt.Sprintf("Organize batch failed: %v", err))
		mapping = nil
	}

	for _, f := range batch {
		if dest, ok := mapping[f.IntermediateFile]; ok {
			f.DestinationFile = dest
			p.setState(f, media.Success)
		} else {
			ob.Log(LevelError, fmt.Sprintf("Failed to organize file: %s", f.IntermediateFile))
			p.setState(f, media.Error)
		}
	}
}

// audioAbsenceJustified decides whether a video without an audio stream is
// acceptable. Live Photos never carry audio; time-lapses are recognized by
// filename or by the capture-mode tag. Anything else fails closed.
func (p *Processor) audioAbsenceJustified(f *media.File) bool {
	ob := p.observer()

	if f.IsLivePhotoVideo {
		ob.Log(LevelWarning, fmt.Sprintf("No audio stream in Live Photo video (acceptable): %s", f.SourceFile))
		return true
	}

	name := strings.ToLower(f.FileName)
	for _, keyword := range timelapseKeywords {
		if strings.Contains(name, keyword) {
			ob.Log(LevelWarning, fmt.Sprintf("No audio stream but filename contains %q (acceptable)", keyword))
			return true
		}
	}

	mode, err := p.Metadata.CaptureMode(f.SourceFile)
	if err != nil {
		ob.Log(LevelError, fmt.Sprintf("Could not read capture mode of %s: %v", f.SourceFile, err))
		return false
	}
	if mode != "" {
		for _, acceptable := range acceptableCaptureModes {
			if mode == acceptable {
				ob.Log(LevelWarning, fmt.Sprintf("No audio stream but capture mode is %q (acceptable)", mode))
				return true
			}
		}
		ob.Log(LevelError, fmt.Sprintf("No audio stream and capture mode %q requires audio", mode))
		return false
	}

	ob.Log(LevelError, fmt.Sprintf("No audio stream found and no acceptable reason: %s", f.SourceFile))
	return false
}

// pending returns the Pending records of one MIME family, in batch order.
func (p *Processor) pending(matches func(*media.File) bool) []*media.File {
	var out []*media.File
	for _, f := range p.Files {
		if f.State == media.Pending && matches(f) {
			out = append(out, f)
		}
	}
	return out
}

// searchKey builds the profile lookup key from a record's detected
// attributes. Unset format fields compare as empty strings.
func searchKey(f *media.File) profile.Key {
	return profile.Key{
		Extension:        strings.ToLower(f.Extension()),
		VideoFormat:      f.VideoFormat,
		VideoScanType:    f.VideoScanType,
		AudioFormat:      f.AudioFormat,
		IsLivePhotoVideo: f.IsLivePhotoVideo,
	}
}

// targetExtension picks the output extension. When the profile keeps the
// same extension the source's original casing is preserved, otherwise the
// profile's declared extension is used verbatim.
func targetExtension(sourceExt, profileExt string) string {
	if strings.EqualFold(sourceExt, profileExt) {
		return sourceExt
	}
	return profileExt
}

// intermediatePath builds the scratch path for a record, suffixing the
// basename with a UID so concurrent batches and repeated runs never clash.
func (p *Processor) intermediatePath(f *media.File, extension string) string {
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	stem := strings.TrimSuffix(f.FileName, filepath.Ext(f.FileName))
	return filepath.Join(p.WorkDir, fmt.Sprintf("%s-%s%s", stem, uuid.NewString(), extension))
}

func (p *Processor) setState(f *media.File, state media.ProcessingState) {
	f.State = state
	p.observer().FileChanged(f)
}

func (p *Processor) logSummary() {
	ob := p.observer()

	var videos, images, livePhotos, successes, errors int
	for _, f := range p.Files {
		switch {
		case f.IsLivePhotoVideo:
			livePhotos++
		case f.IsVideo():
			videos++
		case f.IsImage():
			images++
		}
		switch f.State {
		case media.Success:
			successes++
		case media.Error:
			errors++
		}
	}

	divider := strings.Repeat("=", 50)
	ob.Log(LevelInfo, divider)
	ob.Log(LevelInfo, "Processing Summary:")
	ob.Log(LevelInfo, fmt.Sprintf("  Videos processed: %d", videos))
	ob.Log(LevelInfo, fmt.Sprintf("  Images processed: %d", images))
	ob.Log(LevelInfo, fmt.Sprintf("  Live Photo videos: %d", livePhotos))
	ob.Log(LevelInfo, fmt.Sprintf("  Successfully completed: %d", successes))
	if errors > 0 {
		ob.Log(LevelError, fmt.Sprintf("  Files with errors: %d", errors))
	}
	ob.Log(LevelInfo, divider)
}

func (p *Processor) observer() Observer {
	if p.Observer == nil {
		return NopObserver{}
	}
	return p.Observer
}
