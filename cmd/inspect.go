package cmd

import (
	"fmt"

	"github.com/lepinkainen/mediasort/exiftool"
	"github.com/lepinkainen/mediasort/mediainfo"
	"github.com/lepinkainen/mediasort/pipeline"
	"github.com/lepinkainen/mediasort/types"
	"github.com/lepinkainen/mediasort/ui"
)

type InspectCmd struct {
	Paths []string `arg:"" name:"paths" help:"Media files or directories to classify" type:"path"`
}

// Run imports and classifies without processing, so a user can preview what
// sort would do with the same inputs.
func (cmd *InspectCmd) Run(appCtx *types.AppContext) error {
	cfg := types.NewConfig()
	if appCtx != nil && appCtx.Config != nil {
		cfg = appCtx.Config
	}

	importer := &pipeline.Importer{
		Metadata: exiftool.New(cfg.ExifToolPath),
		Analysis: mediainfo.New(cfg.MediaInfoPath),
		Observer: pipeline.NopObserver{},
	}

	files, err := importer.Run(cmd.Paths, nil)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if len(files) == 0 {
		fmt.Println(ui.InfoStyle.Render("No supported media files found"))
		return nil
	}

	for _, f := range files {
		if f.IsVideo() {
			live := ""
			if f.IsLivePhotoVideo {
				live = " live-photo"
			}
			fmt.Printf("%s  %s  container=%s video=%s/%s audio=%s streams=%d/%d%s\n",
				f.SourceFile, f.MIMEType, f.ContainerFormat,
				f.VideoFormat, f.VideoScanType, f.AudioFormat,
				f.VideoStreamCount, f.AudioStreamCount, live)
		} else {
			fmt.Printf("%s  %s\n", f.SourceFile, f.MIMEType)
		}
	}

	fmt.Println(ui.InfoStyle.Render(fmt.Sprintf("%d files classified", len(files))))
	return nil
}
