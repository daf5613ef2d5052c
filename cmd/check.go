package cmd

import (
	"fmt"

	"github.com/lepinkainen/mediasort/exiftool"
	"github.com/lepinkainen/mediasort/ffmpeg"
	"github.com/lepinkainen/mediasort/mediainfo"
	"github.com/lepinkainen/mediasort/types"
	"github.com/lepinkainen/mediasort/ui"
	"github.com/lepinkainen/mediasort/utils"
)

type CheckCmd struct{}

// Run verifies that the external tools are reachable and reports versions.
func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	if err := utils.ValidateToolDependencies(); err != nil {
		return err
	}

	cfg := types.NewConfig()
	if appCtx != nil && appCtx.Config != nil {
		cfg = appCtx.Config
	}

	if version, err := exiftool.New(cfg.ExifToolPath).Version(); err == nil {
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ exiftool %s", version)))
	} else {
		return err
	}

	if version, err := ffmpeg.New(cfg.FFmpegPath).Version(); err == nil {
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", version)))
	} else {
		return err
	}

	if version, err := mediainfo.New(cfg.MediaInfoPath).Version(); err == nil {
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", version)))
	} else {
		return err
	}

	return nil
}
