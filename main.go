package main

import (
	"github.com/alecthomas/kong"
	"github.com/lepinkainen/mediasort/cmd"
	"github.com/lepinkainen/mediasort/types"
)

var Version = "dev"

type CLI struct {
	Sort     cmd.SortCmd     `cmd:"" help:"Import, convert and organize media files"`
	Inspect  cmd.InspectCmd  `cmd:"" help:"Classify media files without processing them"`
	Profiles cmd.ProfilesCmd `cmd:"" help:"Validate and list the conversion profile table"`
	Check    cmd.CheckCmd    `cmd:"" help:"Verify external tool dependencies"`
}

func main() {
	var cli CLI

	appCtx := &types.AppContext{
		Version: Version,
		Config:  types.NewConfig(),
	}

	ctx := kong.Parse(&cli,
		kong.Name("mediasort"),
		kong.Description("Sort and convert photo/video collections using exiftool, ffmpeg and mediainfo"),
		kong.Bind(appCtx),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
