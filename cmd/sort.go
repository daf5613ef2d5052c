package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/mediasort/exiftool"
	"github.com/lepinkainen/mediasort/ffmpeg"
	"github.com/lepinkainen/mediasort/media"
	"github.com/lepinkainen/mediasort/mediainfo"
	"github.com/lepinkainen/mediasort/pipeline"
	"github.com/lepinkainen/mediasort/profile"
	"github.com/lepinkainen/mediasort/types"
	"github.com/lepinkainen/mediasort/ui"
)

type SortCmd struct {
	Paths   []string `arg:"" name:"paths" help:"Media files or directories to sort" type:"path"`
	Output  string   `help:"Root folder for the organized collection" short:"o" required:""`
	Work    string   `help:"Scratch folder for intermediate files"`
	TUI     bool     `help:"Show the interactive progress UI"`
	Verbose bool     `help:"Show info-level log lines" short:"v"`
}

func (cmd *SortCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	cfg := types.NewConfig()
	if appCtx != nil {
		version = appCtx.Version
		if appCtx.Config != nil {
			cfg = appCtx.Config
		}
	}
	if cmd.Work != "" {
		cfg.WorkDir = cmd.Work
	}
	cfg.OutputDir = cmd.Output

	// A broken profile table disables conversion entirely, so it fails the
	// command before any file is touched.
	profiles, err := profile.Load()
	if err != nil {
		return fmt.Errorf("loading conversion profiles: %w", err)
	}

	if err := cfg.EnsureWorkDir(); err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}

	if cmd.TUI {
		return cmd.runWithTUI(version, cfg, profiles)
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("mediasort %s", version)))

	observer := &ui.ConsoleObserver{Verbose: cmd.Verbose}
	files, err := runBatch(cmd.Paths, cfg, profiles, observer)
	if err != nil {
		return err
	}

	successes, errors := countOutcomes(files)
	if errors > 0 {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("Done: %d sorted, %d failed", successes, errors)))
	} else {
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ Done: %d files sorted", successes)))
	}
	return nil
}

// runWithTUI drives the same batch with a bubbletea frontend subscribed to
// the pipeline events.
func (cmd *SortCmd) runWithTUI(version string, cfg *types.Config, profiles []profile.ConversionProfile) error {
	program := tea.NewProgram(ui.NewModel(version))

	go func() {
		_, err := runBatch(cmd.Paths, cfg, profiles, &ui.TUIObserver{Program: program})
		program.Send(ui.BatchFinishedMsg{Err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running progress UI: %w", err)
	}
	// A batch failure must fail the command the same way it does without
	// the progress UI.
	if m, ok := final.(ui.Model); ok && m.BatchErr() != nil {
		return m.BatchErr()
	}
	return nil
}

// runBatch performs one import pass followed by one processing pass.
func runBatch(paths []string, cfg *types.Config, profiles []profile.ConversionProfile, observer pipeline.Observer) ([]*media.File, error) {
	exifSvc := exiftool.New(cfg.ExifToolPath)
	analysisSvc := mediainfo.New(cfg.MediaInfoPath)

	importer := &pipeline.Importer{
		Metadata: exifSvc,
		Analysis: analysisSvc,
		Observer: observer,
	}
	files, err := importer.Run(paths, nil)
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}

	processor := &pipeline.Processor{
		Files:     files,
		Profiles:  profiles,
		WorkDir:   cfg.WorkDir,
		OutputDir: cfg.OutputDir,
		Metadata:  exifSvc,
		Transcode: ffmpeg.New(cfg.FFmpegPath),
		Analysis:  analysisSvc,
		Observer:  observer,
	}
	if err := processor.Run(); err != nil {
		return nil, fmt.Errorf("processing failed: %w", err)
	}
	return files, nil
}

func countOutcomes(files []*media.File) (successes, errors int) {
	for _, f := range files {
		switch f.State {
		case media.Success:
			successes++
		case media.Error:
			errors++
		}
	}
	return successes, errors
}
