package ui

import (
	"fmt"
	"sync"

	"github.com/lepinkainen/mediasort/media"
	"github.com/lepinkainen/mediasort/pipeline"
	"github.com/schollz/progressbar/v3"
)

// ConsoleObserver renders pipeline events as styled terminal lines with a
// progress bar for per-item progress. Events may arrive from a batch
// goroutine, so rendering is serialized with a mutex.
type ConsoleObserver struct {
	Verbose bool

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

var _ pipeline.Observer = (*ConsoleObserver)(nil)

func (c *ConsoleObserver) Progress(current, total int, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// total 0 is a status message, not a progress step
	if total == 0 {
		c.finishBar()
		fmt.Println(ProcessingStyle.Render(message))
		return
	}

	if c.bar == nil {
		c.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(message),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	c.bar.Describe(message)
	_ = c.bar.Set(current)
}

func (c *ConsoleObserver) Log(level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch level {
	case pipeline.LevelError:
		fmt.Println(ErrorStyle.Render(fmt.Sprintf("ERROR: %s", message)))
	case pipeline.LevelWarning:
		fmt.Println(WarningStyle.Render(fmt.Sprintf("WARNING: %s", message)))
	default:
		if c.Verbose {
			fmt.Println(InfoStyle.Render(message))
		}
	}
}

func (c *ConsoleObserver) FileChanged(file *media.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch file.State {
	case media.Success:
		fmt.Println(SuccessStyle.Render(fmt.Sprintf("✅ %s → %s", file.FileName, file.DestinationFile)))
	case media.Error:
		fmt.Println(ErrorStyle.Render(fmt.Sprintf("❌ %s", file.FileName)))
	}
}

func (c *ConsoleObserver) finishBar() {
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
}
