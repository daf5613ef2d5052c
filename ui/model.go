package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/mediasort/media"
	"github.com/lepinkainen/mediasort/pipeline"
)

// maxLogLines bounds the log tail shown under the file list.
const maxLogLines = 8

// FileEntry is one row in the processed-files list.
type FileEntry struct {
	Filename    string
	Destination string
	State       string
	Failed      bool
}

func (f FileEntry) FilterValue() string { return f.Filename }
func (f FileEntry) Title() string       { return f.Filename }
func (f FileEntry) Description() string {
	if f.Failed {
		return fmt.Sprintf("❌ %s", f.State)
	}
	if f.Destination != "" {
		return fmt.Sprintf("✓ → %s", f.Destination)
	}
	return fmt.Sprintf("🔄 %s", f.State)
}

// Model is the bubbletea model for a running sort batch. It is one possible
// subscriber of pipeline events; the pipeline itself stays headless.
type Model struct {
	// Batch state
	current int
	total   int
	status  string

	entries  map[string]int
	fileList list.Model
	logTail  []string

	overallProgress progress.Model

	width    int
	height   int
	finished bool
	quitting bool
	err      error

	Version string
}

// NewModel creates a TUI model for a batch.
func NewModel(version string) Model {
	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Media Files"
	fileList.SetShowHelp(false)

	return Model{
		entries:         make(map[string]int),
		fileList:        fileList,
		overallProgress: progress.New(progress.WithDefaultGradient()),
		Version:         version,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// A batch runs to completion; quitting only closes the view.
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetSize(msg.Width-4, msg.Height/2)

	case ProgressMsg:
		if msg.Total == 0 {
			m.status = msg.Message
		} else {
			m.current = msg.Current
			m.total = msg.Total
			m.status = msg.Message
		}

	case LogMsg:
		line := msg.Message
		switch msg.Level {
		case pipeline.LevelError:
			line = ErrorStyle.Render(line)
		case pipeline.LevelWarning:
			line = WarningStyle.Render(line)
		}
		m.logTail = append(m.logTail, line)
		if len(m.logTail) > maxLogLines {
			m.logTail = m.logTail[len(m.logTail)-maxLogLines:]
		}

	case FileStateMsg:
		entry := FileEntry{
			Filename:    msg.Filename,
			Destination: msg.Destination,
			State:       msg.State,
			Failed:      msg.Failed,
		}
		// Keyed by source path: basenames can repeat across directories
		if idx, ok := m.entries[msg.Source]; ok {
			m.fileList.SetItem(idx, entry)
		} else {
			m.entries[msg.Source] = len(m.fileList.Items())
			m.fileList.InsertItem(len(m.fileList.Items()), entry)
		}

	case BatchFinishedMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting && !m.finished {
		return "Detaching from batch...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("mediasort %s", m.Version))

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	overall := fmt.Sprintf("%s (%d/%d)\n%s",
		m.overallProgress.ViewAs(percent), m.current, m.total,
		ProcessingStyle.Render(m.status))

	sections := []string{
		header,
		overall,
		m.fileList.View(),
		strings.Join(m.logTail, "\n"),
	}
	if m.finished && m.err != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("Batch failed: %v", m.err)))
	}
	sections = append(sections, "Controls: [q] Quit view")

	return strings.Join(sections, "\n\n")
}

// BatchErr returns the batch failure delivered with BatchFinishedMsg, if any.
func (m Model) BatchErr() error {
	return m.err
}

// Sender delivers messages into a running bubbletea program.
type Sender interface {
	Send(msg tea.Msg)
}

// TUIObserver adapts pipeline events into TUI messages.
type TUIObserver struct {
	Program Sender
}

var _ pipeline.Observer = (*TUIObserver)(nil)

func (o *TUIObserver) Progress(current, total int, message string) {
	o.Program.Send(ProgressMsg{Current: current, Total: total, Message: message})
}

func (o *TUIObserver) Log(level, message string) {
	o.Program.Send(LogMsg{Level: level, Message: message})
}

func (o *TUIObserver) FileChanged(file *media.File) {
	o.Program.Send(FileStateMsg{
		Source:      file.SourceFile,
		Filename:    file.FileName,
		Destination: file.DestinationFile,
		State:       file.State.String(),
		Failed:      file.State == media.Error,
		Done:        file.State.Terminal(),
	})
}
