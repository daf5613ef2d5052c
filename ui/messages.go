package ui

// TUI message types for batch worker communication

type ProgressMsg struct {
	Current int
	Total   int
	Message string
}

type LogMsg struct {
	Level   string
	Message string
}

type FileStateMsg struct {
	Source      string
	Filename    string
	Destination string
	State       string
	Failed      bool
	Done        bool
}

type BatchFinishedMsg struct {
	Err error
}
