package ui

import (
	"errors"
	"strings"
	"testing"
)

func TestModel_BatchFailureSurfaced(t *testing.T) {
	m := NewModel("dev")

	updated, _ := m.Update(BatchFinishedMsg{Err: errors.New("import failed: no such path")})
	model := updated.(Model)

	if model.BatchErr() == nil {
		t.Fatal("BatchErr() = nil after a failed batch")
	}
	if !strings.Contains(model.View(), "import failed: no such path") {
		t.Error("final view does not render the batch failure")
	}
}

func TestModel_BatchSuccessHasNoError(t *testing.T) {
	m := NewModel("dev")

	updated, _ := m.Update(BatchFinishedMsg{})
	model := updated.(Model)

	if model.BatchErr() != nil {
		t.Errorf("BatchErr() = %v after a clean batch", model.BatchErr())
	}
	if strings.Contains(model.View(), "Batch failed") {
		t.Error("clean batch must not render a failure line")
	}
}

func TestModel_FileRowsKeyedBySource(t *testing.T) {
	m := NewModel("dev")

	// Same basename in two directories must produce two rows
	updated, _ := m.Update(FileStateMsg{Source: "/a/clip.mov", Filename: "clip.mov", State: "InProgress"})
	model := updated.(Model)
	updated, _ = model.Update(FileStateMsg{Source: "/b/clip.mov", Filename: "clip.mov", State: "InProgress"})
	model = updated.(Model)

	if got := len(model.fileList.Items()); got != 2 {
		t.Fatalf("file list has %d rows, expected 2", got)
	}

	// A second message for a known source updates its row in place
	updated, _ = model.Update(FileStateMsg{Source: "/a/clip.mov", Filename: "clip.mov", State: "Success", Destination: "/out/clip.mov"})
	model = updated.(Model)

	if got := len(model.fileList.Items()); got != 2 {
		t.Errorf("state update added a row: %d rows, expected 2", got)
	}
	entry := model.fileList.Items()[0].(FileEntry)
	if entry.Destination != "/out/clip.mov" {
		t.Errorf("row not updated in place: %+v", entry)
	}
}
