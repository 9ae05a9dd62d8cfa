package terminal

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"appdownloader/internal/api"
	"appdownloader/internal/controller"
)

// PathPicker asks for a screenshot path on the console. A blank answer cancels.
// The returned file's Content is an *os.File the caller must close.
type PathPicker struct {
	console *Console
}

// NewPathPicker returns a PathPicker prompting on console.
func NewPathPicker(console *Console) *PathPicker {
	return &PathPicker{console: console}
}

// PickFile implements controller.FilePicker.
func (picker *PathPicker) PickFile(ctx context.Context) (api.File, error) {
	if err := ctx.Err(); err != nil {
		return api.File{}, err
	}
	line, err := picker.console.Prompt("Path to screenshot (blank to cancel): ")
	if errors.Is(err, io.EOF) {
		return api.File{}, controller.ErrPickCancelled
	}
	if err != nil {
		return api.File{}, err
	}
	path := strings.Trim(strings.TrimSpace(line), `"`)
	if path == "" {
		return api.File{}, controller.ErrPickCancelled
	}

	file, err := os.Open(path)
	if err != nil {
		return api.File{}, err
	}
	return api.File{Name: filepath.Base(path), Content: file}, nil
}
