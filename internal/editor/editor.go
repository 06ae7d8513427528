// Package editor opens a file in the user's editor and waits for it to close.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoEditor is returned when no editor can be found.
var ErrNoEditor = errors.New("no editor found (set $EDITOR or the editor config field)")

// Editor is a command that edits the file passed as its last argument and
// exits when the user is done.
type Editor struct {
	Name    string
	Command string
	Args    []string // Placed before the file path
}

// known editors in auto-detection priority order. GUI editors need --wait
// so the command blocks until the tab is closed.
var known = []Editor{
	{Name: "Cursor", Command: "cursor", Args: []string{"--wait"}},
	{Name: "VS Code", Command: "code", Args: []string{"--wait"}},
	{Name: "Zed", Command: "zed", Args: []string{"--wait"}},
}

// Detector finds an editor. The zero value uses the real environment.
type Detector struct {
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// Detect resolves name to an editor. "" and "auto" try $VISUAL, $EDITOR and
// then the known GUI editors. A known short name (cursor, code, zed) must be
// installed. Anything else is taken as a command line.
func (d Detector) Detect(name string) (Editor, error) {
	name = strings.TrimSpace(name)

	if name != "" && name != "auto" {
		for _, e := range known {
			if e.Command == name {
				if !d.isCommandAvailable(e.Command) {
					return Editor{}, fmt.Errorf("editor %s is not installed", e.Name)
				}
				return e, nil
			}
		}
		return fromCommandLine(name)
	}

	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(d.getenv(env)); v != "" {
			return fromCommandLine(v)
		}
	}
	for _, e := range known {
		if d.isCommandAvailable(e.Command) {
			return e, nil
		}
	}
	return Editor{}, ErrNoEditor
}

// Detect resolves name using the real environment.
func Detect(name string) (Editor, error) {
	return Detector{}.Detect(name)
}

// ListInstalled returns the known editors found in PATH
func (d Detector) ListInstalled() []Editor {
	var installed []Editor
	for _, e := range known {
		if d.isCommandAvailable(e.Command) {
			installed = append(installed, e)
		}
	}
	return installed
}

// Edit runs the editor on path attached to the terminal and waits for it.
func (e Editor) Edit(ctx context.Context, path string) error {
	cmd := e.Cmd(ctx, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	return nil
}

// Cmd builds the editor command for path
func (e Editor) Cmd(ctx context.Context, path string) *exec.Cmd {
	args := append(append([]string{}, e.Args...), path)
	return exec.CommandContext(ctx, e.Command, args...)
}

func fromCommandLine(line string) (Editor, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Editor{}, ErrNoEditor
	}
	return Editor{Name: fields[0], Command: fields[0], Args: fields[1:]}, nil
}

func (d Detector) getenv(key string) string {
	if d.Getenv != nil {
		return d.Getenv(key)
	}
	return os.Getenv(key)
}

// isCommandAvailable checks if a command exists in PATH
func (d Detector) isCommandAvailable(name string) bool {
	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(name)
	return err == nil
}
