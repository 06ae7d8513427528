// Package launcher starts catalog entries as detached processes.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoOpener is returned when a path is not directly executable and no
// platform opener is installed.
var ErrNoOpener = errors.New("no program available to open path")

// Launcher starts the program behind a launch path.
type Launcher interface {
	// Launch starts path and returns once the process has been spawned. It
	// does not wait for the program to exit.
	Launch(ctx context.Context, path string) error
}

// Func adapts an ordinary function to the Launcher interface.
type Func func(ctx context.Context, path string) error

// Launch calls f(ctx, path).
func (f Func) Launch(ctx context.Context, path string) error {
	return f(ctx, path)
}

// ShellLauncher runs launch paths on the local machine. Executable files are
// run directly; anything else goes through the platform opener (xdg-open,
// open or start). When Shell is set, every path is run as "Shell -c path".
type ShellLauncher struct {
	Shell string

	goos     string
	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

// NewShellLauncher creates a launcher for the current platform.
func NewShellLauncher(shell string) *ShellLauncher {
	return &ShellLauncher{
		Shell:    strings.TrimSpace(shell),
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		stat:     os.Stat,
	}
}

// Launch spawns path and reaps it in the background. Exit codes are not
// reported.
func (l *ShellLauncher) Launch(ctx context.Context, path string) error {
	cmd, err := l.Command(ctx, path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

// Command builds the command that would launch path without starting it.
func (l *ShellLauncher) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("empty launch path")
	}

	if l.Shell != "" {
		return exec.CommandContext(ctx, l.Shell, "-c", path), nil
	}

	if l.isExecutable(path) {
		cmd := exec.CommandContext(ctx, path)
		cmd.Dir = dirOf(path)
		return cmd, nil
	}

	name, args := OpenerFor(l.goos)
	if !l.available(name) {
		return nil, fmt.Errorf("%w: %s", ErrNoOpener, name)
	}
	return exec.CommandContext(ctx, name, append(args, path)...), nil
}

func (l *ShellLauncher) isExecutable(path string) bool {
	info, err := l.stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if l.goos == "windows" {
		return strings.EqualFold(extOf(path), ".exe")
	}
	return info.Mode().Perm()&0111 != 0
}

func (l *ShellLauncher) available(name string) bool {
	_, err := l.lookPath(name)
	return err == nil
}

// OpenerFor returns the program and leading arguments used to open a path
// on goos.
func OpenerFor(goos string) (string, []string) {
	switch goos {
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	case "darwin":
		return "open", nil
	default:
		return "xdg-open", nil
	}
}

// IsAvailable checks if a command exists in PATH
func IsAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func dirOf(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i <= 0 {
		return ""
	}
	return path[:i]
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || strings.ContainsAny(path[i:], `/\`) {
		return ""
	}
	return path[i:]
}
