package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func fakeLauncher(goos string, installed ...string) *ShellLauncher {
	l := NewShellLauncher("")
	l.goos = goos
	l.lookPath = func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
	return l
}

func TestOpenerFor(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args int
	}{
		{"linux", "xdg-open", 0},
		{"freebsd", "xdg-open", 0},
		{"darwin", "open", 0},
		{"windows", "cmd", 3},
	}

	for _, tt := range tests {
		name, args := OpenerFor(tt.goos)
		if name != tt.name {
			t.Errorf("OpenerFor(%s) = %s, want %s", tt.goos, name, tt.name)
		}
		if len(args) != tt.args {
			t.Errorf("OpenerFor(%s) args = %v, want %d args", tt.goos, args, tt.args)
		}
	}
}

func TestCommand_ExecutableRunsDirectly(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "game")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	cmd, err := fakeLauncher("linux").Command(context.Background(), bin)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if cmd.Path != bin {
		t.Errorf("expected direct exec of %s, got %s", bin, cmd.Path)
	}
	if cmd.Dir != dir {
		t.Errorf("expected working dir %s, got %s", dir, cmd.Dir)
	}
}

func TestCommand_NonExecutableUsesOpener(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(doc, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd, err := fakeLauncher("linux", "xdg-open").Command(context.Background(), doc)
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if len(cmd.Args) != 2 || cmd.Args[0] != "xdg-open" || cmd.Args[1] != doc {
		t.Errorf("unexpected args %v", cmd.Args)
	}
}

func TestCommand_MissingPathUsesOpener(t *testing.T) {
	cmd, err := fakeLauncher("darwin", "open").Command(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if cmd.Args[0] != "open" || cmd.Args[len(cmd.Args)-1] != "https://example.com" {
		t.Errorf("unexpected args %v", cmd.Args)
	}
}

func TestCommand_NoOpener(t *testing.T) {
	_, err := fakeLauncher("linux").Command(context.Background(), "/nowhere/app")
	if !errors.Is(err, ErrNoOpener) {
		t.Errorf("expected ErrNoOpener, got %v", err)
	}
}

func TestCommand_Shell(t *testing.T) {
	l := fakeLauncher("linux")
	l.Shell = "/bin/sh"

	cmd, err := l.Command(context.Background(), "steam -applaunch 42")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	want := []string{"/bin/sh", "-c", "steam -applaunch 42"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("expected %v, got %v", want, cmd.Args)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("arg %d: expected %s, got %s", i, want[i], cmd.Args[i])
		}
	}
}

func TestCommand_EmptyPath(t *testing.T) {
	if _, err := fakeLauncher("linux").Command(context.Background(), "  "); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLaunch_StartsProcess(t *testing.T) {
	if !IsAvailable("true") {
		t.Skip("'true' not available")
	}
	l := NewShellLauncher("")
	l.Shell = "sh"
	if err := l.Launch(context.Background(), "true"); err != nil {
		t.Errorf("Launch failed: %v", err)
	}
}

func TestFunc(t *testing.T) {
	var got string
	var l Launcher = Func(func(_ context.Context, path string) error {
		got = path
		return nil
	})
	if err := l.Launch(context.Background(), "/x"); err != nil {
		t.Fatal(err)
	}
	if got != "/x" {
		t.Errorf("expected /x, got %s", got)
	}
}

func TestIsAvailable(t *testing.T) {
	if !IsAvailable("ls") {
		t.Error("expected 'ls' command to be available")
	}
	if IsAvailable("this-command-does-not-exist-12345") {
		t.Error("expected fake command to not be available")
	}
}
