package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func fakeDetector(env map[string]string, installed ...string) Detector {
	return Detector{
		Getenv: func(k string) string { return env[k] },
		LookPath: func(name string) (string, error) {
			for _, n := range installed {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		},
	}
}

func TestDetect_Auto(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		want      string
		wantArgs  []string
	}{
		{"visual wins", map[string]string{"VISUAL": "nvim", "EDITOR": "nano"}, []string{"code"}, "nvim", []string{}},
		{"editor with args", map[string]string{"EDITOR": "emacs -nw"}, nil, "emacs", []string{"-nw"}},
		{"gui priority", nil, []string{"zed", "code"}, "code", []string{"--wait"}},
		{"only zed", nil, []string{"zed"}, "zed", []string{"--wait"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := fakeDetector(tt.env, tt.installed...).Detect("auto")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Command != tt.want {
				t.Errorf("expected command %s, got %s", tt.want, e.Command)
			}
			if !reflect.DeepEqual(e.Args, tt.wantArgs) {
				t.Errorf("expected args %v, got %v", tt.wantArgs, e.Args)
			}
		})
	}
}

func TestDetect_NoneFound(t *testing.T) {
	_, err := fakeDetector(nil).Detect("")
	if !errors.Is(err, ErrNoEditor) {
		t.Errorf("expected ErrNoEditor, got %v", err)
	}
}

func TestDetect_Named(t *testing.T) {
	d := fakeDetector(nil, "cursor")

	e, err := d.Detect("cursor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name != "Cursor" {
		t.Errorf("expected Cursor, got %s", e.Name)
	}

	if _, err := d.Detect("code"); err == nil {
		t.Error("expected error for an editor that is not installed")
	}

	e, err = d.Detect("micro -readonly false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Command != "micro" || len(e.Args) != 2 {
		t.Errorf("unexpected editor %+v", e)
	}
}

func TestListInstalled(t *testing.T) {
	got := fakeDetector(nil, "zed", "cursor").ListInstalled()
	if len(got) != 2 || got[0].Name != "Cursor" || got[1].Name != "Zed" {
		t.Errorf("unexpected editors: %+v", got)
	}
}

func TestCmd_AppendsPath(t *testing.T) {
	e := Editor{Name: "VS Code", Command: "code", Args: []string{"--wait"}}
	cmd := e.Cmd(context.Background(), "/tmp/catalog.json")

	want := []string{"code", "--wait", "/tmp/catalog.json"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Errorf("expected args %v, got %v", want, cmd.Args)
	}
	// The editor's own slice must not grow.
	if len(e.Args) != 1 {
		t.Errorf("Args modified: %v", e.Args)
	}
}

func TestEdit_RunsCommand(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho edited > \"$1\"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "doc.txt")

	e := Editor{Name: "fake", Command: script}
	if err := e.Edit(context.Background(), target); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "edited\n" {
		t.Errorf("expected file to be edited, got %q", data)
	}
}
