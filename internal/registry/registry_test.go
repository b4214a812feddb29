package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDiscoverListsScriptsInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "zeta.tmux-session.zsh")
	touch(t, dir, "alpha.tmux-session.zsh")
	touch(t, dir, "notes.txt")
	touch(t, dir, "beta.zsh")
	touch(t, dir, "my.project.tmux-session.zsh")

	reg, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if got := strings.Join(reg.Names, ","); got != "alpha,my.project,zeta" {
		t.Fatalf("unexpected names %s", got)
	}
	if !reg.Has("zeta") || reg.Has("beta") {
		t.Fatalf("unexpected membership")
	}
}

func TestDiscoverMissingDirIsEmpty(t *testing.T) {
	reg, err := Discover(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(reg.Names) != 0 {
		t.Fatalf("expected no names, got %v", reg.Names)
	}
}

func TestDiscoverEmptyDirSetting(t *testing.T) {
	reg, err := Discover("")
	if err != nil || len(reg.Names) != 0 {
		t.Fatalf("expected empty registry, got %v, %v", reg.Names, err)
	}
}

func TestDiscoverRejectsFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "plain")
	if _, err := Discover(filepath.Join(dir, "plain")); err == nil {
		t.Fatalf("expected error for non-directory")
	}
}

func TestDiscoverHandlesGlobCharactersInDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "odd[dir]*")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touch(t, dir, "one.tmux-session.zsh")
	reg, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(reg.Names) != 1 || reg.Names[0] != "one" {
		t.Fatalf("unexpected names %v", reg.Names)
	}
}

func TestScriptPath(t *testing.T) {
	reg := Registry{Dir: "/srv/sessions"}
	if got := reg.ScriptPath("web"); got != "/srv/sessions/web.tmux-session.zsh" {
		t.Fatalf("unexpected path %s", got)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := DefaultDir(); got != "/home/tester/.config/tav/sessions" {
		t.Fatalf("unexpected default dir %s", got)
	}
}
