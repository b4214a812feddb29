// Package registry discovers resurrectable ("dead") sessions: one shell
// script per session in a directory, named <name>.tmux-session.zsh.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ScriptSuffix is the file suffix that marks a session script.
	ScriptSuffix = ".tmux-session.zsh"
)

// Registry is the set of known dead sessions in discovery order.
type Registry struct {
	Dir   string
	Names []string
}

// DefaultDir is ~/.config/tav/sessions.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".config", "tav", "sessions")
	}
	return filepath.Join(home, ".config", "tav", "sessions")
}

// Discover lists the session scripts in dir. A missing directory yields an
// empty registry.
func Discover(dir string) (Registry, error) {
	reg := Registry{Dir: dir}
	if strings.TrimSpace(dir) == "" {
		return reg, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return reg, nil
		}
		return reg, fmt.Errorf("sessions dir: %w", err)
	}
	if !info.IsDir() {
		return reg, fmt.Errorf("sessions dir %s is not a directory", dir)
	}
	matches, err := filepath.Glob(filepath.Join(escapeGlob(dir), "*"+ScriptSuffix))
	if err != nil {
		return reg, fmt.Errorf("sessions dir: %w", err)
	}
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), ScriptSuffix)
		if name == "" || strings.ContainsAny(name, "\t\n") {
			continue
		}
		reg.Names = append(reg.Names, name)
	}
	return reg, nil
}

// ScriptPath is where the script for name lives. It is not checked for
// existence.
func (r Registry) ScriptPath(name string) string {
	return filepath.Join(r.Dir, name+ScriptSuffix)
}

// Has reports whether name was discovered.
func (r Registry) Has(name string) bool {
	for _, n := range r.Names {
		if n == name {
			return true
		}
	}
	return false
}

// escapeGlob keeps metacharacters in the directory path literal.
func escapeGlob(path string) string {
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
