// Package proc runs external programs (pickers, tmux, resurrect scripts) and
// classifies how they failed.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command describes a single invocation.
type Command struct {
	Name  string
	Args  []string
	Stdin io.Reader
	// Stderr receives the child's stderr. When nil it is captured and
	// reported through ExitError.
	Stderr io.Writer
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// LaunchError means the program never started.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError means the program ran and exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.Code, e.Stderr)
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

var commandContext = exec.CommandContext

// Run executes c and returns its stdout. A cancelled context is reported as
// the context's error rather than as an exit failure.
func Run(ctx context.Context, c Command) ([]byte, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, &LaunchError{Name: c.Name, Err: errors.New("empty command")}
	}
	cmd := commandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = c.Stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, &LaunchError{Name: c.Name, Err: err}
	}
	err := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return stdout.Bytes(), fmt.Errorf("%s: %w", c.Name, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &ExitError{
				Name:   c.Name,
				Code:   exitErr.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", c.Name, err)
	}
	return stdout.Bytes(), nil
}

// IsLaunch reports whether err came from a program that could not start.
func IsLaunch(err error) bool {
	var launchErr *LaunchError
	return errors.As(err, &launchErr)
}

// IsExit reports whether err came from a non-zero exit.
func IsExit(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
