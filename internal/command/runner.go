// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package command runs external tools from a single command line string.
//
// Lines are built with Line, which shell-quotes every word, and split back
// into argv by ExecRunner without invoking a shell. There is no timeout: a
// subprocess that never exits blocks Run forever.
package command

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/mattn/go-shellwords"
)

// Runner runs a command line and reports its merged stdout/stderr and
// whether it exited with status zero.
type Runner interface {
	Run(line string) (output string, ok bool)
}

// Line joins name and args into a command line, quoting any word that
// contains spaces or shell metacharacters.
func Line(name string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, name)
	words = append(words, args...)
	return shellescape.QuoteCommand(words)
}

// Split is the inverse of Line.
func Split(line string) ([]string, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parsing command line %q: %w", line, err)
	}
	if parser.Position >= 0 {
		return nil, fmt.Errorf("command line %q contains an unquoted shell operator", line)
	}
	if len(args) == 0 {
		return nil, errors.New("empty command line")
	}
	return args, nil
}

// executor abstracts process execution for testing.
type executor interface {
	CombinedOutput(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) CombinedOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// ExecRunner is the production Runner.
type ExecRunner struct {
	exec executor
}

// NewExecRunner returns a Runner that spawns real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{exec: &osExecutor{}}
}

// Run splits line into argv and runs it. A line that cannot be split, or a
// binary that cannot be started, is reported as a failed run whose output
// is the error text.
func (r *ExecRunner) Run(line string) (string, bool) {
	args, err := Split(line)
	if err != nil {
		return err.Error(), false
	}
	out, err := r.exec.CombinedOutput(args[0], args[1:]...)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return strings.TrimSpace(string(out) + "\n" + err.Error()), false
		}
		return string(out), false
	}
	return string(out), true
}
