package runner

// This file contains the process executor that spawns benchmark commands
// on the local machine.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/drbench/drbench/bench"
)

// ErrTimeout is returned when an attempt exceeds its deadline.
var ErrTimeout = errors.New("benchmark timed out")

// ExitError reports a benchmark that exited with a nonzero status.
type ExitError struct {
	Code int
	// Last line written to stderr, if any
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("benchmark failed with exit code %d: %s", e.Code, e.Stderr)
	}
	return fmt.Sprintf("benchmark failed with exit code %d", e.Code)
}

// Usage is the resource usage of one attempt.
type Usage struct {
	Wall   time.Duration
	User   time.Duration
	System time.Duration
}

// Executor runs one benchmark command to completion. The context carries the
// attempt deadline.
type Executor interface {
	Execute(ctx context.Context, cmd bench.Command) (Usage, error)
}

// ProcessExecutor spawns commands as child processes.
type ProcessExecutor struct {
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr
	// Time allowed for output pipes to drain after the child was killed
	WaitDelay time.Duration
}

func (e *ProcessExecutor) Execute(ctx context.Context, c bench.Command) (Usage, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = append(os.Environ(), c.Env...)
	// The launcher starts the ranks as its own children, kill them all on timeout
	killProcessGroup(cmd)

	stdout := e.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := e.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Keep stderr for the failure report while still displaying it
	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	cmd.WaitDelay = e.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = 5 * time.Second
	}

	start := time.Now()
	err := cmd.Run()
	usage := Usage{Wall: time.Since(start)}
	if cmd.ProcessState != nil {
		usage.User = cmd.ProcessState.UserTime()
		usage.System = cmd.ProcessState.SystemTime()
	}

	if err == nil {
		return usage, nil
	}
	// A child left running with our stderr open does not make a successful
	// run fail
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		return usage, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return usage, ErrTimeout
	}
	if ctx.Err() != nil {
		return usage, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return usage, &ExitError{
			Code:   exitErr.ExitCode(),
			Stderr: lastLine(stderrBuf.String()),
		}
	}
	return usage, fmt.Errorf("failed to execute %s: %w", c.Path, err)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
