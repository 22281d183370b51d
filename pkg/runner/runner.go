// Package runner defines the capability boundary for invoking external
// validation tools, and the process-backed implementation of it.
//
// The engine depends only on the Runner interface. Real invocations shell
// out to linting binaries; tests substitute doubles that return canned
// results without spawning processes.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrToolTimeout is returned when a tool fails to complete within its timeout.
var ErrToolTimeout = errors.New("tool invocation timed out")

// ErrToolLaunch is returned when a tool process cannot be started at all,
// typically because the binary is not installed or not on PATH.
var ErrToolLaunch = errors.New("tool failed to launch")

// Invocation describes one external tool run.
type Invocation struct {
	// Tool is the binary name or path.
	Tool string
	// Args are the command line arguments.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env holds additional environment entries in KEY=VALUE form, appended
	// to the parent environment.
	Env []string
	// Stdin is passed to the process's standard input when non-empty.
	Stdin string
	// Timeout bounds the invocation; zero means no per-invocation bound
	// beyond the caller's context.
	Timeout time.Duration
}

// Result is the raw outcome of a tool invocation. A nonzero exit code is not
// an error at this layer: linters conventionally exit nonzero when they find
// problems, and the captured output is still meaningful.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs a validation tool and returns its exit status and captured
// output. Implementations must honor ctx cancellation.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// LaunchError wraps the underlying start failure with the tool name.
type LaunchError struct {
	Tool string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Tool, ErrToolLaunch, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return ErrToolLaunch
}
