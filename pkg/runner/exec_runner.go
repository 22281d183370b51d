package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/javascriptjoey/cloudlint/pkg/logger"
)

var execLog = logger.New("runner:exec")

// ExecRunner is the process-backed Runner. It launches the tool with
// exec.CommandContext, captures both output streams, and enforces the
// invocation timeout through the context.
type ExecRunner struct{}

// NewExecRunner creates a process-backed Runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run launches the tool and waits for completion, the timeout, or ctx
// cancellation, whichever comes first. A nonzero exit is reported through
// Result, not through the error.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	execLog.Printf("Running tool: %s %s", inv.Tool, strings.Join(inv.Args, " "))

	cmd := exec.CommandContext(ctx, inv.Tool, inv.Args...)
	cmd.Dir = inv.Dir
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}
	if inv.Stdin != "" {
		cmd.Stdin = strings.NewReader(inv.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		execLog.Printf("Launch failed: %s: %v", inv.Tool, err)
		return Result{ExitCode: -1}, &LaunchError{Tool: inv.Tool, Err: err}
	}

	err := cmd.Wait()

	result := Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	// Distinguish a deadline kill from the tool's own failure: the context
	// error wins whenever the context is done.
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			execLog.Printf("Tool timed out: %s", inv.Tool)
			return result, fmt.Errorf("%s: %w", inv.Tool, ErrToolTimeout)
		}
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// I/O error or similar; exit errors are not errors at this layer.
		return result, fmt.Errorf("%s: %w", inv.Tool, err)
	}

	execLog.Printf("Tool finished: %s, exit code %d", inv.Tool, result.ExitCode)
	return result, nil
}
