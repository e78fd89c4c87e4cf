package system

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/lm2s/tuist/internal/ctxlog"
)

// ExecRunner is the production Runner, backed by os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner that spawns real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	return c
}

// Run executes the command to completion, capturing stdout and stderr.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running command.", "name", cmd.Name, "args", cmd.Args, "dir", cmd.Dir)

	c := r.command(ctx, cmd)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: c.ProcessState.ExitCode(),
	}
	if err != nil {
		// Prefer the context error so callers can distinguish cancellation
		// from a genuine process failure.
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, fmt.Errorf("%s exited with status %d: %s", cmd.Name, result.ExitCode, stderr.String())
		}
		return result, fmt.Errorf("failed to start %s: %w", cmd.Name, err)
	}
	return result, nil
}

// Stream starts the command and forwards its combined output line by line.
func (r *ExecRunner) Stream(ctx context.Context, cmd Command) (<-chan string, func() error, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Streaming command.", "name", cmd.Name, "args", cmd.Args, "dir", cmd.Dir)

	c := r.command(ctx, cmd)
	stdout, err := c.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	c.Stderr = c.Stdout

	if err := c.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start %s: %w", cmd.Name, err)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	wait := func() error {
		err := c.Wait()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fmt.Errorf("%s exited with status %d", cmd.Name, c.ProcessState.ExitCode())
		}
		return nil
	}
	return lines, wait, nil
}
