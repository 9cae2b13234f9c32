package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/handiism/scale-sheets/internal/model"
)

// Runner executes an external program and returns its combined output.
//
// ExecRunner is the production implementation; tests substitute a fake that
// writes the expected artifacts.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run starts name with args and waits for it to exit. The process is killed
// when ctx is cancelled.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// toolError classifies a failed invocation as an external tool error.
func toolError(op, name string, err error, output []byte) error {
	if errors.Is(err, exec.ErrNotFound) {
		return model.NewError(model.KindExternalTool, op, fmt.Errorf("%s is not installed or not found in PATH", name))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if tail := lastLines(string(output), 5); tail != "" {
			return model.NewError(model.KindExternalTool, op, fmt.Errorf("%s exited with status %d: %s", name, exitErr.ExitCode(), tail))
		}
		return model.NewError(model.KindExternalTool, op, fmt.Errorf("%s exited with status %d", name, exitErr.ExitCode()))
	}

	return model.NewError(model.KindExternalTool, op, fmt.Errorf("%s: %w", name, err))
}

// requireFile checks that a tool produced the expected artifact.
func requireFile(op, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return model.NewError(model.KindExternalTool, op, fmt.Errorf("expected output %s: %w", path, err))
	}
	if info.IsDir() {
		return model.NewError(model.KindExternalTool, op, fmt.Errorf("expected output %s is a directory", path))
	}
	return nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
