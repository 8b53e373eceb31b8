package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

//go:generate go tool mockgen --source $GOFILE -destination ./mock/mock.go -package mock

// CommandExecutor executes aws CLI commands
type CommandExecutor interface {
	// Execute runs a command with the given arguments and returns its standard output
	Execute(ctx context.Context, args ...string) ([]byte, error)
}

var _ CommandExecutor = (*AWSExecutor)(nil)

// AWSExecutor executes commands with the aws binary
type AWSExecutor struct {
	binaryPath string
}

// NewAWSExecutor creates a new aws command executor.
// An empty binaryPath defaults to "aws" resolved through PATH.
func NewAWSExecutor(binaryPath string) *AWSExecutor {
	if binaryPath == "" {
		binaryPath = "aws"
	}
	return &AWSExecutor{binaryPath: binaryPath}
}

// Execute runs an aws command with the given arguments.
// A non-zero exit status is returned as an *ExitError carrying the command's standard error.
func (a *AWSExecutor) Execute(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, a.binaryPath, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{Code: exitErr.ExitCode(), Stderr: strings.TrimSpace(string(exitErr.Stderr))}
		}
		return nil, err
	}
	return out, nil
}

// ExitError is returned when the aws command exits with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("aws exited with status %d", e.Code)
	}
	return fmt.Sprintf("aws exited with status %d: %s", e.Code, e.Stderr)
}
