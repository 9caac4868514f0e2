// Package executor defines the interface for running short untrusted
// programs in an isolated environment.
package executor

import (
	"context"
	"errors"
	"time"
)

// ErrUnsupportedLanguage is returned when a request names a language the
// sandbox has no runtime for.
var ErrUnsupportedLanguage = errors.New("executor: unsupported language")

// ExecutionRequest is one playground run. Language selects the runtime
// inside the sandbox image; an empty value means the default language.
type ExecutionRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ExecutionResult is the output and status of a run.
type ExecutionResult struct {
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	ExitCode int           `json:"exitCode"`
	Duration time.Duration `json:"duration"`
}

// Executor runs code in an isolated environment.
type Executor interface {
	Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error)
}
