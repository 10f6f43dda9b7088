package converter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"texmanifest/internal/logging"
	"texmanifest/internal/manifest"
	"texmanifest/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error
}

// Option configures the gateway.
type Option func(*Gateway)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(g *Gateway) {
		if exec != nil {
			g.exec = exec
		}
	}
}

// WithLogger sets the sink converter output is relayed to.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Gateway wraps converter invocations.
type Gateway struct {
	argv   []string
	exec   Executor
	logger *slog.Logger
}

// New parses command with shell quoting rules and environment expansion.
func New(command string, opts ...Option) (*Gateway, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, services.Wrap(services.ErrConfiguration, "converter", "parse command", "converter command required", nil)
	}
	argv, err := shell.Fields(command, os.Getenv)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "converter", "parse command", "invalid converter command", err)
	}
	if len(argv) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "converter", "parse command", "converter command expands to nothing", nil)
	}
	g := &Gateway{
		argv:   argv,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Argv returns the parsed command without the manifest argument.
func (g *Gateway) Argv() []string {
	return append([]string(nil), g.argv...)
}

// Invoke writes m to manifestPath and runs the converter on it, returning
// its stdout lines. The call blocks until the converter exits.
func (g *Gateway) Invoke(ctx context.Context, m manifest.Manifest, manifestPath string) ([]string, error) {
	if err := manifest.Write(manifestPath, m); err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, logging.NewComponentLogger(g.logger, "converter"))
	logger.Info("converter started",
		logging.String("command", strings.Join(g.argv, " ")),
		logging.String("manifest", manifestPath),
	)

	var lines []string
	args := append(append([]string(nil), g.argv[1:]...), manifestPath)
	onStdout := func(line string) {
		lines = append(lines, line)
		logger.Info(line, logging.String("stream", "stdout"))
	}
	onStderr := func(line string) {
		logger.Warn(line, logging.String("stream", "stderr"))
	}

	if err := g.exec.Run(ctx, g.argv[0], args, onStdout, onStderr); err != nil {
		toolErr := &ToolError{Command: g.argv[0], ExitCode: exitCode(err), Err: err}
		return lines, services.Wrap(services.ErrExternalTool, "convert", g.argv[0], "converter failed", toolErr)
	}
	logger.Info("converter finished", logging.Int("lines", len(lines)))
	return lines, nil
}

// ToolError describes a failed converter run. ExitCode is -1 when the
// process never started or was killed by a signal.
type ToolError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with code %d: %v", e.Command, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}
