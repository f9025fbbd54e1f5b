// Package common provides shared abstractions for the external tool wrappers.
package common

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
)

// OutputHandler processes output from CLI tools.
// Implementations define how to parse and handle stdout from the subprocess.
type OutputHandler interface {
	// ProcessLine handles each line of stdout in real-time.
	// Return error to signal a problem (logged, processing continues).
	ProcessLine(line []byte) error

	// Finalize is called after all lines are processed.
	Finalize() error
}

// DiscardHandler ignores stdout. Used when the tool writes its own output file.
type DiscardHandler struct{}

func (DiscardHandler) ProcessLine([]byte) error { return nil }
func (DiscardHandler) Finalize() error          { return nil }

// BaseCLISource provides common functionality for CLI-based collaborators.
// It handles subprocess execution, I/O management, graceful termination on
// cancellation and binary resolution. It keeps no per-invocation state, so
// one instance may run concurrently for many domains.
//
// Usage:
//  1. Embed BaseCLISource in your tool struct
//  2. Call DefaultInitialize() once at startup
//  3. Implement OutputHandler for parsing logic (or use DiscardHandler)
//  4. Call ExecuteCLI() per invocation
type BaseCLISource struct {
	logger   logx.Logger
	name     string
	execPath string        // Path to CLI binary
	timeout  time.Duration // Timeout per invocation (0 = none)

	mu sync.RWMutex
}

// BaseCLIConfig contains configuration for BaseCLISource.
type BaseCLIConfig struct {
	SourceName string        // Tool name for logging
	ExecPath   string        // Path to binary (resolved via LookPath)
	Timeout    time.Duration // Subprocess timeout
}

// gracePeriod is how long a canceled subprocess gets after SIGINT before it is killed.
const gracePeriod = 5 * time.Second

// NewBaseCLISource creates a new BaseCLISource with the given configuration.
func NewBaseCLISource(logger logx.Logger, cfg BaseCLIConfig) *BaseCLISource {
	if cfg.ExecPath == "" {
		cfg.ExecPath = cfg.SourceName
	}
	return &BaseCLISource{
		logger:   logger.With("tool", cfg.SourceName),
		name:     cfg.SourceName,
		execPath: cfg.ExecPath,
		timeout:  cfg.Timeout,
	}
}

// ExecuteCLI runs the binary with args and streams stdout through handler.
//
// Returns:
//   - stderrOutput: captured stderr for diagnostics
//   - err: *domain.OpError of kind ErrToolExecution when the process could not
//     start, exited non-zero or was canceled. Output processed before the
//     failure is kept by the handler (partial results).
func (b *BaseCLISource) ExecuteCLI(
	ctx context.Context,
	subject string,
	args []string,
	handler OutputHandler,
) (stderrOutput string, err error) {
	startTime := time.Now()
	execPath := b.GetExecPath()

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	b.logger.Debug("executing CLI command",
		"exec_path", execPath,
		"args", strings.Join(args, " "),
		"subject", subject,
		"timeout", b.timeout.String(),
	)

	cmd := exec.CommandContext(ctx, execPath, args...)
	// SIGINT first so the tool can flush its output file, kill after the grace period
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = gracePeriod

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", b.opError(subject, fmt.Errorf("failed to create stdout pipe: %w", err))
	}

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		return "", b.opError(subject, fmt.Errorf("failed to start process: %w", err))
	}

	b.logger.Debug("subprocess started", "pid", cmd.Process.Pid, "subject", subject)

	if err := b.ProcessOutput(stdout, handler); err != nil {
		b.logger.Warn("scanner error", "subject", subject, "error", err.Error())
	}

	if err := handler.Finalize(); err != nil {
		b.logger.Warn("handler finalization error", "subject", subject, "error", err.Error())
	}

	waitErr := cmd.Wait()
	stderrOutput = stderrBuf.String()
	duration := time.Since(startTime)

	if len(stderrOutput) > 0 {
		b.logger.Debug("subprocess stderr", "subject", subject, "output", strings.TrimSpace(stderrOutput))
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		b.logger.Warn("subprocess canceled",
			"subject", subject,
			"error", ctxErr.Error(),
			"duration", duration.String(),
		)
		return stderrOutput, b.opError(subject, ctxErr)
	}

	if waitErr != nil {
		b.logger.Warn("subprocess exited with error",
			"subject", subject,
			"error", waitErr.Error(),
			"duration", duration.String(),
		)
		return stderrOutput, b.opError(subject, fmt.Errorf("process exited with error: %w", waitErr))
	}

	b.logger.Debug("CLI command completed successfully",
		"subject", subject,
		"duration", duration.String(),
	)
	return stderrOutput, nil
}

// ProcessOutput feeds every stdout line to handler. Handler errors are
// logged and do not stop the scan.
func (b *BaseCLISource) ProcessOutput(stdout io.Reader, handler OutputHandler) error {
	scanner := bufio.NewScanner(stdout)

	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max token size

	for scanner.Scan() {
		if err := handler.ProcessLine(scanner.Bytes()); err != nil {
			b.logger.Warn("handler error", "error", err.Error())
		}
	}

	if err := scanner.Err(); err != nil {
		// Drain so the subprocess never blocks on a full pipe
		_, _ = io.Copy(io.Discard, stdout)
		return err
	}
	return nil
}

// DefaultInitialize verifies that the CLI binary exists and is executable.
// A missing binary is domain.ErrToolNotFound, fatal for the whole process.
func (b *BaseCLISource) DefaultInitialize(installInstructions string) error {
	if err := b.DefaultValidate(); err != nil {
		return domain.NewOpError(domain.ErrToolNotFound, "validate", b.name, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.logger.Debug("initializing CLI tool", "exec_path", b.execPath)

	execPath, err := exec.LookPath(b.execPath)
	if err != nil {
		return domain.NewOpError(domain.ErrToolNotFound, "lookup", b.name,
			fmt.Errorf("%s not found in PATH: %w (install: %s)", b.execPath, err, installInstructions))
	}

	b.execPath = execPath
	b.logger.Debug("found binary", "path", execPath)
	return nil
}

// DefaultValidate checks the static configuration.
func (b *BaseCLISource) DefaultValidate() error {
	if b.GetExecPath() == "" {
		return fmt.Errorf("exec path is empty")
	}
	if b.timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// Name returns the tool name.
func (b *BaseCLISource) Name() string {
	return b.name
}

// GetExecPath returns the resolved executable path.
func (b *BaseCLISource) GetExecPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.execPath
}

// GetLogger returns the logger instance.
func (b *BaseCLISource) GetLogger() logx.Logger {
	return b.logger
}

func (b *BaseCLISource) opError(subject string, err error) error {
	return domain.NewOpError(domain.ErrToolExecution, b.name, subject, err)
}
