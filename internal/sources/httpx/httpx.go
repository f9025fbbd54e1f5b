// Package httpx wraps Project Discovery's httpx CLI as the liveness prober.
package httpx

import (
	"context"
	"strconv"
	"time"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/sources/common"
)

const (
	toolName       = "httpx"
	defaultTimeout = 10 * time.Minute
	installHint    = "go install -v github.com/projectdiscovery/httpx/cmd/httpx@latest"
)

// Config holds the httpx invocation settings.
type Config struct {
	ExecPath     string
	Timeout      time.Duration // whole invocation
	Threads      int           // -t (0 = tool default)
	Profile      ScanProfile
	SystemChrome bool // -system-chrome for captures
}

// DefaultConfig matches a plain liveness probe.
func DefaultConfig() Config {
	return Config{
		ExecPath: toolName,
		Timeout:  defaultTimeout,
		Profile:  ProfilePlain,
	}
}

// HTTPx implements ports.Prober on top of the httpx binary.
type HTTPx struct {
	*common.BaseCLISource
	cfg    Config
	logger logx.Logger
}

// New creates an HTTPx prober.
func New(logger logx.Logger, cfg Config) *HTTPx {
	if cfg.ExecPath == "" {
		cfg.ExecPath = toolName
	}
	if cfg.Profile == "" {
		cfg.Profile = ProfilePlain
	}
	base := common.NewBaseCLISource(logger, common.BaseCLIConfig{
		SourceName: toolName,
		ExecPath:   cfg.ExecPath,
		Timeout:    cfg.Timeout,
	})
	return &HTTPx{
		BaseCLISource: base,
		cfg:           cfg,
		logger:        base.GetLogger(),
	}
}

// Initialize verifies that httpx is installed. Implements ports.Collaborator.
func (h *HTTPx) Initialize() error {
	return h.DefaultInitialize(installHint)
}

// Probe runs httpx against req.InputPath and writes its stdout verbatim to
// req.OutputPath. The returned count is the number of lines written, even
// when the process failed (partial output).
func (h *HTTPx) Probe(ctx context.Context, req ports.ProbeRequest) (int, error) {
	out, err := common.NewFileLineHandler(req.OutputPath)
	if err != nil {
		return 0, domain.NewOpError(domain.ErrIO, "probe", req.OutputPath, err)
	}

	if req.Captures {
		h.logger.Info("capturing screenshots, this may take a while", "input", req.InputPath)
	}

	_, err = h.ExecuteCLI(ctx, req.InputPath, h.buildCommandArgs(req), out)

	h.logger.Debug("httpx probe completed",
		"input", req.InputPath,
		"lines", out.Count(),
		"error", err != nil,
	)
	return out.Count(), err
}

// buildCommandArgs builds the httpx argument list for req.
func (h *HTTPx) buildCommandArgs(req ports.ProbeRequest) []string {
	args := []string{"-l", req.InputPath, "-silent", "-nc"}
	args = append(args, GetProfile(h.cfg.Profile).Flags...)

	if h.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(h.cfg.Threads))
	}

	if req.Captures {
		args = append(args, captureFlags...)
		if req.CaptureDir != "" {
			args = append(args, "-srd", req.CaptureDir)
		}
		if h.cfg.SystemChrome {
			args = append(args, "-system-chrome")
		}
	}
	return args
}
