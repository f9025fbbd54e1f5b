package subfinder

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/sources/common"
)

const (
	toolName       = "subfinder"
	defaultTimeout = 10 * time.Minute
	installHint    = "go install -v github.com/projectdiscovery/subfinder/v2/cmd/subfinder@latest"
)

// Config holds the subfinder invocation settings.
type Config struct {
	ExecPath string
	Timeout  time.Duration // whole invocation
	Threads  int           // -t (0 = tool default)
	// SourceTimeout is subfinder's per-source timeout (-timeout, seconds).
	SourceTimeout int
	RateLimit     int      // -rl (0 = unlimited)
	AllSources    bool     // -all
	Sources       []string // -s
}

// DefaultConfig matches a full passive enumeration.
func DefaultConfig() Config {
	return Config{
		ExecPath:   toolName,
		Timeout:    defaultTimeout,
		AllSources: true,
	}
}

// Subfinder implements ports.Enumerator on top of the subfinder binary.
type Subfinder struct {
	*common.BaseCLISource
	cfg    Config
	parser *Parser
	logger logx.Logger
}

// New creates a Subfinder enumerator.
func New(logger logx.Logger, cfg Config) *Subfinder {
	if cfg.ExecPath == "" {
		cfg.ExecPath = toolName
	}
	base := common.NewBaseCLISource(logger, common.BaseCLIConfig{
		SourceName: toolName,
		ExecPath:   cfg.ExecPath,
		Timeout:    cfg.Timeout,
	})
	return &Subfinder{
		BaseCLISource: base,
		cfg:           cfg,
		parser:        NewParser(base.GetLogger()),
		logger:        base.GetLogger(),
	}
}

// Initialize verifies that subfinder is installed. Implements ports.Collaborator.
func (s *Subfinder) Initialize() error {
	return s.DefaultInitialize(installHint)
}

// Enumerate runs subfinder for d and writes in-scope hosts, one per line, to
// outPath. The file is always created, even when nothing is found.
func (s *Subfinder) Enumerate(ctx context.Context, d domain.Domain, outPath string) error {
	out, err := common.NewFileLineHandler(outPath)
	if err != nil {
		return domain.NewOpError(domain.ErrIO, "enumerate", string(d), err)
	}

	handler := &hostHandler{parser: s.parser, target: d, out: out, seen: make(map[string]struct{})}

	s.logger.Info("starting subfinder scan", "domain", d, "all", s.cfg.AllSources, "threads", s.cfg.Threads)

	_, err = s.ExecuteCLI(ctx, string(d), s.buildCommandArgs(d), handler)

	s.logger.Info("subfinder scan completed",
		"domain", d,
		"hosts", out.Count(),
		"skipped", handler.skipped,
		"error", err != nil,
	)
	return err
}

// buildCommandArgs builds the subfinder argument list for d.
func (s *Subfinder) buildCommandArgs(d domain.Domain) []string {
	args := []string{"-d", string(d), "-oJ", "-silent", "-nc"}

	if s.cfg.AllSources {
		args = append(args, "-all")
	}
	if len(s.cfg.Sources) > 0 {
		args = append(args, "-s", joinSources(s.cfg.Sources))
	}
	if s.cfg.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(s.cfg.Threads))
	}
	if s.cfg.RateLimit > 0 {
		args = append(args, "-rl", strconv.Itoa(s.cfg.RateLimit))
	}
	if s.cfg.SourceTimeout > 0 {
		args = append(args, "-timeout", strconv.Itoa(s.cfg.SourceTimeout))
	}
	return args
}

func joinSources(sources []string) string {
	cleaned := make([]string, 0, len(sources))
	for _, src := range sources {
		if src = strings.TrimSpace(src); src != "" {
			cleaned = append(cleaned, src)
		}
	}
	return strings.Join(cleaned, ",")
}

// hostHandler parses stdout records and writes unique in-scope hosts.
type hostHandler struct {
	parser  *Parser
	target  domain.Domain
	out     *common.FileLineHandler
	mu      sync.Mutex
	seen    map[string]struct{}
	skipped int
}

func (h *hostHandler) ProcessLine(line []byte) error {
	resp, err := h.parser.ParseLine(line)
	if err != nil || resp == nil {
		return err
	}
	if err := h.parser.ValidateResponse(resp); err != nil {
		h.mu.Lock()
		h.skipped++
		h.mu.Unlock()
		return err
	}

	host := h.parser.Host(resp, h.target)

	h.mu.Lock()
	if host == "" {
		h.skipped++
		h.mu.Unlock()
		return nil
	}
	if _, dup := h.seen[host]; dup {
		h.mu.Unlock()
		return nil
	}
	h.seen[host] = struct{}{}
	h.mu.Unlock()

	return h.out.ProcessLine([]byte(host))
}

func (h *hostHandler) Finalize() error {
	return h.out.Finalize()
}
