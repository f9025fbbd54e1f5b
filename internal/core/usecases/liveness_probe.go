// internal/core/usecases/liveness_probe.go
package usecases

import (
	"context"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

// LivenessProbe sondea únicamente el delta de un dominio.
type LivenessProbe struct {
	prober   ports.Prober
	store    ports.StateStore
	captures bool
	logger   logx.Logger
}

// NewLivenessProbe crea el probe. captures solicita capturas visuales.
func NewLivenessProbe(prober ports.Prober, store ports.StateStore, captures bool, logger logx.Logger) *LivenessProbe {
	return &LivenessProbe{
		prober:   prober,
		store:    store,
		captures: captures,
		logger:   logger.With("component", "probe"),
	}
}

// Probe ejecuta el prober sobre paths.Delta. Un fallo del prober no aborta:
// la salida vacía o parcial se trata como "sin hosts vivos".
func (p *LivenessProbe) Probe(ctx context.Context, d domain.Domain, paths domain.StatePaths) domain.ProbeResult {
	result := domain.ProbeResult{
		OutputPath:        paths.ProbeOutput,
		CapturesRequested: p.captures,
	}

	p.logger.Info("probing new subdomains", "domain", d, "captures", p.captures)

	// Las capturas de una ejecución anterior no pueden pasar por nuevas
	if p.captures {
		if err := p.store.Remove(paths.CaptureStaging); err != nil {
			p.logger.Warn("failed to clear capture staging", "domain", d, "error", err.Error())
		}
	}

	_, err := p.prober.Probe(ctx, ports.ProbeRequest{
		InputPath:  paths.Delta,
		OutputPath: paths.ProbeOutput,
		Captures:   p.captures,
		CaptureDir: paths.CaptureStaging,
	})
	if err != nil {
		p.logger.Warn("probe failed, continuing with partial output", "domain", d, "error", err.Error())
		result.Err = err
	}

	lines, err := p.store.ReadLines(paths.ProbeOutput)
	if err != nil {
		p.logger.Warn("failed to read probe output", "domain", d, "error", err.Error())
	}
	result.Lines = lines
	return result
}
