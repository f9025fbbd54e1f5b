// internal/core/usecases/targets.go
package usecases

import (
	"context"
	"fmt"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

// TargetRequest son las entradas del operador.
type TargetRequest struct {
	Domains      []string
	Programs     []string
	RefreshScope bool
}

// TargetCollector reúne los dominios directos y los resueltos desde los
// programas en una única lista ordenada y sin duplicados.
type TargetCollector struct {
	resolver ports.ScopeResolver
	logger   logx.Logger
}

// NewTargetCollector crea el collector. resolver puede ser nil si no se piden programas.
func NewTargetCollector(resolver ports.ScopeResolver, logger logx.Logger) *TargetCollector {
	return &TargetCollector{
		resolver: resolver,
		logger:   logger.With("component", "targets"),
	}
}

// Collect normaliza los dominios y resuelve cada programa. Un fallo al
// resolver un programa es fatal y se retorna tal cual.
func (c *TargetCollector) Collect(ctx context.Context, req TargetRequest) ([]domain.Domain, error) {
	direct, invalid := domain.NormalizeAll(req.Domains)
	for _, raw := range invalid {
		c.logger.Warn("skipping invalid domain", "input", raw)
	}

	all := [][]domain.Domain{direct}
	if len(req.Programs) > 0 {
		if c.resolver == nil {
			return nil, domain.NewOpError(domain.ErrCredential, "resolve-scope", "programs",
				fmt.Errorf("no scope resolver configured"))
		}
		for _, program := range req.Programs {
			domains, err := c.resolver.Resolve(ctx, program, req.RefreshScope)
			if err != nil {
				return nil, err
			}
			all = append(all, domains)
		}
	}

	targets := domain.Dedupe(all...)
	c.logger.Debug("targets collected",
		"direct", len(direct),
		"programs", len(req.Programs),
		"total", len(targets),
	)
	return targets, nil
}

// CheckTools verifica una vez, antes de arrancar el pool, que todas las
// herramientas externas estén disponibles.
func CheckTools(tools ...ports.Collaborator) error {
	for _, tool := range tools {
		if err := tool.Initialize(); err != nil {
			return err
		}
	}
	return nil
}
