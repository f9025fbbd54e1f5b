// internal/core/usecases/enumeration_runner.go
package usecases

import (
	"context"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

// EnumerationRunner ejecuta el enumerador sobre un dominio según su estado
// de seguimiento: baseline en la primera ejecución, candidato en las siguientes.
type EnumerationRunner struct {
	enumerator ports.Enumerator
	store      ports.StateStore
	logger     logx.Logger
}

// NewEnumerationRunner crea un runner.
func NewEnumerationRunner(enumerator ports.Enumerator, store ports.StateStore, logger logx.Logger) *EnumerationRunner {
	return &EnumerationRunner{
		enumerator: enumerator,
		store:      store,
		logger:     logger.With("component", "enumeration"),
	}
}

// Run enumera d. Con StateUninitialized escribe directamente el baseline y lo
// copia al candidato (RunFirst: no hay nada que comparar). Con StateTracked
// escribe solo el candidato y deja el baseline intacto.
func (r *EnumerationRunner) Run(ctx context.Context, d domain.Domain, paths domain.StatePaths, state domain.TrackingState) (domain.RunKind, error) {
	kind := state.RunKind()

	if kind == domain.RunFirst {
		r.logger.Info("first enumeration, creating baseline", "domain", d)

		if err := r.enumerator.Enumerate(ctx, d, paths.Baseline); err != nil {
			// un baseline parcial haría pasar por conocidos hosts nunca reportados
			if rmErr := r.store.Remove(paths.Baseline); rmErr != nil {
				r.logger.Warn("failed to remove partial baseline", "domain", d, "error", rmErr.Error())
			}
			return kind, err
		}
		if err := r.store.Copy(paths.Baseline, paths.Candidate); err != nil {
			return kind, err
		}
		return kind, nil
	}

	r.logger.Info("running enumeration", "domain", d)
	return kind, r.enumerator.Enumerate(ctx, d, paths.Candidate)
}
