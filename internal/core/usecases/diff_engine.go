// internal/core/usecases/diff_engine.go
package usecases

import (
	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

// DiffEngine compara el candidato con el baseline de un dominio y persiste
// el resultado.
type DiffEngine struct {
	store  ports.StateStore
	logger logx.Logger
}

// NewDiffEngine crea un motor de diff.
func NewDiffEngine(store ports.StateStore, logger logx.Logger) *DiffEngine {
	return &DiffEngine{
		store:  store,
		logger: logger.With("component", "diff"),
	}
}

// Compute calcula candidate - baseline (ordenado) y persiste:
//   - delta con las entradas nuevas
//   - candidato deduplicado y ordenado
//   - entradas nuevas añadidas al final del baseline
//
// El baseline nunca se reescribe; el append va el último para que una
// interrupción previa deje las entradas nuevas pendientes de reportar.
func (e *DiffEngine) Compute(d domain.Domain, paths domain.StatePaths) (domain.DiffResult, error) {
	result := domain.DiffResult{Domain: d}

	candidate, err := e.store.ReadSet(paths.Candidate)
	if err != nil {
		return result, err
	}
	baseline, err := e.store.ReadSet(paths.Baseline)
	if err != nil {
		return result, err
	}

	newEntries := candidate.Difference(baseline)

	if err := e.store.WriteLines(paths.Delta, newEntries); err != nil {
		return result, err
	}
	if err := e.store.WriteLines(paths.Candidate, candidate.Sorted()); err != nil {
		return result, err
	}
	if err := e.store.AppendLines(paths.Baseline, newEntries); err != nil {
		return result, err
	}

	result.NewEntries = newEntries
	result.Changed = len(newEntries) > 0

	e.logger.Debug("diff computed",
		"domain", d,
		"candidate", candidate.Len(),
		"baseline", baseline.Len(),
		"new", len(newEntries),
	)
	return result, nil
}
