// internal/core/usecases/domain_pipeline.go
package usecases

import (
	"context"
	"errors"
	"time"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

// DomainRunner ejecuta el pipeline completo de un dominio.
type DomainRunner interface {
	Run(ctx context.Context, d domain.Domain) domain.DomainResult
}

// DomainPipeline encadena enumeración, diff, probe e informe para un dominio.
// Todo el estado en disco del dominio vive bajo su directorio, así que varias
// instancias de Run pueden ejecutarse en paralelo sobre dominios distintos.
type DomainPipeline struct {
	store     ports.StateStore
	runner    *EnumerationRunner
	diff      *DiffEngine
	probe     *LivenessProbe
	assembler *ReportAssembler
	logger    logx.Logger
}

// DomainPipelineOptions configura el pipeline.
type DomainPipelineOptions struct {
	Store      ports.StateStore
	Enumerator ports.Enumerator
	Prober     ports.Prober
	Archiver   ports.Archiver
	Notifier   ports.Notifier // opcional
	Captures   bool
	Logger     logx.Logger
}

// NewDomainPipeline crea el pipeline y sus etapas.
func NewDomainPipeline(opts DomainPipelineOptions) *DomainPipeline {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &DomainPipeline{
		store:     opts.Store,
		runner:    NewEnumerationRunner(opts.Enumerator, opts.Store, opts.Logger),
		diff:      NewDiffEngine(opts.Store, opts.Logger),
		probe:     NewLivenessProbe(opts.Prober, opts.Store, opts.Captures, opts.Logger),
		assembler: NewReportAssembler(opts.Store, opts.Archiver, opts.Notifier, opts.Logger),
		logger:    opts.Logger.With("component", "pipeline"),
	}
}

// Run ejecuta el pipeline de d. Nunca retorna error: el resultado lleva el
// estado final y los errores no fatales acumulados.
func (p *DomainPipeline) Run(ctx context.Context, d domain.Domain) (result domain.DomainResult) {
	start := time.Now()
	result.Domain = d
	defer func() {
		result.Duration = time.Since(start)
	}()

	logger := p.logger.With("domain", d.String())

	paths, state, err := p.store.Prepare(d)
	if err != nil {
		return failed(result, domain.StatusFailed, err)
	}
	result.Kind = state.RunKind()
	logger.Debug("state derived", "state", state.String())

	kind, err := p.runner.Run(ctx, d, paths, state)
	if err != nil {
		logger.Warn("enumeration failed, no new data this run", "error", err.Error())
		return failed(result, domain.StatusEnumerationFailed, err)
	}
	if kind == domain.RunFirst {
		logger.Info("baseline created, run again to monitor changes")
		result.Status = domain.StatusBaselineCreated
		return result
	}

	diff, err := p.diff.Compute(d, paths)
	if err != nil {
		return failed(result, domain.StatusFailed, err)
	}
	result.NewEntries = len(diff.NewEntries)
	if !diff.Changed {
		logger.Info("no new subdomains")
		result.Status = domain.StatusUnchanged
		return result
	}

	logger.Info("new subdomains found", "count", result.NewEntries)

	probe := p.probe.Probe(ctx, d, paths)
	result.LiveHosts = probe.LiveHosts()
	if probe.Err != nil {
		result.Err = probe.Err
	}

	report, err := p.assembler.Assemble(diff, probe, paths)
	if report == nil {
		return failed(result, domain.StatusFailed, err)
	}
	result.Report = report
	result.Status = domain.StatusReported
	if err != nil {
		result.Status = domain.StatusDegraded
		result.Err = errors.Join(result.Err, err)
	}

	if err := p.assembler.Dispatch(ctx, report); err != nil {
		logger.Warn("notification failed", "error", err.Error())
		result.Err = errors.Join(result.Err, err)
	}

	return result
}

func failed(result domain.DomainResult, status domain.DomainStatus, err error) domain.DomainResult {
	result.Status = status
	result.Err = err
	return result
}
