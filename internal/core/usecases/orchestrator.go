// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"
	"fmt"
	"time"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/platform/workerpool"
)

// Orchestrator reparte los dominios entre un pool acotado de workers.
// Cada dominio es una frontera de error: un fallo o panic se registra en su
// resultado y no afecta al resto.
type Orchestrator struct {
	pipeline DomainRunner
	workers  int
	logger   logx.Logger
	onResult func(domain.DomainResult)
}

// OrchestratorOptions configura el orchestrator.
type OrchestratorOptions struct {
	Pipeline DomainRunner
	Workers  int // default 5
	Logger   logx.Logger
	// OnResult se invoca al terminar cada dominio, desde los workers
	OnResult func(domain.DomainResult)
}

// NewOrchestrator crea un orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &Orchestrator{
		pipeline: opts.Pipeline,
		workers:  opts.Workers,
		logger:   opts.Logger.With("component", "orchestrator"),
		onResult: opts.OnResult,
	}
}

// domainTask adapta un dominio a workerpool.Task.
type domainTask struct {
	d        domain.Domain
	pipeline DomainRunner
	result   domain.DomainResult
}

func (t *domainTask) Name() string { return t.d.String() }

func (t *domainTask) Execute(ctx context.Context) error {
	t.result = t.pipeline.Run(ctx, t.d)
	return t.result.Err
}

// RunAll ejecuta el pipeline de cada dominio y retorna un resultado por
// dominio, en el mismo orden de entrada.
func (o *Orchestrator) RunAll(ctx context.Context, domains []domain.Domain) []domain.DomainResult {
	tasks := make([]workerpool.Task, len(domains))
	for i, d := range domains {
		tasks[i] = &domainTask{d: d, pipeline: o.pipeline}
	}

	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers: o.workers,
		Logger:  o.logger,
		OnResult: func(tr workerpool.TaskResult) {
			if o.onResult != nil {
				o.onResult(toDomainResult(tr))
			}
		},
	})

	start := time.Now()
	o.logger.Info("monitoring domains", "domains", len(domains), "workers", o.workers)

	taskResults := pool.Run(ctx, tasks)

	results := make([]domain.DomainResult, len(taskResults))
	failures := 0
	for i, tr := range taskResults {
		results[i] = toDomainResult(tr)
		if results[i].Status.IsFailure() {
			failures++
		}
	}

	o.logger.Info("all domains processed",
		"domains", len(domains),
		"failures", failures,
		"duration", time.Since(start).String(),
	)
	return results
}

// toDomainResult traduce el resultado del pool, cubriendo panics y tareas
// no despachadas.
func toDomainResult(tr workerpool.TaskResult) domain.DomainResult {
	task := tr.Task.(*domainTask)

	switch {
	case tr.Panicked:
		return domain.DomainResult{
			Domain:   task.d,
			Status:   domain.StatusFailed,
			Err:      fmt.Errorf("unexpected failure: %w", tr.Error),
			Duration: tr.Duration,
		}
	case tr.Skipped:
		return domain.DomainResult{
			Domain: task.d,
			Status: domain.StatusSkipped,
			Err:    tr.Error,
		}
	default:
		return task.result
	}
}
