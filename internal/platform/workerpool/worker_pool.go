// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"assetmonitor/internal/platform/logx"
)

// Task representa una tarea a ejecutar en el worker pool.
type Task interface {
	// Execute ejecuta la tarea
	Execute(ctx context.Context) error

	// Name retorna el nombre de la tarea
	Name() string
}

// TaskFunc adapta una función a Task.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

// Execute ejecuta la función.
func (t TaskFunc) Execute(ctx context.Context) error { return t.Fn(ctx) }

// Name retorna el nombre de la tarea.
func (t TaskFunc) Name() string { return t.TaskName }

// TaskResult representa el resultado de una tarea.
type TaskResult struct {
	Task     Task
	Error    error
	Duration time.Duration
	// Skipped indica que la tarea no llegó a ejecutarse (contexto cancelado)
	Skipped bool
	// Panicked indica que Error proviene de un panic recuperado
	Panicked bool
}

// WorkerPoolConfig configura el worker pool.
type WorkerPoolConfig struct {
	Workers int
	Logger  logx.Logger
	// OnResult se invoca desde los workers al terminar cada tarea; debe ser
	// seguro para uso concurrente.
	OnResult func(TaskResult)
}

// WorkerPool ejecuta tareas independientes con una concurrencia acotada.
// Cada tarea es una frontera de error: un fallo o panic no afecta al resto.
type WorkerPool struct {
	workers  int
	logger   logx.Logger
	onResult func(TaskResult)
}

// NewWorkerPool crea un nuevo worker pool.
func NewWorkerPool(cfg WorkerPoolConfig) *WorkerPool {
	if cfg.Workers <= 0 {
		cfg.Workers = 5
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}

	return &WorkerPool{
		workers:  cfg.Workers,
		logger:   cfg.Logger.With("component", "worker-pool"),
		onResult: cfg.OnResult,
	}
}

// Workers retorna el número de workers.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Run ejecuta todas las tareas en orden FIFO y bloquea hasta que terminan.
// Los resultados conservan el índice de la tarea. Si ctx se cancela, las
// tareas aún no despachadas se marcan como Skipped.
func (wp *WorkerPool) Run(ctx context.Context, tasks []Task) []TaskResult {
	results := make([]TaskResult, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	workers := wp.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	wp.logger.Info("starting worker pool", "workers", workers, "tasks", len(tasks))

	queue := make(chan int)
	var wg sync.WaitGroup

	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			wp.logger.Debug("worker started", "worker_id", id)
			for i := range queue {
				results[i] = wp.executeTask(ctx, id, tasks[i])
				wp.emit(results[i])
			}
			wp.logger.Debug("worker stopped", "worker_id", id)
		}(id)
	}

	dispatched := 0
feed:
	for dispatched < len(tasks) && ctx.Err() == nil {
		select {
		case queue <- dispatched:
			dispatched++
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	for i := dispatched; i < len(tasks); i++ {
		results[i] = TaskResult{Task: tasks[i], Error: ctx.Err(), Skipped: true}
		wp.emit(results[i])
	}
	if dispatched < len(tasks) {
		wp.logger.Warn("pool canceled before dispatching all tasks",
			"dispatched", dispatched,
			"skipped", len(tasks)-dispatched,
		)
	}

	wp.logger.Info("worker pool drained", "tasks", len(tasks))
	return results
}

// executeTask ejecuta una tarea individual recuperando panics.
func (wp *WorkerPool) executeTask(ctx context.Context, workerID int, task Task) (result TaskResult) {
	start := time.Now()
	result.Task = task

	wp.logger.Debug("executing task", "worker_id", workerID, "task", task.Name())

	defer func() {
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("task %s panicked: %v", task.Name(), r)
			result.Panicked = true
			wp.logger.Warn("task panicked",
				"worker_id", workerID,
				"task", task.Name(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
		wp.logger.Debug("task completed",
			"worker_id", workerID,
			"task", task.Name(),
			"duration_ms", result.Duration.Milliseconds(),
			"error", result.Error != nil,
		)
	}()

	result.Error = task.Execute(ctx)
	return result
}

func (wp *WorkerPool) emit(r TaskResult) {
	if wp.onResult != nil {
		wp.onResult(r)
	}
}
