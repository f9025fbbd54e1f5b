// internal/platform/ui/presenter.go
package ui

import (
	"os"
	"time"

	"assetmonitor/internal/core/domain"
)

// UIMode define el modo de visualización
type UIMode string

const (
	UIModePretty UIMode = "pretty" // pterm (default)
	UIModePlain  UIMode = "plain"  // texto plano, para cron y ficheros de log
	UIModeQuiet  UIMode = "quiet"  // sin salida
)

// Presenter muestra al operador el progreso de una ejecución. Los métodos
// pueden llamarse concurrentemente desde los workers.
type Presenter interface {
	// Start muestra la cabecera de la ejecución
	Start(info RunInfo)

	// DomainFinished muestra el estado final de un dominio
	DomainFinished(result domain.DomainResult)

	// Report muestra el informe de cambios de un dominio
	Report(report *domain.ChangeReport)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish muestra la tabla resumen
	Finish(stats RunStats)

	// Close limpia recursos del presenter
	Close() error
}

// RunInfo describe la ejecución antes de arrancar el pool.
type RunInfo struct {
	Version   string
	Domains   int
	Programs  []string
	Workers   int
	OutputDir string
	Captures  bool
	Notifiers []string
}

// RunStats contiene los resultados finales.
type RunStats struct {
	Results    []domain.DomainResult
	Duration   time.Duration
	RecordPath string
}

// Failures cuenta los dominios con estado de fallo.
func (s RunStats) Failures() int {
	n := 0
	for _, r := range s.Results {
		if r.Status.IsFailure() {
			n++
		}
	}
	return n
}

// New crea el presenter para mode.
func New(mode UIMode) Presenter {
	switch mode {
	case UIModeQuiet:
		return NewNoopPresenter()
	case UIModePlain:
		return NewRawPresenter(os.Stdout)
	default:
		return NewPTermPresenter()
	}
}
