// internal/platform/ui/raw_presenter.go
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"assetmonitor/internal/core/domain"
)

// RawPresenter escribe texto plano sin colores, pensado para cron y logs.
type RawPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewRawPresenter crea un nuevo RawPresenter sobre out
func NewRawPresenter(out io.Writer) *RawPresenter {
	return &RawPresenter{out: out}
}

// log escribe una línea con timestamp y nivel
func (r *RawPresenter) log(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(r.out, "%s %-5s %s\n", timestamp, level, message)
}

// Start inicia la presentación
func (r *RawPresenter) Start(info RunInfo) {
	msg := fmt.Sprintf("monitoring started domains=%d workers=%d output=%s screenshots=%t",
		info.Domains, info.Workers, info.OutputDir, info.Captures)
	if len(info.Programs) > 0 {
		msg += " programs=" + strings.Join(info.Programs, ",")
	}
	if len(info.Notifiers) > 0 {
		msg += " notify=" + strings.Join(info.Notifiers, ",")
	}
	r.log("INFO", msg)
}

// DomainFinished escribe la línea de estado del dominio
func (r *RawPresenter) DomainFinished(result domain.DomainResult) {
	level := "INFO"
	if result.Status.IsFailure() || result.Status == domain.StatusEnumerationFailed {
		level = "WARN"
	}
	r.log(level, resultLine(result))
}

// Report escribe el informe tal cual
func (r *RawPresenter) Report(report *domain.ChangeReport) {
	if report == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s\n\nSummary file for %s has been saved at: %s\n", report.Body, report.Domain, report.SummaryPath)
}

// Info escribe un mensaje informativo
func (r *RawPresenter) Info(msg string) { r.log("INFO", msg) }

// Warning escribe una advertencia
func (r *RawPresenter) Warning(msg string) { r.log("WARN", msg) }

// Error escribe un error
func (r *RawPresenter) Error(msg string) { r.log("ERROR", msg) }

// Finish escribe la tabla resumen
func (r *RawPresenter) Finish(stats RunStats) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "\n=== Monitoring completed in %s ===\n", formatDuration(stats.Duration))

	w := tabwriter.NewWriter(r.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(summaryHeader, "\t"))
	for _, result := range stats.Results {
		fmt.Fprintln(w, strings.Join(summaryRow(result), "\t"))
	}
	w.Flush()

	if n := stats.Failures(); n > 0 {
		fmt.Fprintf(r.out, "%d domain(s) did not complete cleanly\n", n)
	}
	if stats.RecordPath != "" {
		fmt.Fprintf(r.out, "Run record: %s\n", stats.RecordPath)
	}
}

// Close no libera nada
func (r *RawPresenter) Close() error {
	return nil
}
