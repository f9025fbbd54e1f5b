// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"assetmonitor/internal/core/domain"
)

// RunsDir es el subdirectorio de la raíz de estado con los registros de ejecución.
const RunsDir = "runs"

// RunRecord es el registro JSON de una ejecución completa.
type RunRecord struct {
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Duration   string         `json:"duration"`
	Workers    int            `json:"workers"`
	Programs   []string       `json:"programs,omitempty"`
	Totals     RunTotals      `json:"totals"`
	Domains    []DomainRecord `json:"domains"`
}

// RunTotals agrega los estados de todos los dominios.
type RunTotals struct {
	Domains    int            `json:"domains"`
	NewEntries int            `json:"new_entries"`
	LiveHosts  int            `json:"live_hosts"`
	ByStatus   map[string]int `json:"by_status"`
}

// DomainRecord resume un dominio.
type DomainRecord struct {
	Domain      string `json:"domain"`
	RunKind     string `json:"run_kind"`
	Status      string `json:"status"`
	NewEntries  int    `json:"new_entries"`
	LiveHosts   int    `json:"live_hosts"`
	SummaryPath string `json:"summary_path,omitempty"`
	ArchivePath string `json:"archive_path,omitempty"`
	Error       string `json:"error,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

// NewRunRecord construye el registro a partir de los resultados por dominio.
func NewRunRecord(results []domain.DomainResult, started, finished time.Time, workers int, programs []string) RunRecord {
	rec := RunRecord{
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Duration:   finished.Sub(started).Round(time.Millisecond).String(),
		Workers:    workers,
		Programs:   programs,
		Totals:     RunTotals{ByStatus: make(map[string]int)},
		Domains:    make([]DomainRecord, 0, len(results)),
	}

	for _, r := range results {
		dr := DomainRecord{
			Domain:     r.Domain.String(),
			RunKind:    r.Kind.String(),
			Status:     r.Status.String(),
			NewEntries: r.NewEntries,
			LiveHosts:  r.LiveHosts,
			DurationMs: r.Duration.Milliseconds(),
		}
		if r.Report != nil {
			dr.SummaryPath = r.Report.SummaryPath
			dr.ArchivePath = r.Report.ArchivePath
		}
		if r.Err != nil {
			dr.Error = r.Err.Error()
		}

		rec.Domains = append(rec.Domains, dr)
		rec.Totals.Domains++
		rec.Totals.NewEntries += r.NewEntries
		rec.Totals.LiveHosts += r.LiveHosts
		rec.Totals.ByStatus[dr.Status]++
	}
	return rec
}

// WriteRunRecord escribe rec en <root>/runs/run_<timestamp>.json y retorna la ruta.
func WriteRunRecord(root string, rec RunRecord) (string, error) {
	if root == "" {
		root = "."
	}

	dir := filepath.Join(root, RunsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create runs directory: %w", err)
	}

	// Generar nombre de archivo con timestamp
	timestamp := rec.StartedAt.Local().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("run_%s.json", timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create run record: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return path, nil
}

// WriteRunRecordStdout escribe rec en stdout.
func WriteRunRecordStdout(rec RunRecord, pretty bool) error {
	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(rec)
}
