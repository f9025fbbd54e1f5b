// internal/core/domain/report.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// NoLiveHostsMarker sustituye la salida del probe cuando está vacía.
const NoLiveHostsMarker = "HTTPX found no new alive subdomains."

// DiffResult es el resultado de comparar candidato y baseline.
type DiffResult struct {
	Domain     Domain
	NewEntries []string
	Changed    bool
}

// ProbeResult describe la salida del probe sobre el delta.
type ProbeResult struct {
	OutputPath string
	// Lines es la salida verbatim del probe, una línea por host.
	Lines []string
	// CapturesRequested indica si se pidieron capturas al probe.
	CapturesRequested bool
	// Err es el fallo de ejecución, si lo hubo (no aborta el pipeline).
	Err error
}

// LiveHosts retorna el número de hosts vivos reportados.
func (p ProbeResult) LiveHosts() int {
	return len(p.Lines)
}

// ChangeReport es el informe de cambios de un dominio en una ejecución.
type ChangeReport struct {
	Domain      Domain
	Delta       []string
	ProbeLines  []string
	Body        string
	SummaryPath string
	// ArchivePath es vacío si no se generó archivo de capturas.
	ArchivePath string
}

// RenderReport compone el cuerpo del informe.
func RenderReport(d Domain, delta, probeLines []string) string {
	probe := NoLiveHostsMarker
	if len(probeLines) > 0 {
		probe = strings.Join(probeLines, "\n")
	}
	return fmt.Sprintf("%s - change in assets ⚠️\n\nSubfinder:\n%s\n\nHTTPX:\n%s",
		d, strings.Join(delta, "\n"), probe)
}

// DomainStatus es el estado final de un dominio tras una ejecución.
type DomainStatus string

const (
	StatusBaselineCreated   DomainStatus = "baseline-created"
	StatusUnchanged         DomainStatus = "unchanged"
	StatusEnumerationFailed DomainStatus = "enumeration-failed"
	StatusReported          DomainStatus = "reported"
	StatusDegraded          DomainStatus = "degraded"
	StatusFailed            DomainStatus = "failed"
	StatusSkipped           DomainStatus = "skipped" // cancelado antes de procesarse
)

// String retorna la representación string del estado.
func (s DomainStatus) String() string {
	return string(s)
}

// IsFailure indica un estado que debe reflejarse en el código de salida.
func (s DomainStatus) IsFailure() bool {
	return s == StatusDegraded || s == StatusFailed || s == StatusSkipped
}

// DomainResult resume la ejecución del pipeline de un dominio.
type DomainResult struct {
	Domain     Domain
	Kind       RunKind
	Status     DomainStatus
	NewEntries int
	LiveHosts  int
	Report     *ChangeReport
	// Err acumula los errores no fatales del dominio.
	Err      error
	Duration time.Duration
}
