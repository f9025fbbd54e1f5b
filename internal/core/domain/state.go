// internal/core/domain/state.go
package domain

import (
	"path/filepath"
	"regexp"
)

// TrackingState es el estado de seguimiento de un dominio, derivado una sola
// vez al inicio del pipeline a partir del directorio de estado.
type TrackingState int

const (
	// StateUninitialized: no existe baseline todavía
	StateUninitialized TrackingState = iota

	// StateTracked: existe baseline de ejecuciones anteriores
	StateTracked
)

// String retorna la representación string del estado.
func (s TrackingState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateTracked:
		return "tracked"
	default:
		return "unknown"
	}
}

// RunKind retorna el tipo de ejecución que corresponde a este estado.
func (s TrackingState) RunKind() RunKind {
	if s == StateTracked {
		return RunIncremental
	}
	return RunFirst
}

// RunKind distingue la creación de baseline de la detección de cambios.
type RunKind int

const (
	RunFirst RunKind = iota
	RunIncremental
)

// String retorna la representación string del tipo de ejecución.
func (k RunKind) String() string {
	switch k {
	case RunFirst:
		return "first"
	case RunIncremental:
		return "incremental"
	default:
		return "unknown"
	}
}

// Nombres de los artefactos por dominio.
const (
	BaselineFile       = "subdomains.txt"
	CandidateFile      = "newsubdomains.txt"
	DeltaFile          = "diff.txt"
	ProbeOutputFile    = "newsubdomains_httpx.txt"
	SummaryFile        = "summary.txt"
	CaptureStagingDir  = "httpx_output"
	CaptureDir         = "screenshots"
	captureArchiveTail = "_screenshots.tar.gz"
)

// StatePaths agrupa las rutas del subárbol exclusivo de un dominio.
type StatePaths struct {
	Dir            string
	Baseline       string
	Candidate      string
	Delta          string
	ProbeOutput    string
	Summary        string
	CaptureStaging string
	CaptureDir     string
	CaptureArchive string
}

// NewStatePaths construye el layout <root>/<domain>/...
func NewStatePaths(root string, d Domain) StatePaths {
	dir := filepath.Join(root, string(d))
	return StatePaths{
		Dir:            dir,
		Baseline:       filepath.Join(dir, BaselineFile),
		Candidate:      filepath.Join(dir, CandidateFile),
		Delta:          filepath.Join(dir, DeltaFile),
		ProbeOutput:    filepath.Join(dir, ProbeOutputFile),
		Summary:        filepath.Join(dir, SummaryFile),
		CaptureStaging: filepath.Join(dir, CaptureStagingDir),
		CaptureDir:     filepath.Join(dir, CaptureDir),
		CaptureArchive: filepath.Join(dir, string(d)+captureArchiveTail),
	}
}

// All retorna todas las rutas del layout.
func (p StatePaths) All() []string {
	return []string{
		p.Baseline, p.Candidate, p.Delta, p.ProbeOutput, p.Summary,
		p.CaptureStaging, p.CaptureDir, p.CaptureArchive,
	}
}

var unsafeProgramChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// ScopeCachePath retorna <root>/hackerone_<program>_scope.json.
func ScopeCachePath(root, program string) string {
	safe := unsafeProgramChars.ReplaceAllString(program, "_")
	return filepath.Join(root, "hackerone_"+safe+"_scope.json")
}
