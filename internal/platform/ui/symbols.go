// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"assetmonitor/internal/core/domain"
)

// Status representa el estado visual de un dominio
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusChanged
	StatusWarning
	StatusError
	StatusSkipped
)

// String convierte el status a string
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusChanged:
		return "changed"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "⏸"
	case StatusSuccess:
		return "✓"
	case StatusChanged:
		return "★"
	case StatusWarning:
		return "⚠"
	case StatusError:
		return "✗"
	case StatusSkipped:
		return "⊘"
	default:
		return "?"
	}
}

// Color retorna el color pterm para cada estado
func (s Status) Color() pterm.Color {
	switch s {
	case StatusSuccess:
		return pterm.FgGreen
	case StatusChanged:
		return pterm.FgCyan
	case StatusWarning:
		return pterm.FgYellow
	case StatusError:
		return pterm.FgRed
	case StatusPending, StatusSkipped:
		return pterm.FgGray
	default:
		return pterm.FgDefault
	}
}

// Style retorna un pterm.Style configurado para el estado
func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// statusOf traduce el estado de un dominio a su representación visual.
func statusOf(s domain.DomainStatus) Status {
	switch s {
	case domain.StatusBaselineCreated, domain.StatusUnchanged:
		return StatusSuccess
	case domain.StatusReported:
		return StatusChanged
	case domain.StatusEnumerationFailed, domain.StatusDegraded:
		return StatusWarning
	case domain.StatusFailed:
		return StatusError
	case domain.StatusSkipped:
		return StatusSkipped
	default:
		return StatusPending
	}
}

// Icons globales para diferentes elementos de la UI
var (
	IconTarget   = "🎯"
	IconInfo     = "ℹ"
	IconWarning  = "⚠"
	IconError    = "✗"
	IconSuccess  = "✓"
	IconStats    = "📊"
	IconTime     = "⏱"
	IconWorkers  = "⚙️"
	IconNotify   = "🔔"
	IconCaptures = "📷"
)

// Separadores y bordes
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
