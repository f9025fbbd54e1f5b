// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores
var (
	// SignalOrange - cabeceras y elementos principales
	SignalOrange = pterm.NewRGB(255, 107, 53)

	// AlertRed - errores
	AlertRed = pterm.NewRGB(215, 38, 56)

	// AmberYellow - degradaciones y advertencias
	AmberYellow = pterm.NewRGB(255, 182, 39)

	// SlateGray - texto secundario
	SlateGray = pterm.NewRGB(110, 110, 110)

	// RadarCyan - cambios detectados
	RadarCyan = pterm.NewRGB(0, 206, 209)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = SignalOrange.ToRGBStyle()
	StyleSuccess   = RadarCyan.ToRGBStyle()
	StyleWarning   = AmberYellow.ToRGBStyle()
	StyleError     = AlertRed.ToRGBStyle()
	StyleSecondary = SlateGray.ToRGBStyle()
)
