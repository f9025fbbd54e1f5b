// internal/platform/ui/helpers.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"assetmonitor/internal/core/domain"
)

// formatDuration formatea una duración de manera legible
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	} else if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
}

// boolToString convierte booleano a string visual
func boolToString(b bool) string {
	if b {
		return StyleSuccess.Sprint("ON")
	}
	return StyleSecondary.Sprint("OFF")
}

// summaryRow son las columnas de la tabla final para un dominio.
func summaryRow(r domain.DomainResult) []string {
	return []string{
		r.Domain.String(),
		r.Kind.String(),
		r.Status.String(),
		fmt.Sprintf("%d", r.NewEntries),
		fmt.Sprintf("%d", r.LiveHosts),
		formatDuration(r.Duration),
	}
}

var summaryHeader = []string{"DOMAIN", "RUN", "STATUS", "NEW", "LIVE", "DURATION"}

// resultLine es la línea de estado de un dominio, sin colores.
func resultLine(r domain.DomainResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", r.Domain, r.Kind, r.Status)
	if r.NewEntries > 0 {
		fmt.Fprintf(&b, " new=%d live=%d", r.NewEntries, r.LiveHosts)
	}
	if r.Err != nil {
		fmt.Fprintf(&b, " error=%q", r.Err.Error())
	}
	return b.String()
}
