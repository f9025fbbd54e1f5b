// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"assetmonitor/internal/core/domain"
)

// PTermPresenter implementa Presenter usando pterm para colores, cajas y tablas.
type PTermPresenter struct {
	mu       sync.Mutex
	total    int
	finished int
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Start muestra el banner y la configuración de la ejecución
func (p *PTermPresenter) Start(info RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = info.Domains
	p.finished = 0

	pterm.Println(StylePrimary.Sprint(Banner))

	panel := pterm.DefaultBox.
		WithTitle("Asset Monitor " + info.Version).
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan))

	content := fmt.Sprintf("%s Domains: %s\n", IconTarget, pterm.Cyan(info.Domains))
	if len(info.Programs) > 0 {
		content += fmt.Sprintf("   Programs: %s\n", strings.Join(info.Programs, ", "))
	}
	content += fmt.Sprintf("%s Workers: %d\n", IconWorkers, info.Workers)
	content += fmt.Sprintf("   Output: %s\n", info.OutputDir)
	content += fmt.Sprintf("%s Screenshots: %s\n", IconCaptures, boolToString(info.Captures))
	notifiers := "none"
	if len(info.Notifiers) > 0 {
		notifiers = strings.Join(info.Notifiers, ", ")
	}
	content += fmt.Sprintf("%s Notifications: %s", IconNotify, notifiers)

	panel.Println(content)
	pterm.Println()
}

// DomainFinished muestra una línea por dominio terminado
func (p *PTermPresenter) DomainFinished(r domain.DomainResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finished++
	status := statusOf(r.Status)

	line := fmt.Sprintf("  %s %s %s",
		status.Symbol(),
		status.Style().Sprint(r.Domain.String()),
		pterm.Gray(fmt.Sprintf("[%s] %s", r.Kind, r.Status)),
	)
	if r.NewEntries > 0 {
		line += fmt.Sprintf(" %s new, %s live", pterm.Cyan(r.NewEntries), pterm.Green(r.LiveHosts))
	}
	line += pterm.Gray(fmt.Sprintf(" (%s) %d/%d", formatDuration(r.Duration), p.finished, p.total))
	pterm.Println(line)

	if r.Err != nil && r.Status != domain.StatusReported {
		pterm.Println(StyleSecondary.Sprint("      " + r.Err.Error()))
	}
}

// Report muestra el informe de cambios en una caja
func (p *PTermPresenter) Report(report *domain.ChangeReport) {
	if report == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.DefaultBox.
		WithTitle(report.Domain.String()).
		WithBoxStyle(pterm.NewStyle(pterm.FgYellow)).
		Println(report.Body)
	pterm.Info.Printf("Summary file for %s has been saved at: %s\n", report.Domain, report.SummaryPath)
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Info.Println(msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Warning.Println(msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Error.Println(msg)
}

// Finish muestra la tabla resumen
func (p *PTermPresenter) Finish(stats RunStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()
	pterm.Println(pterm.LightBlue(SeparatorHeavy))
	pterm.Println()

	header := pterm.DefaultHeader.WithTextStyle(pterm.NewStyle(pterm.FgBlack))
	if stats.Failures() > 0 {
		header = header.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow))
	} else {
		header = header.WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen))
	}
	header.Println(fmt.Sprintf("Monitoring completed in %s", formatDuration(stats.Duration)))
	pterm.Println()

	if len(stats.Results) > 0 {
		tableData := pterm.TableData{summaryHeader}
		for _, r := range stats.Results {
			tableData = append(tableData, summaryRow(r))
		}
		if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(tableData).Render(); err != nil {
			pterm.Error.Println(err.Error())
		}
	}

	if stats.Failures() > 0 {
		pterm.Warning.Printf("%d domain(s) did not complete cleanly\n", stats.Failures())
	}
	if stats.RecordPath != "" {
		pterm.Info.Printf("%s Run record: %s\n", IconStats, stats.RecordPath)
	}
	pterm.Println()
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	return nil
}
