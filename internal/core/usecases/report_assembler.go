// internal/core/usecases/report_assembler.go
package usecases

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

// ReportAssembler compone, persiste y envía el informe de cambios.
type ReportAssembler struct {
	store    ports.StateStore
	archiver ports.Archiver
	notifier ports.Notifier // nil = sin notificaciones
	logger   logx.Logger
}

// NewReportAssembler crea el assembler. notifier puede ser nil.
func NewReportAssembler(store ports.StateStore, archiver ports.Archiver, notifier ports.Notifier, logger logx.Logger) *ReportAssembler {
	return &ReportAssembler{
		store:    store,
		archiver: archiver,
		notifier: notifier,
		logger:   logger.With("component", "report"),
	}
}

// Assemble construye el informe y lo escribe en paths.Summary.
//
// Si se pidieron capturas y hay hosts vivos, mueve el directorio de capturas
// del dominio bajo su estado y lo archiva. Si el directorio no existe o el
// empaquetado falla, el informe se escribe igualmente y se retorna junto a un
// error de degradación. Un error sin informe significa que no se pudo
// escribir el summary.
func (a *ReportAssembler) Assemble(diff domain.DiffResult, probe domain.ProbeResult, paths domain.StatePaths) (*domain.ChangeReport, error) {
	d := diff.Domain
	report := &domain.ChangeReport{
		Domain:      d,
		Delta:       diff.NewEntries,
		ProbeLines:  probe.Lines,
		Body:        domain.RenderReport(d, diff.NewEntries, probe.Lines),
		SummaryPath: paths.Summary,
	}

	var degraded error
	if probe.CapturesRequested && probe.LiveHosts() > 0 {
		archivePath, err := a.packageCaptures(d, paths)
		if err != nil {
			degraded = err
			a.logger.Warn("captures not packaged", "domain", d, "error", err.Error())
		}
		report.ArchivePath = archivePath
	}

	if err := a.store.WriteText(paths.Summary, report.Body); err != nil {
		return nil, err
	}

	a.logger.Info("summary saved", "domain", d, "path", paths.Summary)
	return report, degraded
}

// Dispatch envía el informe al notifier. Un fallo no es fatal.
func (a *ReportAssembler) Dispatch(ctx context.Context, report *domain.ChangeReport) error {
	if a.notifier == nil || report == nil {
		return nil
	}

	msg := ports.Message{Domain: report.Domain, Text: report.Body}
	if report.ArchivePath != "" {
		msg.Attachments = append(msg.Attachments, ports.Attachment{
			Name: filepath.Base(report.ArchivePath),
			Path: report.ArchivePath,
		})
	}

	if err := a.notifier.Notify(ctx, msg); err != nil {
		if !errors.Is(err, domain.ErrNotification) {
			err = domain.NewOpError(domain.ErrNotification, "notify", report.Domain.String(), err)
		}
		return err
	}

	a.logger.Debug("report dispatched", "domain", report.Domain, "channel", a.notifier.Name())
	return nil
}

func (a *ReportAssembler) packageCaptures(d domain.Domain, paths domain.StatePaths) (string, error) {
	if !a.store.Exists(paths.CaptureStaging) {
		return "", domain.NewOpError(domain.ErrCaptureMissing, "package-captures", d.String(),
			fmt.Errorf("capture directory %s not found", paths.CaptureStaging))
	}

	if err := a.store.MoveDir(paths.CaptureStaging, paths.CaptureDir); err != nil {
		return "", err
	}

	files, err := a.archiver.Archive(paths.CaptureDir, paths.CaptureArchive)
	if err != nil {
		return "", err
	}

	a.logger.Info("captures archived", "domain", d, "files", files, "archive", paths.CaptureArchive)
	return paths.CaptureArchive, nil
}
