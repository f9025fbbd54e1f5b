// cmd/assetmonitor/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"assetmonitor/internal/adapters/archive"
	"assetmonitor/internal/adapters/notify"
	"assetmonitor/internal/adapters/output"
	"assetmonitor/internal/adapters/statestore"
	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/core/usecases"
	"assetmonitor/internal/platform/config"
	"assetmonitor/internal/platform/httpclient"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/platform/ui"
	"assetmonitor/internal/sources/hackerone"
	"assetmonitor/internal/sources/httpx"
	"assetmonitor/internal/sources/subfinder"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Config: defaults -> YAML -> ENV -> flags
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: assetmonitor -h for help")
		return 2
	}
	if cfg.ShowHelp {
		config.PrintHelp(os.Stdout)
		return 0
	}
	if cfg.PrintVersion {
		config.PrintVersion(os.Stdout, version, commit, date)
		return 0
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrNoTargets) {
			fmt.Fprintln(os.Stderr, "Usage: assetmonitor -d <domain> | -l <file> | -p <program> | -h1 <file>")
		}
		return 2
	}

	// 2. Logger y presenter
	mode := uiMode(cfg.Output)
	logger := logx.New()
	switch {
	case cfg.Output.Verbose:
		logger.SetLevel(logx.LevelDebug)
	case mode == ui.UIModePretty && os.Getenv("ASSETMONITOR_LOG_LEVEL") == "":
		// La UI ya muestra el progreso; los logs solo para avisos
		logger.SetLevel(logx.LevelWarn)
	}

	presenter := ui.New(mode)
	defer presenter.Close()

	if cfg.CredentialsCreated {
		presenter.Info(fmt.Sprintf("Created empty credentials file at %s", cfg.ConfigPath))
	}

	// 3. Contexto con señales
	ctx, cancel := rootContextWithSignals(cfg.Timeout())
	defer cancel()

	// 4. Colaboradores externos
	enumerator := subfinder.New(logger, subfinder.Config{
		ExecPath:   cfg.Tools.SubfinderPath,
		Timeout:    cfg.Tools.SubfinderTimeout,
		Threads:    cfg.Tools.SubfinderThreads,
		AllSources: true,
	})
	prober := httpx.New(logger, httpx.Config{
		ExecPath:     cfg.Tools.HttpxPath,
		Timeout:      cfg.Tools.HttpxTimeout,
		Threads:      cfg.Tools.HttpxThreads,
		Profile:      httpx.ScanProfile(cfg.Tools.HttpxProfile),
		SystemChrome: cfg.Tools.SystemChrome,
	})
	if err := usecases.CheckTools(enumerator, prober); err != nil {
		logger.Err(err, "phase", "tools")
		presenter.Error(err.Error())
		return 1
	}

	// 5. Objetivos: dominios directos + scopes
	resolver, err := buildResolver(cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "scope")
		presenter.Error(err.Error())
		return exitCode(err)
	}
	targets, err := usecases.NewTargetCollector(resolver, logger).Collect(ctx, usecases.TargetRequest{
		Domains:      cfg.Core.Domains,
		Programs:     cfg.Core.Programs,
		RefreshScope: cfg.Core.UpdateScope,
	})
	if err != nil {
		logger.Err(err, "phase", "targets")
		presenter.Error(err.Error())
		return exitCode(err)
	}
	if len(targets) == 0 {
		presenter.Warning("No valid domains to monitor")
		return 1
	}

	// 6. Notificadores
	notifier, names, err := buildNotifier(cfg, logger)
	if err != nil {
		logger.Err(err, "phase", "notify")
		presenter.Error(err.Error())
		return 2
	}

	// 7. Pipeline por dominio y pool
	pipeline := usecases.NewDomainPipeline(usecases.DomainPipelineOptions{
		Store:      statestore.New(cfg.Core.OutputDir, logger),
		Enumerator: enumerator,
		Prober:     prober,
		Archiver:   archive.New(logger),
		Notifier:   notifier,
		Captures:   cfg.Core.Screenshots,
		Logger:     logger,
	})
	orch := usecases.NewOrchestrator(usecases.OrchestratorOptions{
		Pipeline: pipeline,
		Workers:  cfg.Core.Workers,
		Logger:   logger,
		OnResult: func(r domain.DomainResult) {
			presenter.DomainFinished(r)
			if r.Report != nil {
				presenter.Report(r.Report)
			}
		},
	})

	presenter.Start(ui.RunInfo{
		Version:   version,
		Domains:   len(targets),
		Programs:  cfg.Core.Programs,
		Workers:   cfg.Core.Workers,
		OutputDir: cfg.Core.OutputDir,
		Captures:  cfg.Core.Screenshots,
		Notifiers: names,
	})

	start := time.Now()
	results := orch.RunAll(ctx, targets)
	finished := time.Now()

	// 8. Registro de la ejecución y resumen
	record := output.NewRunRecord(results, start, finished, cfg.Core.Workers, cfg.Core.Programs)
	recordPath, err := output.WriteRunRecord(cfg.Core.OutputDir, record)
	if err != nil {
		logger.Err(err, "phase", "output")
		presenter.Warning(fmt.Sprintf("Run record not written: %v", err))
	}

	// En modo quiet el registro va también a stdout, para encadenar con jq
	if cfg.Output.Quiet {
		if err := output.WriteRunRecordStdout(record, false); err != nil {
			logger.Err(err, "phase", "output")
		}
	}

	stats := ui.RunStats{Results: results, Duration: finished.Sub(start), RecordPath: recordPath}
	presenter.Finish(stats)

	logger.Info("assetmonitor finished",
		"domains", len(results),
		"failures", stats.Failures(),
		"elapsed_ms", stats.Duration.Milliseconds(),
	)

	if stats.Failures() > 0 {
		return 1
	}
	return 0
}

// buildResolver crea el resolver de scopes. Sin credenciales el resolver solo
// sirve scopes cacheados.
func buildResolver(cfg config.Config, logger logx.Logger) (ports.ScopeResolver, error) {
	var source ports.ScopeSource
	if cfg.Credentials.HasHackerOne() {
		httpCfg := httpclient.DefaultConfig()
		httpCfg.Timeout = cfg.Network.ScopeTimeout
		httpCfg.MaxRetries = cfg.Network.Retries
		httpCfg.ProxyURL = cfg.Network.ProxyURL

		client, err := hackerone.NewClient(hackerone.ClientConfig{
			Username: cfg.Credentials.HackerOneUsername,
			Token:    cfg.Credentials.HackerOneAPI,
			HTTP:     httpCfg,
		}, logger)
		if err != nil {
			return nil, err
		}
		source = client
	}
	return hackerone.NewResolver(source, cfg.Core.OutputDir, logger), nil
}

// buildNotifier devuelve nil cuando no hay canales activos.
func buildNotifier(cfg config.Config, logger logx.Logger) (ports.Notifier, []string, error) {
	var channels []ports.Notifier
	var names []string

	if cfg.Notify.Discord {
		d, err := notify.NewDiscord(cfg.Credentials.DiscordWebhook, logger)
		if err != nil {
			return nil, nil, err
		}
		channels = append(channels, d)
		names = append(names, d.Name())
	}
	if cfg.Notify.Slack {
		s, err := notify.NewSlack(cfg.Credentials.SlackWebhook, logger)
		if err != nil {
			return nil, nil, err
		}
		channels = append(channels, s)
		names = append(names, s.Name())
	}

	switch len(channels) {
	case 0:
		return nil, nil, nil
	case 1:
		return channels[0], names, nil
	default:
		return notify.NewMulti(channels...), names, nil
	}
}

// exitCode: 2 para configuración o credenciales, 1 para el resto.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrCredential) {
		return 2
	}
	return 1
}

func uiMode(o config.Output) ui.UIMode {
	switch {
	case o.Quiet:
		return ui.UIModeQuiet
	case o.Plain:
		return ui.UIModePlain
	default:
		return ui.UIModePretty
	}
}

// rootContextWithSignals crea el contexto raíz, cancelado por SIGINT/SIGTERM
// o al vencer timeout (0 = sin timeout).
func rootContextWithSignals(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}
