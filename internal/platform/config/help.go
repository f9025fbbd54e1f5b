// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
assetmonitor - continuous subdomain monitoring

USAGE:
  assetmonitor -d <domain> [options]
  assetmonitor -l domains.txt [options]
  assetmonitor -p <program> | -h1 programs.txt [options]

TARGETS:
  -d, --domain string            Single domain to monitor
  -l, --list string              File with domains, one per line
  -p, -h1p, --hackeroneprogram   Single HackerOne program handle
  -h1, --hackerone-list string   File with HackerOne program handles
  -u, --update-scope             Refresh cached HackerOne scopes

RUN:
  -w, --workers int              Domains processed concurrently (default: 5)
  -o, --output string            State root directory (default: "assetmonitor")
  -ss, --screenshots             Capture screenshots of newly discovered live hosts
  --timeout int                  Global run timeout in seconds, 0=no timeout (default: 0)
  --httpx-profile string         httpx output: plain, basic, tech (default: "plain")
  --proxy string                 HTTP(S) proxy for scope and webhook requests

NOTIFY:
  -dc, --discord                 Send every change report to the Discord webhook
  --slack                        Send every change report to the Slack webhook

OUTPUT:
  --config string                Credentials file (default: ~/.config/assetmonitor/config.yaml)
  -q, --quiet                    No terminal UI, run record as JSON on stdout
  -v, --verbose                  Debug logging
  --plain                        Plain line-oriented output (no colors)

INFO:
  --version                      Print version information and exit
  -h, --help                     Show this help message

EXAMPLES:
  First run creates the baseline, later runs report new subdomains:
    assetmonitor -d example.com

  Every in-scope wildcard of a program, with screenshots and Discord:
    assetmonitor -p security -ss --discord

  Refresh cached scopes and run with 10 workers:
    assetmonitor -h1 programs.txt -u -w 10

CREDENTIALS FILE:
  Created empty on first run:

    hackerone-username: ""
    hackerone-api: ""
    discord-webhook: ""
    slack-webhook: ""

ENVIRONMENT VARIABLES:
  Most options can be set with the ASSETMONITOR_ prefix:

  ASSETMONITOR_DOMAIN=example.com       Single domain
  ASSETMONITOR_WORKERS=8                Number of workers
  ASSETMONITOR_OUTPUT_DIR=/path         State root
  ASSETMONITOR_HACKERONE_USERNAME=...   Overrides hackerone-username
  ASSETMONITOR_HACKERONE_API=...        Overrides hackerone-api
  ASSETMONITOR_DISCORD_WEBHOOK=...      Overrides discord-webhook
  ASSETMONITOR_SLACK_WEBHOOK=...        Overrides slack-webhook
  ASSETMONITOR_SUBFINDER_PATH=...       subfinder binary
  ASSETMONITOR_HTTPX_PATH=...           httpx binary
  ASSETMONITOR_SUBFINDER_TIMEOUT=10m    subfinder invocation timeout
  ASSETMONITOR_HTTPX_TIMEOUT=10m        httpx invocation timeout
  ASSETMONITOR_LOG_LEVEL=debug          Log level

  Note: CLI flags override environment variables, which override the credentials file.

STATE LAYOUT:
  <output>/<domain>/subdomains.txt               baseline (grows only)
  <output>/<domain>/newsubdomains.txt            latest enumeration
  <output>/<domain>/diff.txt                     new hosts of the last run
  <output>/<domain>/newsubdomains_httpx.txt      live new hosts
  <output>/<domain>/summary.txt                  last change report
  <output>/<domain>/<domain>_screenshots.tar.gz  captures (-ss)
  <output>/runs/run_<timestamp>.json             run record
`

// PrintHelp writes the help message to w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "assetmonitor %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
