// internal/platform/config/config.go
package config

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"assetmonitor/internal/core/domain"
)

// ErrNoTargets indica que no se pasó ningún dominio ni programa.
var ErrNoTargets = errors.New("no domains or programs supplied (use -d, -l, -p or -h1)")

type Config struct {
	Core        Core
	Notify      Notify
	Credentials Credentials
	Tools       Tools
	Network     Network
	Output      Output

	// ConfigPath es el fichero YAML de credenciales.
	ConfigPath string
	// CredentialsCreated se activa cuando Load generó el fichero vacío.
	CredentialsCreated bool

	PrintVersion bool
	ShowHelp     bool
}

type Core struct {
	Domain      string // -d
	DomainList  string // -l
	Program     string // -p
	ProgramList string // -h1

	// Domains y Programs son la unión deduplicada de flag + fichero.
	Domains  []string
	Programs []string

	UpdateScope bool
	Workers     int
	OutputDir   string
	Screenshots bool
	TimeoutS    int // segundos (0 = sin timeout)
}

type Notify struct {
	Discord bool
	Slack   bool
}

// Credentials se leen del fichero YAML y pueden sobreescribirse por ENV.
type Credentials struct {
	HackerOneUsername string `yaml:"hackerone-username"`
	HackerOneAPI      string `yaml:"hackerone-api"`
	DiscordWebhook    string `yaml:"discord-webhook"`
	SlackWebhook      string `yaml:"slack-webhook"`
}

// HasHackerOne indica si hay credenciales completas para la API de scope.
func (c Credentials) HasHackerOne() bool {
	return c.HackerOneUsername != "" && c.HackerOneAPI != ""
}

type Tools struct {
	SubfinderPath    string
	SubfinderThreads int
	SubfinderTimeout time.Duration

	HttpxPath    string
	HttpxThreads int
	HttpxTimeout time.Duration
	HttpxProfile string
	SystemChrome bool
}

type Network struct {
	ScopeTimeout time.Duration
	Retries      int
	ProxyURL     string
}

type Output struct {
	Quiet   bool
	Verbose bool
	Plain   bool
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: Core{
			Workers:   5,
			OutputDir: "assetmonitor",
		},
		Tools: Tools{
			SubfinderPath:    "subfinder",
			SubfinderTimeout: 10 * time.Minute,
			HttpxPath:        "httpx",
			HttpxTimeout:     10 * time.Minute,
			HttpxProfile:     "plain",
		},
		Network: Network{
			ScopeTimeout: 15 * time.Second,
			Retries:      2,
		},
		ConfigPath: defaultConfigPath(),
	}
}

// Load construye la configuración: defaults -> fichero YAML -> ENV -> flags.
// args no incluye el nombre del programa (os.Args[1:]).
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()
	args = rewriteLegacyArgs(args)

	// Primera pasada: solo para conocer --config, --help y --version
	probe := DefaultConfig()
	if v := getenv("ASSETMONITOR_CONFIG", ""); v != "" {
		probe.ConfigPath = v
	}
	if err := newFlagSet(&probe).Parse(args); err != nil {
		return cfg, err
	}
	if probe.ShowHelp || probe.PrintVersion {
		return probe, nil
	}
	cfg.ConfigPath = probe.ConfigPath

	created, err := loadCredentialsFile(cfg.ConfigPath, &cfg.Credentials)
	if err != nil {
		return cfg, err
	}
	cfg.CredentialsCreated = created

	loadFromEnv(&cfg)

	// Los flags tienen prioridad sobre ENV y fichero
	if err := newFlagSet(&cfg).Parse(args); err != nil {
		return cfg, err
	}

	normalize(&cfg)

	if err := resolveTargets(&cfg.Core); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate comprueba que la configuración permite arrancar una ejecución.
func (c Config) Validate() error {
	if c.Notify.Discord && c.Credentials.DiscordWebhook == "" {
		return domain.NewOpError(domain.ErrCredential, "validate", "discord",
			fmt.Errorf("discord-webhook is empty (set it in %s or ASSETMONITOR_DISCORD_WEBHOOK)", c.ConfigPath))
	}
	if c.Notify.Slack && c.Credentials.SlackWebhook == "" {
		return domain.NewOpError(domain.ErrCredential, "validate", "slack",
			fmt.Errorf("slack-webhook is empty (set it in %s or ASSETMONITOR_SLACK_WEBHOOK)", c.ConfigPath))
	}
	if len(c.Core.Domains) == 0 && len(c.Core.Programs) == 0 {
		return ErrNoTargets
	}
	return nil
}

// newFlagSet registra los flags sobre cfg. Los valores actuales de cfg son
// los defaults de cada flag.
func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("assetmonitor", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	// Targets
	fs.StringVarP(&cfg.Core.Domain, "domain", "d", cfg.Core.Domain, "Single domain to monitor")
	fs.StringVarP(&cfg.Core.DomainList, "list", "l", cfg.Core.DomainList, "File with domains, one per line")
	fs.StringVarP(&cfg.Core.Program, "hackeroneprogram", "p", cfg.Core.Program, "Single HackerOne program handle")
	fs.StringVar(&cfg.Core.ProgramList, "hackerone-list", cfg.Core.ProgramList, "File with HackerOne program handles (-h1)")
	fs.BoolVarP(&cfg.Core.UpdateScope, "update-scope", "u", cfg.Core.UpdateScope, "Refresh cached HackerOne scopes")

	// Run
	fs.IntVarP(&cfg.Core.Workers, "workers", "w", cfg.Core.Workers, "Domains processed concurrently")
	fs.StringVarP(&cfg.Core.OutputDir, "output", "o", cfg.Core.OutputDir, "State root directory")
	fs.BoolVar(&cfg.Core.Screenshots, "screenshots", cfg.Core.Screenshots, "Capture screenshots of live hosts (-ss)")
	fs.IntVar(&cfg.Core.TimeoutS, "timeout", cfg.Core.TimeoutS, "Global run timeout in seconds (0 = none)")

	// Notify
	fs.BoolVar(&cfg.Notify.Discord, "discord", cfg.Notify.Discord, "Send reports to the Discord webhook")
	fs.BoolVar(&cfg.Notify.Slack, "slack", cfg.Notify.Slack, "Send reports to the Slack webhook")

	// Tools / network
	fs.StringVar(&cfg.Tools.HttpxProfile, "httpx-profile", cfg.Tools.HttpxProfile, "httpx output profile: plain, basic, tech")
	fs.StringVar(&cfg.Network.ProxyURL, "proxy", cfg.Network.ProxyURL, "HTTP(S) proxy for scope and webhook requests")

	// Output
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Credentials file")
	fs.BoolVarP(&cfg.Output.Quiet, "quiet", "q", cfg.Output.Quiet, "No terminal UI")
	fs.BoolVarP(&cfg.Output.Verbose, "verbose", "v", cfg.Output.Verbose, "Debug logging")
	fs.BoolVar(&cfg.Output.Plain, "plain", cfg.Output.Plain, "Plain line-oriented output")
	fs.BoolVar(&cfg.PrintVersion, "version", cfg.PrintVersion, "Print version and exit")
	fs.BoolVarP(&cfg.ShowHelp, "help", "h", cfg.ShowHelp, "Show help")

	return fs
}

// legacyArgs mapea los flags de un guion con varias letras a su forma larga.
var legacyArgs = map[string]string{
	"-ss":  "--screenshots",
	"-h1":  "--hackerone-list",
	"-h1p": "--hackeroneprogram",
	"-dc":  "--discord",
}

func rewriteLegacyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		name, value, hasValue := strings.Cut(a, "=")
		if long, ok := legacyArgs[name]; ok {
			if hasValue {
				a = long + "=" + value
			} else {
				a = long
			}
		}
		out = append(out, a)
	}
	return out
}

// loadCredentialsFile lee el YAML de credenciales en creds. Si no existe lo
// crea con valores vacíos; un fallo al crearlo no impide la ejecución.
func loadCredentialsFile(path string, creds *Credentials) (created bool, err error) {
	if path == "" {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return bootstrapCredentials(path) == nil, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config %s: %w", path, err)
	}

	var file Credentials
	if err := yaml.Unmarshal(data, &file); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	mergeCredentials(creds, file)
	return false, nil
}

func bootstrapCredentials(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(Credentials{})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeCredentials(dst *Credentials, src Credentials) {
	if v := strings.TrimSpace(src.HackerOneUsername); v != "" {
		dst.HackerOneUsername = v
	}
	if v := strings.TrimSpace(src.HackerOneAPI); v != "" {
		dst.HackerOneAPI = v
	}
	if v := strings.TrimSpace(src.DiscordWebhook); v != "" {
		dst.DiscordWebhook = v
	}
	if v := strings.TrimSpace(src.SlackWebhook); v != "" {
		dst.SlackWebhook = v
	}
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv("ASSETMONITOR_DOMAIN", ""); v != "" {
		cfg.Core.Domain = v
	}
	if v := getenv("ASSETMONITOR_DOMAIN_LIST", ""); v != "" {
		cfg.Core.DomainList = v
	}
	if v := getenv("ASSETMONITOR_PROGRAM", ""); v != "" {
		cfg.Core.Program = v
	}
	if v := getenv("ASSETMONITOR_PROGRAM_LIST", ""); v != "" {
		cfg.Core.ProgramList = v
	}
	if v := getenv("ASSETMONITOR_UPDATE_SCOPE", ""); v != "" {
		cfg.Core.UpdateScope = parseBool(v)
	}
	if v := getenv("ASSETMONITOR_WORKERS", ""); v != "" {
		cfg.Core.Workers = parseInt(v, cfg.Core.Workers)
	}
	if v := getenv("ASSETMONITOR_OUTPUT_DIR", ""); v != "" {
		cfg.Core.OutputDir = v
	}
	if v := getenv("ASSETMONITOR_SCREENSHOTS", ""); v != "" {
		cfg.Core.Screenshots = parseBool(v)
	}
	if v := getenv("ASSETMONITOR_TIMEOUT", ""); v != "" {
		cfg.Core.TimeoutS = parseInt(v, cfg.Core.TimeoutS)
	}

	// Credentials (ENV > fichero)
	mergeCredentials(&cfg.Credentials, Credentials{
		HackerOneUsername: getenv("ASSETMONITOR_HACKERONE_USERNAME", ""),
		HackerOneAPI:      getenv("ASSETMONITOR_HACKERONE_API", ""),
		DiscordWebhook:    getenv("ASSETMONITOR_DISCORD_WEBHOOK", ""),
		SlackWebhook:      getenv("ASSETMONITOR_SLACK_WEBHOOK", ""),
	})

	// Tools
	if v := getenv("ASSETMONITOR_SUBFINDER_PATH", ""); v != "" {
		cfg.Tools.SubfinderPath = v
	}
	if v := getenv("ASSETMONITOR_SUBFINDER_THREADS", ""); v != "" {
		cfg.Tools.SubfinderThreads = parseInt(v, cfg.Tools.SubfinderThreads)
	}
	if v := getenv("ASSETMONITOR_SUBFINDER_TIMEOUT", ""); v != "" {
		cfg.Tools.SubfinderTimeout = parseSeconds(v, cfg.Tools.SubfinderTimeout)
	}
	if v := getenv("ASSETMONITOR_HTTPX_PATH", ""); v != "" {
		cfg.Tools.HttpxPath = v
	}
	if v := getenv("ASSETMONITOR_HTTPX_THREADS", ""); v != "" {
		cfg.Tools.HttpxThreads = parseInt(v, cfg.Tools.HttpxThreads)
	}
	if v := getenv("ASSETMONITOR_HTTPX_TIMEOUT", ""); v != "" {
		cfg.Tools.HttpxTimeout = parseSeconds(v, cfg.Tools.HttpxTimeout)
	}
	if v := getenv("ASSETMONITOR_HTTPX_PROFILE", ""); v != "" {
		cfg.Tools.HttpxProfile = v
	}
	if v := getenv("ASSETMONITOR_SYSTEM_CHROME", ""); v != "" {
		cfg.Tools.SystemChrome = parseBool(v)
	}

	// Network
	if v := getenv("ASSETMONITOR_SCOPE_TIMEOUT", ""); v != "" {
		cfg.Network.ScopeTimeout = parseSeconds(v, cfg.Network.ScopeTimeout)
	}
	if v := getenv("ASSETMONITOR_RETRIES", ""); v != "" {
		cfg.Network.Retries = parseInt(v, cfg.Network.Retries)
	}
	if v := getenv("ASSETMONITOR_PROXY_URL", ""); v != "" {
		cfg.Network.ProxyURL = v
	}

	// Output
	if v := getenv("ASSETMONITOR_QUIET", ""); v != "" {
		cfg.Output.Quiet = parseBool(v)
	}
	if v := getenv("ASSETMONITOR_VERBOSE", ""); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}
	if v := getenv("ASSETMONITOR_PLAIN", ""); v != "" {
		cfg.Output.Plain = parseBool(v)
	}
}

func normalize(c *Config) {
	c.Core.Domain = strings.TrimSpace(c.Core.Domain)
	c.Core.Program = strings.TrimSpace(c.Core.Program)
	if c.Core.Workers < 1 {
		c.Core.Workers = 1
	}
	if c.Core.TimeoutS < 0 {
		c.Core.TimeoutS = 0
	}
	if c.Core.OutputDir == "" {
		c.Core.OutputDir = "assetmonitor"
	}
	if c.Network.Retries < 0 {
		c.Network.Retries = 0
	}
	if c.Network.ScopeTimeout <= 0 {
		c.Network.ScopeTimeout = 15 * time.Second
	}
	c.Tools.HttpxProfile = strings.ToLower(strings.TrimSpace(c.Tools.HttpxProfile))
}

// resolveTargets junta los valores sueltos con los ficheros de lista.
func resolveTargets(c *Core) error {
	domains := []string{c.Domain}
	if c.DomainList != "" {
		lines, err := ReadList(c.DomainList)
		if err != nil {
			return err
		}
		domains = append(domains, lines...)
	}
	c.Domains = DedupeFold(domains)

	programs := []string{c.Program}
	if c.ProgramList != "" {
		lines, err := ReadList(c.ProgramList)
		if err != nil {
			return err
		}
		programs = append(programs, lines...)
	}
	c.Programs = DedupeFold(programs)
	return nil
}

// ReadList lee un fichero de una entrada por línea. Las líneas vacías se
// ignoran y las repetidas (sin distinguir mayúsculas) se quitan.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list %s: %w", path, err)
	}
	return DedupeFold(lines), nil
}

// DedupeFold recorta, quita vacíos y deduplica sin distinguir mayúsculas.
// Conserva el orden y la primera grafía de cada entrada.
func DedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// ToJSON serializa la configuración sin credenciales (útil para debugging).
func (c Config) ToJSON() (string, error) {
	c.Credentials = c.Credentials.redacted()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c Credentials) redacted() Credentials {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "***"
	}
	return Credentials{
		HackerOneUsername: c.HackerOneUsername,
		HackerOneAPI:      mask(c.HackerOneAPI),
		DiscordWebhook:    mask(c.DiscordWebhook),
		SlackWebhook:      mask(c.SlackWebhook),
	}
}

// Timeout devuelve el timeout global como time.Duration (0 = sin timeout).
func (c Config) Timeout() time.Duration {
	if c.Core.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.Core.TimeoutS) * time.Second
}

// Helpers

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "assetmonitor", "config.yaml")
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// parseSeconds acepta "90" (segundos) o una duración de Go ("2m").
func parseSeconds(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	return def
}
