// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
)

// fakeEnumerator escribe en outPath las líneas que devuelve hosts.
type fakeEnumerator struct {
	mu    sync.Mutex
	calls map[domain.Domain]int
	// hosts recibe el dominio y el número de llamada (desde 1)
	hosts func(d domain.Domain, call int) ([]string, error)
}

func newFakeEnumerator(hosts func(d domain.Domain, call int) ([]string, error)) *fakeEnumerator {
	return &fakeEnumerator{calls: make(map[domain.Domain]int), hosts: hosts}
}

func (f *fakeEnumerator) Name() string      { return "fake-enum" }
func (f *fakeEnumerator) Initialize() error { return nil }

func (f *fakeEnumerator) Enumerate(ctx context.Context, d domain.Domain, outPath string) error {
	f.mu.Lock()
	f.calls[d]++
	call := f.calls[d]
	f.mu.Unlock()

	lines, err := f.hosts(d, call)
	if len(lines) > 0 || err == nil {
		content := ""
		if len(lines) > 0 {
			content = strings.Join(lines, "\n") + "\n"
		}
		if werr := os.WriteFile(outPath, []byte(content), 0o644); werr != nil {
			return werr
		}
	}
	return err
}

// fixedHosts enumera siempre lo indicado por llamada; la última se repite.
func fixedHosts(runs ...[]string) func(domain.Domain, int) ([]string, error) {
	return func(_ domain.Domain, call int) ([]string, error) {
		if call > len(runs) {
			call = len(runs)
		}
		return runs[call-1], nil
	}
}

// fakeProber copia el delta como URLs y opcionalmente crea el directorio de capturas.
type fakeProber struct {
	alive         bool
	createCapture bool
	err           error
	requests      []ports.ProbeRequest
	mu            sync.Mutex
}

func (f *fakeProber) Name() string      { return "fake-probe" }
func (f *fakeProber) Initialize() error { return nil }

func (f *fakeProber) Probe(ctx context.Context, req ports.ProbeRequest) (int, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	var out []string
	if f.alive {
		data, err := os.ReadFile(req.InputPath)
		if err != nil {
			return 0, err
		}
		for _, h := range strings.Fields(string(data)) {
			out = append(out, "https://"+h)
		}
	}

	content := ""
	if len(out) > 0 {
		content = strings.Join(out, "\n") + "\n"
	}
	if err := os.WriteFile(req.OutputPath, []byte(content), 0o644); err != nil {
		return 0, err
	}

	if req.Captures && f.createCapture {
		shot := filepath.Join(req.CaptureDir, "screenshot")
		if err := os.MkdirAll(shot, 0o755); err != nil {
			return 0, err
		}
		if err := os.WriteFile(filepath.Join(shot, "index.png"), []byte("png"), 0o644); err != nil {
			return 0, err
		}
	}
	return len(out), f.err
}

// fakeNotifier registra los mensajes recibidos.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []ports.Message
	err      error
}

func (f *fakeNotifier) Name() string { return "fake-notify" }

func (f *fakeNotifier) Notify(ctx context.Context, msg ports.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return f.err
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// panickingRunner hace panic para un dominio y delega el resto.
type panickingRunner struct {
	target domain.Domain
	next   DomainRunner
}

func (p panickingRunner) Run(ctx context.Context, d domain.Domain) domain.DomainResult {
	if d == p.target {
		panic("collaborator exploded")
	}
	return p.next.Run(ctx, d)
}
