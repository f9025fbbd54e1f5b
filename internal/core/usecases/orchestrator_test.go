package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/testutil"
)

// perDomainHosts enumera <prefix>.<dominio>; en la segunda llamada añade "new".
func perDomainHosts(d domain.Domain, call int) ([]string, error) {
	hosts := []string{"www." + d.String(), "api." + d.String()}
	if call > 1 {
		hosts = append(hosts, "new."+d.String())
	}
	return hosts, nil
}

func TestOrchestrator_IsolatesPanickingDomain(t *testing.T) {
	f := newPipelineFixture(t, newFakeEnumerator(perDomainHosts), &fakeProber{alive: true}, false)

	orch := NewOrchestrator(OrchestratorOptions{
		Pipeline: panickingRunner{target: "x.com", next: f.pipeline},
		Workers:  2,
		Logger:   logx.NewSilent(),
	})

	results := orch.RunAll(context.Background(), []domain.Domain{"x.com", "y.com", "z.com"})

	testutil.AssertEqual(t, len(results), 3, "one result per domain")
	testutil.AssertEqual(t, results[0].Domain, domain.Domain("x.com"), "order preserved")
	testutil.AssertEqual(t, results[0].Status, domain.StatusFailed, "panicking domain failed")
	testutil.AssertError(t, results[0].Err, "panic recorded")

	for _, r := range results[1:] {
		testutil.AssertEqual(t, r.Status, domain.StatusBaselineCreated, fmt.Sprintf("%s status", r.Domain))
		paths := f.store.Paths(r.Domain)
		testutil.AssertTrue(t, testutil.FileExists(paths.Baseline), fmt.Sprintf("%s baseline", r.Domain))
		testutil.AssertTrue(t, testutil.FileExists(paths.Candidate), fmt.Sprintf("%s candidate", r.Domain))
	}
}

func TestOrchestrator_ConcurrentDomainsOwnTheirState(t *testing.T) {
	f := newPipelineFixture(t, newFakeEnumerator(perDomainHosts), &fakeProber{alive: true}, false)

	var (
		mu       sync.Mutex
		reported []domain.DomainResult
	)
	orch := NewOrchestrator(OrchestratorOptions{
		Pipeline: f.pipeline,
		Workers:  4,
		Logger:   logx.NewSilent(),
		OnResult: func(r domain.DomainResult) {
			mu.Lock()
			reported = append(reported, r)
			mu.Unlock()
		},
	})

	var domains []domain.Domain
	for i := 0; i < 12; i++ {
		domains = append(domains, domain.Domain(fmt.Sprintf("site%d.com", i)))
	}

	ctx := context.Background()
	orch.RunAll(ctx, domains)
	results := orch.RunAll(ctx, domains)

	testutil.AssertEqual(t, len(reported), 24, "callback per domain and run")
	for _, r := range results {
		testutil.AssertEqual(t, r.Status, domain.StatusReported, fmt.Sprintf("%s status", r.Domain))

		paths := f.store.Paths(r.Domain)
		want := []string{"www." + r.Domain.String(), "api." + r.Domain.String(), "new." + r.Domain.String()}
		testutil.AssertStrings(t, testutil.ReadLines(t, paths.Baseline), want, fmt.Sprintf("%s baseline only has its own hosts", r.Domain))
		testutil.AssertStrings(t, testutil.ReadLines(t, paths.Delta), []string{"new." + r.Domain.String()}, fmt.Sprintf("%s delta", r.Domain))
	}
	testutil.AssertEqual(t, f.notifier.count(), 12, "one report per domain")
}

func TestOrchestrator_CanceledContextSkipsDomains(t *testing.T) {
	f := newPipelineFixture(t, newFakeEnumerator(perDomainHosts), &fakeProber{}, false)
	orch := NewOrchestrator(OrchestratorOptions{Pipeline: f.pipeline, Logger: logx.NewSilent()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := orch.RunAll(ctx, []domain.Domain{"a.com", "b.com"})
	for _, r := range results {
		testutil.AssertEqual(t, r.Status, domain.StatusSkipped, "skipped")
		testutil.AssertTrue(t, errors.Is(r.Err, context.Canceled), "cancellation cause")
	}
}

func TestNewOrchestrator_DefaultWorkers(t *testing.T) {
	orch := NewOrchestrator(OrchestratorOptions{})
	testutil.AssertEqual(t, orch.workers, 5, "default workers")
}
