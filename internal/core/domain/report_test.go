// internal/core/domain/report_test.go
package domain

import (
	"testing"

	"assetmonitor/internal/testutil"
)

func TestRenderReport(t *testing.T) {
	t.Run("with live hosts", func(t *testing.T) {
		body := RenderReport("example.com", []string{"a.example.com", "b.example.com"}, []string{"https://a.example.com"})

		want := "example.com - change in assets ⚠️\n\nSubfinder:\na.example.com\nb.example.com\n\nHTTPX:\nhttps://a.example.com"
		testutil.AssertEqual(t, body, want, "body")
	})

	t.Run("empty probe output", func(t *testing.T) {
		body := RenderReport("example.com", []string{"a.example.com"}, nil)
		testutil.AssertContains(t, body, "HTTPX:\n"+NoLiveHostsMarker, "marker")
	})
}

func TestDomainStatus_IsFailure(t *testing.T) {
	testutil.AssertTrue(t, StatusDegraded.IsFailure(), "degraded")
	testutil.AssertTrue(t, StatusFailed.IsFailure(), "failed")
	testutil.AssertTrue(t, StatusSkipped.IsFailure(), "skipped")
	testutil.AssertFalse(t, StatusReported.IsFailure(), "reported")
	testutil.AssertFalse(t, StatusEnumerationFailed.IsFailure(), "enumeration failure is no new data")
	testutil.AssertEqual(t, ProbeResult{Lines: []string{"x", "y"}}.LiveHosts(), 2, "live hosts")
}
