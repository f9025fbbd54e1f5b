package httpx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/testutil"
)

// fakeTool writes an executable shell script standing in for httpx.
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "httpx")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

func TestGetProfile(t *testing.T) {
	testutil.AssertEqual(t, len(GetProfile(ProfilePlain).Flags), 0, "plain has no flags")
	testutil.AssertEqual(t, GetProfile("nope").Description, Profiles[ProfilePlain].Description, "fallback to plain")
	testutil.AssertEqual(t, GetProfile(ProfileBasic).Flags[0], "-sc", "basic flags")
}

func TestHTTPx_buildCommandArgs(t *testing.T) {
	t.Run("plain without captures", func(t *testing.T) {
		h := New(logx.NewSilent(), DefaultConfig())
		args := h.buildCommandArgs(ports.ProbeRequest{InputPath: "diff.txt"})
		testutil.AssertStrings(t, args, []string{"-l", "diff.txt", "-silent", "-nc"}, "args")
	})

	t.Run("captures into the domain staging dir", func(t *testing.T) {
		h := New(logx.NewSilent(), Config{Profile: ProfileBasic, Threads: 25, SystemChrome: true})
		args := h.buildCommandArgs(ports.ProbeRequest{InputPath: "diff.txt", Captures: true, CaptureDir: "out/example.com/httpx_output"})
		testutil.AssertStrings(t, args, []string{
			"-l", "diff.txt", "-silent", "-nc",
			"-sc", "-title", "-server", "-ip",
			"-t", "25",
			"-ss", "-esb",
			"-srd", "out/example.com/httpx_output",
			"-system-chrome",
		}, "args")
	})
}

func TestHTTPx_Probe(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "diff.txt")
	testutil.WriteLines(t, input, "a.example.com", "b.example.com")

	// echo back the hosts listed in the -l file as URLs
	tool := fakeTool(t, `while read h; do echo "https://$h"; done < "$2"`)
	h := New(logx.NewSilent(), Config{ExecPath: tool, Timeout: 5 * time.Second})

	output := filepath.Join(dir, "newsubdomains_httpx.txt")
	n, err := h.Probe(context.Background(), ports.ProbeRequest{InputPath: input, OutputPath: output})

	testutil.AssertNoError(t, err, "probe")
	testutil.AssertEqual(t, n, 2, "lines")
	testutil.AssertStrings(t, testutil.ReadLines(t, output), []string{"https://a.example.com", "https://b.example.com"}, "verbatim output")
}

func TestHTTPx_Probe_FailureKeepsPartialOutput(t *testing.T) {
	dir := t.TempDir()
	h := New(logx.NewSilent(), Config{ExecPath: fakeTool(t, `echo "https://a.example.com"; exit 1`), Timeout: 5 * time.Second})

	output := filepath.Join(dir, "out.txt")
	n, err := h.Probe(context.Background(), ports.ProbeRequest{InputPath: filepath.Join(dir, "diff.txt"), OutputPath: output})

	testutil.AssertTrue(t, errors.Is(err, domain.ErrToolExecution), "execution error")
	testutil.AssertEqual(t, n, 1, "partial line count")
	testutil.AssertTrue(t, testutil.FileExists(output), "output written")
}

func TestHTTPx_Initialize_NotFound(t *testing.T) {
	h := New(logx.NewSilent(), Config{ExecPath: "httpx-does-not-exist-xyz"})
	testutil.AssertTrue(t, errors.Is(h.Initialize(), domain.ErrToolNotFound), "tool not found")
}
