package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/testutil"
)

type capturedPost struct {
	content string
	files   map[string]string // filename -> body
}

func discordServer(t *testing.T, status int) (*httptest.Server, *[]capturedPost) {
	t.Helper()
	var (
		mu    sync.Mutex
		posts []capturedPost
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		post := capturedPost{content: r.FormValue("content"), files: map[string]string{}}
		for _, headers := range r.MultipartForm.File {
			for _, fh := range headers {
				f, _ := fh.Open()
				data, _ := io.ReadAll(f)
				f.Close()
				post.files[fh.Filename] = string(data)
			}
		}
		mu.Lock()
		posts = append(posts, post)
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &posts
}

func TestNewDiscord_RequiresWebhook(t *testing.T) {
	_, err := NewDiscord("", logx.NewSilent())
	testutil.AssertTrue(t, errors.Is(err, domain.ErrCredential), "credential error")
}

func TestDiscord_Notify(t *testing.T) {
	server, posts := discordServer(t, http.StatusNoContent)

	archive := filepath.Join(t.TempDir(), "example.com_screenshots.tar.gz")
	testutil.AssertNoError(t, os.WriteFile(archive, []byte("tarball"), 0o644), "seed archive")

	d, err := NewDiscord(server.URL+"/api/webhooks/1/token", logx.NewSilent())
	testutil.AssertNoError(t, err, "new discord")

	err = d.Notify(context.Background(), ports.Message{
		Domain:      "example.com",
		Text:        "example.com - change in assets",
		Attachments: []ports.Attachment{{Path: archive}},
	})
	testutil.AssertNoError(t, err, "notify")

	testutil.AssertEqual(t, len(*posts), 1, "one post")
	post := (*posts)[0]
	testutil.AssertEqual(t, post.content, "example.com - change in assets", "content")
	testutil.AssertEqual(t, post.files["example.com_screenshots.tar.gz"], "tarball", "archive attached")
}

func TestDiscord_Notify_TruncatesLongReports(t *testing.T) {
	server, posts := discordServer(t, http.StatusOK)
	d, _ := NewDiscord(server.URL, logx.NewSilent())

	long := strings.Repeat("sub.example.com\n", 300)
	testutil.AssertNoError(t, d.Notify(context.Background(), ports.Message{Domain: "example.com", Text: long}), "notify")

	post := (*posts)[0]
	testutil.AssertTrue(t, utf8.RuneCountInString(post.content) <= discordMaxContent, "content within limit")
	testutil.AssertContains(t, post.content, "truncated", "marked as truncated")
	testutil.AssertEqual(t, post.files["summary.txt"], long, "full report attached")
}

func TestDiscord_Notify_ErrorStatus(t *testing.T) {
	server, _ := discordServer(t, http.StatusBadRequest)
	d, _ := NewDiscord(server.URL, logx.NewSilent())

	err := d.Notify(context.Background(), ports.Message{Domain: "example.com", Text: "x"})
	testutil.AssertTrue(t, errors.Is(err, domain.ErrNotification), "notification error")
	testutil.AssertFalse(t, domain.IsFatal(err), "not fatal")
}

func TestDiscord_Notify_PostedOnce(t *testing.T) {
	// Un corte tras recibir el post no debe reenviarlo: Discord pudo haberlo aceptado
	for _, tc := range []struct {
		name string
		drop bool
	}{
		{name: "connection dropped", drop: true},
		{name: "service unavailable", drop: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var (
				mu   sync.Mutex
				hits int
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				hits++
				mu.Unlock()
				_, _ = io.Copy(io.Discard, r.Body)
				if !tc.drop {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				conn, _, err := w.(http.Hijacker).Hijack()
				if err == nil {
					conn.Close()
				}
			}))
			t.Cleanup(server.Close)

			d, err := NewDiscord(server.URL, logx.NewSilent())
			testutil.AssertNoError(t, err, "NewDiscord")

			err = d.Notify(context.Background(), ports.Message{Domain: "example.com", Text: "x"})
			testutil.AssertTrue(t, errors.Is(err, domain.ErrNotification), "notification error")

			mu.Lock()
			defer mu.Unlock()
			testutil.AssertEqual(t, hits, 1, "webhook posted exactly once")
		})
	}
}

func TestDiscord_Notify_MissingAttachment(t *testing.T) {
	server, posts := discordServer(t, http.StatusOK)
	d, _ := NewDiscord(server.URL, logx.NewSilent())

	err := d.Notify(context.Background(), ports.Message{
		Domain:      "example.com",
		Text:        "x",
		Attachments: []ports.Attachment{{Path: filepath.Join(t.TempDir(), "missing.tar.gz")}},
	})
	testutil.AssertTrue(t, errors.Is(err, domain.ErrNotification), "notification error")
	testutil.AssertEqual(t, len(*posts), 0, "nothing posted")
}

func TestTruncate(t *testing.T) {
	s, cut := truncate("short", 10)
	testutil.AssertEqual(t, s, "short", "unchanged")
	testutil.AssertFalse(t, cut, "not truncated")

	s, cut = truncate(strings.Repeat("ñ", 3000), discordMaxContent)
	testutil.AssertTrue(t, cut, "truncated")
	testutil.AssertEqual(t, utf8.RuneCountInString(s), discordMaxContent, "exact limit in runes")
}
