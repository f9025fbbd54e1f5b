// Package notify implements the notification channels for change reports.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/httpclient"
	"assetmonitor/internal/platform/logx"
	"assetmonitor/internal/platform/rate"
)

const (
	// discordMaxContent is the message length limit of a webhook post.
	discordMaxContent = 2000

	// discordMaxAttachment is the upload limit for non-boosted servers.
	discordMaxAttachment = 25 << 20

	truncatedSuffix = "\n... (truncated, full report attached)"
)

// Discord posts reports to a Discord webhook as multipart/form-data.
// Safe for concurrent use: all workers share the limiter.
type Discord struct {
	webhook string
	client  *httpclient.Client
	limiter *rate.Limiter
	logger  logx.Logger
}

// NewDiscord creates a Discord notifier. Webhooks allow 5 requests every 2 seconds.
func NewDiscord(webhook string, logger logx.Logger) (*Discord, error) {
	if webhook == "" {
		return nil, domain.NewOpError(domain.ErrCredential, "discord", "webhook",
			fmt.Errorf("discord-webhook is not set"))
	}

	cfg := httpclient.DefaultConfig()
	cfg.Timeout = 60 * time.Second // uploads
	// Sin reintentos: un timeout tras aceptar el post duplicaría el mensaje
	cfg.MaxRetries = 0
	client, err := httpclient.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Discord{
		webhook: webhook,
		client:  client,
		limiter: rate.Every(2*time.Second, 5),
		logger:  logger.With("component", "discord"),
	}, nil
}

// Name implements ports.Notifier.
func (d *Discord) Name() string {
	return "discord"
}

// Notify implements ports.Notifier.
func (d *Discord) Notify(ctx context.Context, msg ports.Message) error {
	body, contentType, err := d.buildBody(msg)
	if err != nil {
		return domain.NewOpError(domain.ErrNotification, d.Name(), msg.Domain.String(), err)
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return domain.NewOpError(domain.ErrNotification, d.Name(), msg.Domain.String(), err)
	}

	resp, err := d.client.Post(ctx, d.webhook, body, map[string]string{"Content-Type": contentType})
	if err != nil {
		return domain.NewOpError(domain.ErrNotification, d.Name(), msg.Domain.String(), err)
	}
	defer resp.Body.Close()

	if err := httpclient.CheckStatus(resp); err != nil {
		return domain.NewOpError(domain.ErrNotification, d.Name(), msg.Domain.String(),
			fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}

	d.logger.Debug("report sent", "domain", msg.Domain, "attachments", len(msg.Attachments))
	return nil
}

// buildBody arma el formulario: content + un campo files[n] por adjunto.
func (d *Discord) buildBody(msg ports.Message) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	content, truncated := truncate(msg.Text, discordMaxContent)
	if err := w.WriteField("content", content); err != nil {
		return nil, "", err
	}

	n := 0
	if truncated {
		part, err := w.CreateFormFile(fmt.Sprintf("files[%d]", n), "summary.txt")
		if err != nil {
			return nil, "", err
		}
		if _, err := io.WriteString(part, msg.Text); err != nil {
			return nil, "", err
		}
		n++
	}

	for _, att := range msg.Attachments {
		ok, err := d.attach(w, n, att)
		if err != nil {
			return nil, "", err
		}
		if ok {
			n++
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// attach copia el fichero al formulario; los que exceden el límite se omiten.
func (d *Discord) attach(w *multipart.Writer, index int, att ports.Attachment) (bool, error) {
	f, err := os.Open(att.Path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() > discordMaxAttachment {
		d.logger.Warn("attachment too large for discord, kept locally",
			"path", att.Path,
			"size", info.Size(),
		)
		return false, nil
	}

	name := att.Name
	if name == "" {
		name = filepath.Base(att.Path)
	}
	part, err := w.CreateFormFile(fmt.Sprintf("files[%d]", index), name)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return false, err
	}
	return true, nil
}

// truncate corta s a max runas como mucho.
func truncate(s string, max int) (string, bool) {
	if utf8.RuneCountInString(s) <= max {
		return s, false
	}
	keep := max - utf8.RuneCountInString(truncatedSuffix)
	runes := []rune(s)
	return string(runes[:keep]) + truncatedSuffix, true
}
