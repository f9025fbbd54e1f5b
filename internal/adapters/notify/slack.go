package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"assetmonitor/internal/core/domain"
	"assetmonitor/internal/core/ports"
	"assetmonitor/internal/platform/logx"
)

// Slack posts reports to an incoming webhook. Incoming webhooks cannot
// upload files, so attachments stay on disk.
type Slack struct {
	webhook string
	client  *http.Client
	logger  logx.Logger
}

// NewSlack creates a Slack notifier.
func NewSlack(webhook string, logger logx.Logger) (*Slack, error) {
	if webhook == "" {
		return nil, domain.NewOpError(domain.ErrCredential, "slack", "webhook",
			fmt.Errorf("slack-webhook is not set"))
	}
	return &Slack{
		webhook: webhook,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger.With("component", "slack"),
	}, nil
}

// Name implements ports.Notifier.
func (s *Slack) Name() string {
	return "slack"
}

// Notify implements ports.Notifier.
func (s *Slack) Notify(ctx context.Context, msg ports.Message) error {
	payload := &slack.WebhookMessage{
		Text: "```" + msg.Text + "```",
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, s.webhook, s.client, payload); err != nil {
		return domain.NewOpError(domain.ErrNotification, s.Name(), msg.Domain.String(), err)
	}

	if len(msg.Attachments) > 0 {
		s.logger.Debug("attachments not sent to slack", "domain", msg.Domain, "count", len(msg.Attachments))
	}
	return nil
}
