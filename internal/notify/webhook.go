package notify

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const deliverTimeout = 10 * time.Second

// WebhookNotifier POSTs events to a single webhook URL. An empty URL turns
// the notifier into a no-op, which is how dev environments run.
type WebhookNotifier struct {
	client *resty.Client
	url    string
	log    *zap.Logger
}

func NewWebhookNotifier(url string, log *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(deliverTimeout).
		SetRetryCount(3).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &WebhookNotifier{client: client, url: url, log: log}
}

// Publish hands the event to a background goroutine. The request that
// triggered it never waits on the webhook.
func (n *WebhookNotifier) Publish(ev Event) {
	if n.url == "" {
		return
	}
	go n.deliver(ev)
}

func (n *WebhookNotifier) deliver(ev Event) {
	// detached from the request context: the response has already been sent
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ev).
		Post(n.url)
	if err != nil {
		n.log.Warn("webhook delivery failed",
			zap.String("kind", ev.Kind),
			zap.String("external_po_id", ev.ExternalPOID),
			zap.Error(err))
		return
	}
	if resp.IsError() {
		n.log.Warn("webhook rejected event",
			zap.String("kind", ev.Kind),
			zap.String("external_po_id", ev.ExternalPOID),
			zap.Int("status", resp.StatusCode()))
		return
	}
	n.log.Debug("webhook delivered",
		zap.String("kind", ev.Kind),
		zap.String("external_po_id", ev.ExternalPOID))
}
