package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
)

// WebhookNotifier POSTs each event as JSON to a fixed URL. Any non-2xx answer is a delivery failure.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

var _ portssvc.Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier creates a notifier for url. A zero timeout leaves the client without one.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ledger-Event", string(event.Type))

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver %s event for invoice %s: %w", event.Type, event.InvoiceRef, err)
	}
	defer resp.Body.Close()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("deliver %s event for invoice %s: webhook answered %d", event.Type, event.InvoiceRef, resp.StatusCode)
	}
	return nil
}
