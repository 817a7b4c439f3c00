package notification

import (
	"context"
	"log/slog"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/middleware"
)

// LogNotifier writes events to the structured log. It is the notifier used when no webhook is configured.
type LogNotifier struct{}

var _ portssvc.Notifier = LogNotifier{}

func (LogNotifier) Notify(ctx context.Context, event domain.Event) error {
	attrs := []any{
		slog.String("event_type", string(event.Type)),
		slog.String("invoice_id", event.InvoiceRef),
		slog.String("invoice_number", event.InvoiceNumber),
		slog.String("student_ref", event.StudentRef),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.Amount != nil {
		attrs = append(attrs, slog.String("amount", event.Amount.String()))
	}
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "Ledger event", attrs...)
	return nil
}
