package services

import (
	"context"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// StudentDirectory is the external source of students. The ledger only reads from it.
type StudentDirectory interface {
	ListActiveStudents(ctx context.Context) ([]string, error)
	StudentExists(ctx context.Context, studentRef string) (bool, error)
}

// Notifier delivers ledger events. Delivery is fire-and-forget: an error is reported to the
// caller for logging but never undoes the mutation that produced the event.
type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}
