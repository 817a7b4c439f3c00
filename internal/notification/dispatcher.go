package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
)

var (
	// ErrQueueFull is returned when an event is dropped because the delivery queue is full.
	ErrQueueFull = errors.New("notification queue full")
	// ErrDispatcherClosed is returned for events offered after Close.
	ErrDispatcherClosed = errors.New("notification dispatcher closed")
)

// Dispatcher decouples callers from delivery: Notify only enqueues, and a single worker hands
// events to the wrapped notifier in arrival order. Delivery errors are logged, never returned.
type Dispatcher struct {
	next    portssvc.Notifier
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan domain.Event
	done   chan struct{}
	start  sync.Once
}

var _ portssvc.Notifier = (*Dispatcher)(nil)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDeliveryTimeout bounds each delivery attempt. Zero means no bound.
func WithDeliveryTimeout(d time.Duration) DispatcherOption {
	return func(dp *Dispatcher) {
		dp.timeout = d
	}
}

// WithDispatcherLogger sets the logger delivery failures are reported to.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(dp *Dispatcher) {
		dp.logger = logger
	}
}

// NewDispatcher creates a dispatcher with room for queueSize pending events. Call Start before use.
func NewDispatcher(next portssvc.Notifier, queueSize int, opts ...DispatcherOption) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{
		next:   next,
		logger: slog.Default(),
		queue:  make(chan domain.Event, queueSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With(slog.String("job", "notification-dispatcher"))
	return d
}

// Start launches the delivery worker. Calling it more than once has no further effect.
func (d *Dispatcher) Start() {
	d.start.Do(func() {
		go d.run()
	})
}

// Notify enqueues the event without blocking.
func (d *Dispatcher) Notify(_ context.Context, event domain.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.queue <- event:
		return nil
	default:
		d.logger.Warn("Dropping ledger event, queue full",
			slog.String("event_type", string(event.Type)),
			slog.String("invoice_id", event.InvoiceRef))
		return ErrQueueFull
	}
}

// Close stops accepting events and waits until the queued ones are delivered or ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.Start() // a dispatcher that never started still drains its queue
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event domain.Event) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if err := d.next.Notify(ctx, event); err != nil {
		d.logger.Error("Failed to deliver ledger event",
			slog.String("event_type", string(event.Type)),
			slog.String("invoice_id", event.InvoiceRef),
			slog.String("student_ref", event.StudentRef),
			slog.String("error", err.Error()))
	}
}
