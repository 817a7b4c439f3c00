package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Recording Notifier ---
type RecordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *RecordingNotifier) Notify(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *RecordingNotifier) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

// --- Mock StudentDirectory ---
type MockStudentDirectory struct {
	mock.Mock
}

func (m *MockStudentDirectory) ListActiveStudents(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStudentDirectory) StudentExists(ctx context.Context, studentRef string) (bool, error) {
	args := m.Called(ctx, studentRef)
	return args.Bool(0), args.Error(1)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextInvoiceSequence(ctx context.Context, period domain.BillingPeriod) (int64, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock OverdueRepository ---
type MockOverdueRepository struct {
	mock.Mock
}

func (m *MockOverdueRepository) ListOverdueCandidates(ctx context.Context, now time.Time, afterID string, limit int) ([]domain.Invoice, error) {
	args := m.Called(ctx, now, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockOverdueRepository) MarkOverdue(ctx context.Context, invoiceID string, now time.Time) (*domain.Invoice, bool, error) {
	args := m.Called(ctx, invoiceID, now)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Invoice), args.Bool(1), args.Error(2)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetFinancialReportData(ctx context.Context, from, to time.Time) (*domain.FinancialReportData, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialReportData), args.Error(1)
}

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
