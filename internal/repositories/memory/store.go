package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/fee_ledger/internal/utils/pagination"
)

type studentPeriodKey struct {
	studentRef string
	period     domain.BillingPeriod
}

// Store is an in-process ledger store for tests and local development. A single lock guards every
// map, so each method is one atomic unit of work and readers see a consistent snapshot.
//
// That lock spans the whole ledger: a report or a payment on one invoice waits for work on every
// other invoice. Production deployments use the Postgres store, which serialises per invoice row.
type Store struct {
	mu                sync.RWMutex
	invoices          map[string]domain.Invoice
	byNumber          map[string]string
	byStudentPeriod   map[studentPeriodKey]string
	payments          map[string]domain.Payment
	paymentsByInvoice map[string][]string
	sequences         map[domain.BillingPeriod]int64
	clock             func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used as the report snapshot time.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore creates an empty in-memory ledger store.
func NewStore(options ...Option) *Store {
	s := &Store{
		invoices:          make(map[string]domain.Invoice),
		byNumber:          make(map[string]string),
		byStudentPeriod:   make(map[studentPeriodKey]string),
		payments:          make(map[string]domain.Payment),
		paymentsByInvoice: make(map[string][]string),
		sequences:         make(map[domain.BillingPeriod]int64),
		clock:             time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// NewRepositoryProvider exposes one Store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:   store,
		PaymentRepo:   store,
		SequenceRepo:  store,
		OverdueRepo:   store,
		ReportingRepo: store,
	}
}

var (
	_ portsrepo.InvoiceRepositoryFacade = (*Store)(nil)
	_ portsrepo.PaymentRepositoryFacade = (*Store)(nil)
	_ portsrepo.SequenceRepository      = (*Store)(nil)
	_ portsrepo.OverdueRepository       = (*Store)(nil)
	_ portsrepo.ReportingRepository     = (*Store)(nil)
)

func copyInvoice(inv domain.Invoice) domain.Invoice {
	if inv.BillingPeriod != nil {
		p := *inv.BillingPeriod
		inv.BillingPeriod = &p
	}
	if inv.RemindedAt != nil {
		t := *inv.RemindedAt
		inv.RemindedAt = &t
	}
	return inv
}

// sortNewestFirst orders by issued_at DESC, invoice_id DESC.
func sortNewestFirst(invoices []domain.Invoice) {
	sort.Slice(invoices, func(i, j int) bool {
		if invoices[i].IssuedAt.Equal(invoices[j].IssuedAt) {
			return invoices[i].InvoiceID > invoices[j].InvoiceID
		}
		return invoices[i].IssuedAt.After(invoices[j].IssuedAt)
	})
}

func (s *Store) collect(keep func(*domain.Invoice) bool) []domain.Invoice {
	out := []domain.Invoice{}
	for id := range s.invoices {
		inv := s.invoices[id]
		if keep(&inv) {
			out = append(out, copyInvoice(inv))
		}
	}
	sortNewestFirst(out)
	return out
}

// --- invoices ---

func (s *Store) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	out := copyInvoice(inv)
	return &out, nil
}

func (s *Store) FindInvoiceByStudentPeriod(ctx context.Context, studentRef string, period domain.BillingPeriod) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byStudentPeriod[studentPeriodKey{studentRef: studentRef, period: period}]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no invoice for student %s in period %s", studentRef, period))
	}
	out := copyInvoice(s.invoices[id])
	return &out, nil
}

func (s *Store) ListInvoicesByStudent(ctx context.Context, studentRef string) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(inv *domain.Invoice) bool { return inv.StudentRef == studentRef }), nil
}

func (s *Store) ListInvoicesByStatus(ctx context.Context, status domain.InvoiceStatus, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	var (
		afterIssuedAt time.Time
		afterID       string
		resume        bool
	)
	if nextToken != nil && *nextToken != "" {
		var err error
		afterIssuedAt, afterID, err = pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(err.Error())
		}
		resume = true
	}

	s.mu.RLock()
	matching := s.collect(func(inv *domain.Invoice) bool {
		if inv.Status != status {
			return false
		}
		return !resume || pagination.After(inv.IssuedAt, inv.InvoiceID, afterIssuedAt, afterID)
	})
	s.mu.RUnlock()

	if limit <= 0 || len(matching) <= limit {
		return matching, nil, nil
	}
	page := matching[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.IssuedAt, last.InvoiceID)
	return page, &token, nil
}

func (s *Store) ListInvoicesByPeriod(ctx context.Context, period domain.BillingPeriod) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(inv *domain.Invoice) bool {
		return inv.BillingPeriod != nil && *inv.BillingPeriod == period
	}), nil
}

func (s *Store) ListInvoicesIssuedBetween(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(inv *domain.Invoice) bool {
		return !inv.IssuedAt.Before(from) && !inv.IssuedAt.After(to)
	}), nil
}

func (s *Store) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[invoice.InvoiceID]; exists {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, invoice.InvoiceID)
	}
	if _, taken := s.byNumber[invoice.InvoiceNumber]; taken {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateInvoiceNumber, invoice.InvoiceNumber)
	}
	var key studentPeriodKey
	if invoice.BillingPeriod != nil {
		key = studentPeriodKey{studentRef: invoice.StudentRef, period: *invoice.BillingPeriod}
		if _, billed := s.byStudentPeriod[key]; billed {
			return fmt.Errorf("%w: student %s already invoiced for %s", apperrors.ErrDuplicate, invoice.StudentRef, key.period)
		}
	}

	s.invoices[invoice.InvoiceID] = copyInvoice(invoice)
	s.byNumber[invoice.InvoiceNumber] = invoice.InvoiceID
	if invoice.BillingPeriod != nil {
		s.byStudentPeriod[key] = invoice.InvoiceID
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, invoiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return apperrors.NewNotFoundError("invoice " + invoiceID + " not found")
	}
	if n := len(s.paymentsByInvoice[invoiceID]); n > 0 {
		return fmt.Errorf("%w: invoice %s has %d payment(s)", apperrors.ErrReferentialConflict, invoiceID, n)
	}

	delete(s.invoices, invoiceID)
	delete(s.byNumber, inv.InvoiceNumber)
	if inv.BillingPeriod != nil {
		delete(s.byStudentPeriod, studentPeriodKey{studentRef: inv.StudentRef, period: *inv.BillingPeriod})
	}
	delete(s.paymentsByInvoice, invoiceID)
	return nil
}

// --- payments ---

func (s *Store) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
	}
	return &p, nil
}

func (s *Store) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.paymentsByInvoice[invoiceID]
	out := make([]domain.Payment, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.payments[id])
	}
	return out, nil
}

// paidLocked sums the payments of an invoice. Caller holds mu.
func (s *Store) paidLocked(invoiceID string) decimal.Decimal {
	paid := decimal.Zero
	for _, id := range s.paymentsByInvoice[invoiceID] {
		paid = paid.Add(s.payments[id].Amount)
	}
	return paid
}

// recomputeLocked refreshes the invoice from its payments and bumps its version. Caller holds mu.
func (s *Store) recomputeLocked(invoiceID, updatedBy string, now time.Time) domain.Invoice {
	inv := s.invoices[invoiceID]
	inv.Recompute(s.paidLocked(invoiceID), now)
	inv.UpdatedAt = now
	inv.UpdatedBy = updatedBy
	inv.Version++
	s.invoices[invoiceID] = inv
	return copyInvoice(inv)
}

func (s *Store) ApplyPayment(ctx context.Context, payment domain.Payment, now time.Time) (*domain.Invoice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[payment.InvoiceID]; !ok {
		return nil, apperrors.NewNotFoundError("invoice " + payment.InvoiceID + " not found")
	}
	if _, exists := s.payments[payment.PaymentID]; exists {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, payment.PaymentID)
	}

	s.payments[payment.PaymentID] = payment
	s.paymentsByInvoice[payment.InvoiceID] = append(s.paymentsByInvoice[payment.InvoiceID], payment.PaymentID)

	inv := s.recomputeLocked(payment.InvoiceID, payment.RecordedBy, now)
	return &inv, nil
}

func (s *Store) DeletePayment(ctx context.Context, paymentID string, deletedBy string, now time.Time) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return nil, apperrors.NewNotFoundError("payment " + paymentID + " not found")
	}

	delete(s.payments, paymentID)
	ids := s.paymentsByInvoice[payment.InvoiceID]
	kept := ids[:0]
	for _, id := range ids {
		if id != paymentID {
			kept = append(kept, id)
		}
	}
	s.paymentsByInvoice[payment.InvoiceID] = kept

	inv := s.recomputeLocked(payment.InvoiceID, deletedBy, now)
	return &inv, nil
}

// --- sequences ---

func (s *Store) NextInvoiceSequence(ctx context.Context, period domain.BillingPeriod) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences[period]++
	return s.sequences[period], nil
}

// --- overdue ---

func (s *Store) ListOverdueCandidates(ctx context.Context, now time.Time, afterID string, limit int) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Invoice{}
	for id := range s.invoices {
		inv := s.invoices[id]
		if id <= afterID || !overdueEligible(&inv, now) {
			continue
		}
		out = append(out, copyInvoice(inv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceID < out[j].InvoiceID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) MarkOverdue(ctx context.Context, invoiceID string, now time.Time) (*domain.Invoice, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[invoiceID]
	if !ok || !overdueEligible(&inv, now) {
		return nil, false, nil
	}
	reminded := now
	inv.Status = domain.InvoiceOverdue
	inv.RemindedAt = &reminded
	inv.UpdatedAt = now
	inv.UpdatedBy = domain.SweepActor
	inv.Version++
	s.invoices[invoiceID] = inv

	out := copyInvoice(inv)
	return &out, true, nil
}

func overdueEligible(inv *domain.Invoice, now time.Time) bool {
	return inv.NeedsReminder(now)
}

// --- reporting ---

func (s *Store) GetFinancialReportData(ctx context.Context, from, to time.Time) (*domain.FinancialReportData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	asOf := s.clock().UTC()
	byStatus := map[domain.InvoiceStatus]*domain.StatusBreakdown{}
	for id := range s.invoices {
		inv := s.invoices[id]
		if inv.IssuedAt.Before(from) || inv.IssuedAt.After(to) {
			continue
		}
		status := inv.EffectiveStatus(asOf)
		row, ok := byStatus[status]
		if !ok {
			row = &domain.StatusBreakdown{
				Status:      status,
				Invoiced:    decimal.Zero,
				Paid:        decimal.Zero,
				Outstanding: decimal.Zero,
				Credit:      decimal.Zero,
			}
			byStatus[status] = row
		}
		row.Count++
		row.Invoiced = row.Invoiced.Add(inv.Amount)
		row.Paid = row.Paid.Add(inv.PaidAmount)
		row.Outstanding = row.Outstanding.Add(inv.BalanceDue())
		row.Credit = row.Credit.Add(inv.CreditAmount())
	}

	byMethod := map[domain.PaymentMethod]*domain.MethodBreakdown{}
	for _, p := range s.payments {
		if p.RecordedAt.Before(from) || p.RecordedAt.After(to) {
			continue
		}
		row, ok := byMethod[p.Method]
		if !ok {
			row = &domain.MethodBreakdown{Method: p.Method, Amount: decimal.Zero}
			byMethod[p.Method] = row
		}
		row.Count++
		row.Amount = row.Amount.Add(p.Amount)
	}

	data := &domain.FinancialReportData{
		AsOf:     asOf,
		ByStatus: make([]domain.StatusBreakdown, 0, len(byStatus)),
		ByMethod: make([]domain.MethodBreakdown, 0, len(byMethod)),
	}
	for _, row := range byStatus {
		data.ByStatus = append(data.ByStatus, *row)
	}
	for _, row := range byMethod {
		data.ByMethod = append(data.ByMethod, *row)
	}
	sort.Slice(data.ByStatus, func(i, j int) bool { return data.ByStatus[i].Status < data.ByStatus[j].Status })
	sort.Slice(data.ByMethod, func(i, j int) bool { return data.ByMethod[i].Method < data.ByMethod[j].Method })
	return data, nil
}
