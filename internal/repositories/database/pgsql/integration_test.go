package pgsql

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/fee_ledger/pkg/database"
)

// PgsqlIntegrationTestSuite runs against a real database named by PGSQL_TEST_URL.
// The tables are truncated before every test.
type PgsqlIntegrationTestSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
	ctx   context.Context
	now   time.Time
}

func TestPgsqlIntegrationTestSuite(t *testing.T) {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	suite.Run(t, &PgsqlIntegrationTestSuite{})
}

func (s *PgsqlIntegrationTestSuite) SetupSuite() {
	url := os.Getenv("PGSQL_TEST_URL")
	_, err := database.RunMigrations(url, "../../../../migrations")
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = NewRepositoryProvider(s.pool)
}

func (s *PgsqlIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		database.ClosePgxPool(s.pool)
	}
}

func (s *PgsqlIntegrationTestSuite) SetupTest() {
	s.now = time.Date(2023, 7, 20, 9, 0, 0, 0, time.UTC)
	_, err := s.pool.Exec(s.ctx, `TRUNCATE payments, invoices, invoice_sequences, students;`)
	s.Require().NoError(err)
}

func (s *PgsqlIntegrationTestSuite) invoice(id, number, student string, period *domain.BillingPeriod, amount string, due time.Time) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     id,
		InvoiceNumber: number,
		StudentRef:    student,
		Description:   "Tuition",
		Amount:        decimal.RequireFromString(amount),
		PaidAmount:    decimal.Zero,
		BillingPeriod: period,
		DueDate:       due,
		Status:        domain.InvoiceUnpaid,
		IssuedAt:      s.now,
		UpdatedAt:     s.now,
		CreatedBy:     "clerk",
		UpdatedBy:     "clerk",
		Version:       1,
	}
}

func (s *PgsqlIntegrationTestSuite) TestSaveInvoice_Uniqueness() {
	july := &domain.BillingPeriod{Year: 2023, Month: time.July}
	due := time.Date(2023, 7, 31, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, s.invoice("inv-1", "INV-2023-07-001", "stu-1", july, "500", due)))

	err := s.repos.InvoiceRepo.SaveInvoice(s.ctx, s.invoice("inv-2", "INV-2023-07-001", "stu-2", july, "500", due))
	s.ErrorIs(err, apperrors.ErrDuplicateInvoiceNumber)

	err = s.repos.InvoiceRepo.SaveInvoice(s.ctx, s.invoice("inv-3", "INV-2023-07-002", "stu-1", july, "500", due))
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.NotErrorIs(err, apperrors.ErrDuplicateInvoiceNumber)

	got, err := s.repos.InvoiceRepo.FindInvoiceByStudentPeriod(s.ctx, "stu-1", *july)
	s.Require().NoError(err)
	s.Equal("inv-1", got.InvoiceID)
	s.Equal(due, got.DueDate)
	s.Require().NotNil(got.BillingPeriod)
	s.Equal(*july, *got.BillingPeriod)

	_, err = s.repos.InvoiceRepo.FindInvoiceByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlIntegrationTestSuite) TestSequence_ConcurrentCallersGetDistinctValues() {
	period := domain.BillingPeriod{Year: 2023, Month: time.July}
	const callers = 20

	var wg sync.WaitGroup
	values := make(chan int64, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.repos.SequenceRepo.NextInvoiceSequence(s.ctx, period)
			s.NoError(err)
			values <- n
		}()
	}
	wg.Wait()
	close(values)

	seen := map[int64]bool{}
	for n := range values {
		s.False(seen[n], "sequence %d handed out twice", n)
		seen[n] = true
	}
	s.Len(seen, callers)
	for i := int64(1); i <= callers; i++ {
		s.True(seen[i])
	}
}

func (s *PgsqlIntegrationTestSuite) TestApplyAndDeletePayment_RecomputeInvoice() {
	due := time.Date(2023, 7, 10, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, s.invoice("inv-1", "INV-2023-07-001", "stu-1", nil, "500", due)))

	inv, err := s.repos.PaymentRepo.ApplyPayment(s.ctx, domain.Payment{
		PaymentID: "pay-1", InvoiceID: "inv-1", Amount: decimal.NewFromInt(600),
		Method: domain.PaymentCash, RecordedAt: s.now, RecordedBy: "clerk",
	}, s.now)
	s.Require().NoError(err)
	s.Equal(domain.InvoicePaid, inv.Status)
	s.True(inv.CreditAmount().Equal(decimal.NewFromInt(100)))
	s.Equal(int64(2), inv.Version)

	err = s.repos.InvoiceRepo.DeleteInvoice(s.ctx, "inv-1")
	s.ErrorIs(err, apperrors.ErrReferentialConflict)

	inv, err = s.repos.PaymentRepo.DeletePayment(s.ctx, "pay-1", "clerk", s.now)
	s.Require().NoError(err)
	s.True(inv.PaidAmount.IsZero())
	s.Equal(domain.InvoiceOverdue, inv.Status)

	_, err = s.repos.PaymentRepo.DeletePayment(s.ctx, "pay-1", "clerk", s.now)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.Require().NoError(s.repos.InvoiceRepo.DeleteInvoice(s.ctx, "inv-1"))
}

func (s *PgsqlIntegrationTestSuite) TestApplyPayment_ConcurrentPaymentsAllCount() {
	due := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, s.invoice("inv-1", "INV-2023-07-001", "stu-1", nil, "1000", due)))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.repos.PaymentRepo.ApplyPayment(s.ctx, domain.Payment{
				PaymentID: "pay-" + string(rune('a'+i)), InvoiceID: "inv-1", Amount: decimal.NewFromInt(100),
				Method: domain.PaymentCreditCard, RecordedAt: s.now, RecordedBy: "clerk",
			}, s.now)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	inv, err := s.repos.InvoiceRepo.FindInvoiceByID(s.ctx, "inv-1")
	s.Require().NoError(err)
	s.True(inv.PaidAmount.Equal(decimal.NewFromInt(1000)))
	s.Equal(domain.InvoicePaid, inv.Status)
	s.Equal(int64(11), inv.Version)

	payments, err := s.repos.PaymentRepo.ListPaymentsByInvoice(s.ctx, "inv-1")
	s.Require().NoError(err)
	s.Len(payments, 10)
}

func (s *PgsqlIntegrationTestSuite) TestMarkOverdue_IsConditional() {
	s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, s.invoice("a", "INV-2023-07-001", "stu-1", nil, "100", time.Date(2023, 7, 19, 0, 0, 0, 0, time.UTC))))
	s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, s.invoice("b", "INV-2023-07-002", "stu-2", nil, "100", time.Date(2023, 7, 20, 0, 0, 0, 0, time.UTC))))

	candidates, err := s.repos.OverdueRepo.ListOverdueCandidates(s.ctx, s.now, "", 10)
	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Equal("a", candidates[0].InvoiceID)

	inv, transitioned, err := s.repos.OverdueRepo.MarkOverdue(s.ctx, "a", s.now)
	s.Require().NoError(err)
	s.True(transitioned)
	s.Equal(domain.InvoiceOverdue, inv.Status)
	s.Equal(domain.SweepActor, inv.UpdatedBy)

	_, transitioned, err = s.repos.OverdueRepo.MarkOverdue(s.ctx, "a", s.now)
	s.Require().NoError(err)
	s.False(transitioned)

	_, transitioned, err = s.repos.OverdueRepo.MarkOverdue(s.ctx, "b", s.now)
	s.Require().NoError(err)
	s.False(transitioned)
}

func (s *PgsqlIntegrationTestSuite) TestMarkOverdue_RemindsDerivedOverdueOnce() {
	inv := s.invoice("a", "INV-2023-07-001", "stu-1", nil, "500", time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC))
	inv.Status = domain.InvoiceOverdue
	s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, inv))

	candidates, err := s.repos.OverdueRepo.ListOverdueCandidates(s.ctx, s.now, "", 10)
	s.Require().NoError(err)
	s.Require().Len(candidates, 1)
	s.Nil(candidates[0].RemindedAt)

	marked, transitioned, err := s.repos.OverdueRepo.MarkOverdue(s.ctx, "a", s.now)
	s.Require().NoError(err)
	s.True(transitioned)
	s.Require().NotNil(marked.RemindedAt)
	s.True(s.now.Equal(*marked.RemindedAt))

	_, transitioned, err = s.repos.OverdueRepo.MarkOverdue(s.ctx, "a", s.now)
	s.Require().NoError(err)
	s.False(transitioned)

	paid, err := s.repos.PaymentRepo.ApplyPayment(s.ctx, domain.Payment{
		PaymentID: "pay-1", InvoiceID: "a", Amount: decimal.NewFromInt(500),
		Method: domain.PaymentCash, RecordedAt: s.now, RecordedBy: "clerk",
	}, s.now)
	s.Require().NoError(err)
	s.Nil(paid.RemindedAt)

	_, err = s.repos.PaymentRepo.DeletePayment(s.ctx, "pay-1", "clerk", s.now)
	s.Require().NoError(err)
	candidates, err = s.repos.OverdueRepo.ListOverdueCandidates(s.ctx, s.now, "", 10)
	s.Require().NoError(err)
	s.Len(candidates, 1)
}

func (s *PgsqlIntegrationTestSuite) TestListInvoicesByStatus_Pages() {
	for i, id := range []string{"a", "b", "c"} {
		inv := s.invoice(id, "INV-2023-07-00"+string(rune('1'+i)), "stu-"+id, nil, "100", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))
		inv.IssuedAt = s.now.Add(time.Duration(i) * time.Minute)
		s.Require().NoError(s.repos.InvoiceRepo.SaveInvoice(s.ctx, inv))
	}

	page, token, err := s.repos.InvoiceRepo.ListInvoicesByStatus(s.ctx, domain.InvoiceUnpaid, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("c", page[0].InvoiceID)
	s.Equal("b", page[1].InvoiceID)
	s.Require().NotNil(token)

	page, token, err = s.repos.InvoiceRepo.ListInvoicesByStatus(s.ctx, domain.InvoiceUnpaid, 2, token)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("a", page[0].InvoiceID)
	s.Nil(token)
}

func (s *PgsqlIntegrationTestSuite) TestStudentDirectory() {
	_, err := s.pool.Exec(s.ctx, `
		INSERT INTO students (student_ref, full_name, status) VALUES
			('stu-b', 'B', 'active'), ('stu-a', 'A', 'active'), ('stu-x', 'X', 'inactive');
	`)
	s.Require().NoError(err)

	dir := NewStudentDirectory(s.pool)
	refs, err := dir.ListActiveStudents(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"stu-a", "stu-b"}, refs)

	exists, err := dir.StudentExists(s.ctx, "stu-x")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = dir.StudentExists(s.ctx, "nobody")
	s.Require().NoError(err)
	s.False(exists)
}
