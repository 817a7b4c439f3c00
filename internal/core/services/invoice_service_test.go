package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/core/services"
	"github.com/SscSPs/fee_ledger/internal/dto"
	"github.com/SscSPs/fee_ledger/internal/repositories/memory"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	store    *memory.Store
	students *memory.StudentDirectory
	service  portssvc.InvoiceSvcFacade
	payments portssvc.PaymentSvcFacade
	now      time.Time
	ctx      context.Context
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.now = time.Date(2023, 7, 20, 9, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()
	suite.store = memory.NewStore(memory.WithClock(fixedClock(suite.now)))
	suite.students = memory.NewStudentDirectory(
		domain.Student{StudentRef: "stu-1", Status: domain.StudentActive},
		domain.Student{StudentRef: "stu-2", Status: domain.StudentInactive},
	)
	suite.service = services.NewInvoiceService(suite.store, services.NewInvoiceNumberAllocator(suite.store), suite.students,
		services.WithInvoiceClock(fixedClock(suite.now)))
	suite.payments = services.NewPaymentService(suite.store, suite.store, &RecordingNotifier{},
		services.WithPaymentClock(fixedClock(suite.now)))
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func (suite *InvoiceServiceTestSuite) createInvoice(student, amount, due string) *domain.Invoice {
	inv, err := suite.service.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		StudentRef: student,
		Amount:     decimal.RequireFromString(amount),
		DueDate:    due,
	}, "clerk")
	suite.Require().NoError(err)
	return inv
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Success() {
	inv := suite.createInvoice("stu-1", "500", "2023-07-31")

	suite.NotEmpty(inv.InvoiceID)
	suite.Equal("INV-2023-07-001", inv.InvoiceNumber)
	suite.Equal(domain.InvoiceUnpaid, inv.Status)
	suite.True(inv.PaidAmount.IsZero())
	suite.Nil(inv.BillingPeriod)
	suite.Equal(time.Date(2023, 7, 31, 0, 0, 0, 0, time.UTC), inv.DueDate)
	suite.Equal("clerk", inv.CreatedBy)
	suite.Equal(int64(1), inv.Version)

	second := suite.createInvoice("stu-2", "10", "2023-08-01")
	suite.Equal("INV-2023-07-002", second.InvoiceNumber, "inactive students can still be invoiced ad hoc")

	stored, err := suite.service.GetInvoice(suite.ctx, inv.InvoiceID)
	suite.Require().NoError(err)
	suite.Equal(inv.InvoiceNumber, stored.InvoiceNumber)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_PastDueIsOverdueImmediately() {
	inv := suite.createInvoice("stu-1", "100", "2023-07-01")
	suite.Equal(domain.InvoiceOverdue, inv.Status)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_Validation() {
	testCases := []struct {
		name    string
		req     dto.CreateInvoiceRequest
		wantErr error
	}{
		{"zero amount", dto.CreateInvoiceRequest{StudentRef: "stu-1", Amount: decimal.Zero, DueDate: "2023-07-31"}, apperrors.ErrInvalidAmount},
		{"negative amount", dto.CreateInvoiceRequest{StudentRef: "stu-1", Amount: decimal.NewFromInt(-5), DueDate: "2023-07-31"}, apperrors.ErrInvalidAmount},
		{"blank student", dto.CreateInvoiceRequest{StudentRef: "  ", Amount: decimal.NewFromInt(5), DueDate: "2023-07-31"}, apperrors.ErrValidation},
		{"bad due date", dto.CreateInvoiceRequest{StudentRef: "stu-1", Amount: decimal.NewFromInt(5), DueDate: "31/07/2023"}, apperrors.ErrValidation},
		{"unknown student", dto.CreateInvoiceRequest{StudentRef: "ghost", Amount: decimal.NewFromInt(5), DueDate: "2023-07-31"}, apperrors.ErrNotFound},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			inv, err := suite.service.CreateInvoice(suite.ctx, tc.req, "clerk")
			suite.Nil(inv)
			suite.ErrorIs(err, tc.wantErr)
		})
	}

	// a rejected request never consumes a number
	inv := suite.createInvoice("stu-1", "5", "2023-07-31")
	suite.Equal("INV-2023-07-001", inv.InvoiceNumber)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RetriesOnNumberClash() {
	// a number taken outside the allocator, e.g. by an imported invoice
	suite.Require().NoError(suite.store.SaveInvoice(suite.ctx, domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-2023-07-001",
		StudentRef:    "stu-2",
		Amount:        decimal.NewFromInt(1),
		DueDate:       suite.now,
		Status:        domain.InvoiceUnpaid,
		IssuedAt:      suite.now,
	}))

	inv := suite.createInvoice("stu-1", "500", "2023-07-31")
	suite.Equal("INV-2023-07-002", inv.InvoiceNumber)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RetriesExhausted() {
	suite.Require().NoError(suite.store.SaveInvoice(suite.ctx, domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-2023-07-001",
		StudentRef:    "stu-2",
		Amount:        decimal.NewFromInt(1),
		IssuedAt:      suite.now,
	}))
	seqRepo := new(MockSequenceRepository)
	seqRepo.On("NextInvoiceSequence", mock.Anything, domain.BillingPeriod{Year: 2023, Month: time.July}).Return(int64(1), nil)

	svc := services.NewInvoiceService(suite.store, services.NewInvoiceNumberAllocator(seqRepo), suite.students,
		services.WithInvoiceClock(fixedClock(suite.now)),
		services.WithInvoiceMaxRetries(3))

	inv, err := svc.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		StudentRef: "stu-1",
		Amount:     decimal.NewFromInt(500),
		DueDate:    "2023-07-31",
	}, "clerk")

	suite.Nil(inv)
	suite.ErrorIs(err, apperrors.ErrDuplicateInvoiceNumber)
	seqRepo.AssertNumberOfCalls(suite.T(), "NextInvoiceSequence", 3)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AllocatorUnavailable() {
	seqRepo := new(MockSequenceRepository)
	seqRepo.On("NextInvoiceSequence", mock.Anything, mock.Anything).Return(int64(0), assert.AnError).Once()

	svc := services.NewInvoiceService(suite.store, services.NewInvoiceNumberAllocator(seqRepo), suite.students,
		services.WithInvoiceClock(fixedClock(suite.now)))

	inv, err := svc.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		StudentRef: "stu-1",
		Amount:     decimal.NewFromInt(500),
		DueDate:    "2023-07-31",
	}, "clerk")

	suite.Nil(inv)
	suite.ErrorIs(err, apperrors.ErrAllocatorUnavailable)
	invoices, err := suite.store.ListInvoicesByStudent(suite.ctx, "stu-1")
	suite.Require().NoError(err)
	suite.Empty(invoices, "no invoice is stored without a number")
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice() {
	withPayment := suite.createInvoice("stu-1", "500", "2023-07-31")
	_, _, err := suite.payments.ApplyPayment(suite.ctx, withPayment.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
		Method: domain.PaymentCash,
	}, "clerk")
	suite.Require().NoError(err)

	err = suite.service.DeleteInvoice(suite.ctx, withPayment.InvoiceID, "clerk")
	suite.ErrorIs(err, apperrors.ErrReferentialConflict)

	stillThere, err := suite.service.GetInvoice(suite.ctx, withPayment.InvoiceID)
	suite.Require().NoError(err)
	suite.True(stillThere.PaidAmount.Equal(decimal.NewFromInt(100)))
	payments, err := suite.payments.ListPaymentsByInvoice(suite.ctx, withPayment.InvoiceID)
	suite.Require().NoError(err)
	suite.Len(payments, 1)

	clean := suite.createInvoice("stu-1", "50", "2023-07-31")
	suite.Require().NoError(suite.service.DeleteInvoice(suite.ctx, clean.InvoiceID, "clerk"))
	_, err = suite.service.GetInvoice(suite.ctx, clean.InvoiceID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.ErrorIs(suite.service.DeleteInvoice(suite.ctx, clean.InvoiceID, "clerk"), apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestGetStudentBalance() {
	a := suite.createInvoice("stu-1", "500", "2023-07-31")
	suite.createInvoice("stu-1", "200", "2023-08-31")
	_, _, err := suite.payments.ApplyPayment(suite.ctx, a.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(650),
		Method: domain.PaymentBankTransfer,
	}, "clerk")
	suite.Require().NoError(err)

	balance, err := suite.service.GetStudentBalance(suite.ctx, "stu-1")
	suite.Require().NoError(err)
	suite.Equal(2, balance.InvoiceCount)
	suite.True(balance.TotalInvoiced.Equal(decimal.NewFromInt(700)))
	suite.True(balance.TotalPaid.Equal(decimal.NewFromInt(650)))
	suite.True(balance.Outstanding.Equal(decimal.NewFromInt(200)))
	suite.True(balance.Credit.Equal(decimal.NewFromInt(150)))

	empty, err := suite.service.GetStudentBalance(suite.ctx, "stu-2")
	suite.Require().NoError(err)
	suite.Equal(0, empty.InvoiceCount)
	suite.True(empty.Outstanding.IsZero())

	_, err = suite.service.GetStudentBalance(suite.ctx, "ghost")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestListInvoicesByStatus() {
	for i := 0; i < 5; i++ {
		suite.createInvoice("stu-1", "10", "2023-07-31")
	}
	paid := suite.createInvoice("stu-1", "10", "2023-07-31")
	_, _, err := suite.payments.ApplyPayment(suite.ctx, paid.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10),
		Method: domain.PaymentCash,
	}, "clerk")
	suite.Require().NoError(err)

	page, err := suite.service.ListInvoicesByStatus(suite.ctx, dto.ListInvoicesParams{Status: domain.InvoiceUnpaid, Limit: 3})
	suite.Require().NoError(err)
	suite.Len(page.Invoices, 3)
	suite.Require().NotNil(page.NextToken)

	rest, err := suite.service.ListInvoicesByStatus(suite.ctx, dto.ListInvoicesParams{Status: domain.InvoiceUnpaid, Limit: 3, NextToken: page.NextToken})
	suite.Require().NoError(err)
	suite.Len(rest.Invoices, 2)
	suite.Nil(rest.NextToken)

	paidPage, err := suite.service.ListInvoicesByStatus(suite.ctx, dto.ListInvoicesParams{Status: domain.InvoicePaid})
	suite.Require().NoError(err)
	suite.Require().Len(paidPage.Invoices, 1)
	suite.Equal(paid.InvoiceID, paidPage.Invoices[0].InvoiceID)

	_, err = suite.service.ListInvoicesByStatus(suite.ctx, dto.ListInvoicesParams{Status: "void"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestListInvoicesIssuedBetween() {
	suite.createInvoice("stu-1", "10", "2023-07-31")

	invoices, err := suite.service.ListInvoicesIssuedBetween(suite.ctx, suite.now.Add(-time.Hour), suite.now.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Len(invoices, 1)

	invoices, err = suite.service.ListInvoicesIssuedBetween(suite.ctx, suite.now.Add(time.Hour), suite.now.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Empty(invoices)

	_, err = suite.service.ListInvoicesIssuedBetween(suite.ctx, suite.now, suite.now.Add(-time.Second))
	suite.ErrorIs(err, apperrors.ErrValidation)
}
