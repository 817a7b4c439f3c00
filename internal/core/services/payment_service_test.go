package services_test

import (
	"context"
	"testing"
	"time"

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

type PaymentServiceTestSuite struct {
	suite.Suite
	store    *memory.Store
	notifier *MockNotifier
	invoices portssvc.InvoiceSvcFacade
	service  portssvc.PaymentSvcFacade
	now      time.Time
	ctx      context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.now = time.Date(2023, 7, 20, 9, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.notifier = new(MockNotifier)
	students := memory.NewStudentDirectory(domain.Student{StudentRef: "stu-1", Status: domain.StudentActive})
	suite.invoices = services.NewInvoiceService(suite.store, services.NewInvoiceNumberAllocator(suite.store), students,
		services.WithInvoiceClock(fixedClock(suite.now)))
	suite.service = services.NewPaymentService(suite.store, suite.store, suite.notifier,
		services.WithPaymentClock(fixedClock(suite.now)))
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) newInvoice(amount, due string) *domain.Invoice {
	inv, err := suite.invoices.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		StudentRef: "stu-1",
		Amount:     decimal.RequireFromString(amount),
		DueDate:    due,
	}, "clerk")
	suite.Require().NoError(err)
	return inv
}

func (suite *PaymentServiceTestSuite) pay(invoiceID, amount string) (*domain.Payment, *domain.Invoice, error) {
	return suite.service.ApplyPayment(suite.ctx, invoiceID, dto.RecordPaymentRequest{
		Amount: decimal.RequireFromString(amount),
		Method: domain.PaymentCash,
	}, "clerk")
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_PartialThenFull() {
	suite.notifier.On("Notify", mock.Anything, mock.AnythingOfType("domain.Event")).Return(nil)
	inv := suite.newInvoice("500", "2023-07-31")

	payment, updated, err := suite.pay(inv.InvoiceID, "300")
	suite.Require().NoError(err)
	suite.Equal(inv.InvoiceID, payment.InvoiceID)
	suite.Equal(suite.now, payment.RecordedAt)
	suite.Equal(domain.InvoiceUnpaid, updated.Status)
	suite.True(updated.BalanceDue().Equal(decimal.NewFromInt(200)))

	_, updated, err = suite.pay(inv.InvoiceID, "200")
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.True(updated.PaidAmount.Equal(decimal.NewFromInt(500)))
	suite.True(updated.CreditAmount().IsZero())
	suite.Equal(int64(3), updated.Version)

	suite.notifier.AssertNumberOfCalls(suite.T(), "Notify", 2)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_OverpaymentBecomesCredit() {
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	inv := suite.newInvoice("500", "2023-07-31")

	_, updated, err := suite.pay(inv.InvoiceID, "650.50")
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.True(updated.CreditAmount().Equal(decimal.RequireFromString("150.50")))
	suite.True(updated.BalanceDue().IsZero())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_SettlesOverdueInvoice() {
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	inv := suite.newInvoice("100", "2023-07-01")
	suite.Require().Equal(domain.InvoiceOverdue, inv.Status)

	_, updated, err := suite.pay(inv.InvoiceID, "40")
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceOverdue, updated.Status)

	_, updated, err = suite.pay(inv.InvoiceID, "60")
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_EmitsPaymentRecorded() {
	inv := suite.newInvoice("500", "2023-07-31")
	suite.notifier.On("Notify", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventPaymentRecorded &&
			e.InvoiceRef == inv.InvoiceID &&
			e.InvoiceNumber == inv.InvoiceNumber &&
			e.StudentRef == "stu-1" &&
			e.Amount != nil && e.Amount.Equal(decimal.NewFromInt(300))
	})).Return(nil).Once()

	_, _, err := suite.pay(inv.InvoiceID, "300")
	suite.Require().NoError(err)
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NotificationFailureDoesNotUndoPayment() {
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	inv := suite.newInvoice("500", "2023-07-31")

	payment, updated, err := suite.pay(inv.InvoiceID, "500")
	suite.Require().NoError(err)
	suite.NotNil(payment)
	suite.Equal(domain.InvoicePaid, updated.Status)

	stored, err := suite.invoices.GetInvoice(suite.ctx, inv.InvoiceID)
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, stored.Status)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_Validation() {
	inv := suite.newInvoice("500", "2023-07-31")

	testCases := []struct {
		name      string
		invoiceID string
		req       dto.RecordPaymentRequest
		wantErr   error
	}{
		{"zero amount", inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.Zero, Method: domain.PaymentCash}, apperrors.ErrInvalidAmount},
		{"negative amount", inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(-1), Method: domain.PaymentCash}, apperrors.ErrInvalidAmount},
		{"unknown method", inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(1), Method: "barter"}, apperrors.ErrValidation},
		{"unknown invoice", "missing", dto.RecordPaymentRequest{Amount: decimal.NewFromInt(1), Method: domain.PaymentCash}, apperrors.ErrNotFound},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			payment, updated, err := suite.service.ApplyPayment(suite.ctx, tc.invoiceID, tc.req, "clerk")
			suite.Nil(payment)
			suite.Nil(updated)
			suite.ErrorIs(err, tc.wantErr)
		})
	}

	stored, err := suite.invoices.GetInvoice(suite.ctx, inv.InvoiceID)
	suite.Require().NoError(err)
	suite.True(stored.PaidAmount.IsZero(), "rejected payments leave the invoice untouched")
	suite.notifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_RevertsStatus() {
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	inv := suite.newInvoice("500", "2023-07-31")
	_, _, err := suite.pay(inv.InvoiceID, "300")
	suite.Require().NoError(err)
	second, updated, err := suite.pay(inv.InvoiceID, "200")
	suite.Require().NoError(err)
	suite.Require().Equal(domain.InvoicePaid, updated.Status)

	reverted, err := suite.service.DeletePayment(suite.ctx, second.PaymentID, "supervisor")
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceUnpaid, reverted.Status)
	suite.True(reverted.PaidAmount.Equal(decimal.NewFromInt(300)))
	suite.Equal("supervisor", reverted.UpdatedBy)

	_, err = suite.service.GetPayment(suite.ctx, second.PaymentID)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.DeletePayment(suite.ctx, second.PaymentID, "supervisor")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_PastDueFallsBackToOverdue() {
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	inv := suite.newInvoice("100", "2023-07-01")
	payment, updated, err := suite.pay(inv.InvoiceID, "100")
	suite.Require().NoError(err)
	suite.Require().Equal(domain.InvoicePaid, updated.Status)

	reverted, err := suite.service.DeletePayment(suite.ctx, payment.PaymentID, "supervisor")
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceOverdue, reverted.Status)
}

func (suite *PaymentServiceTestSuite) TestListPaymentsByInvoice() {
	suite.notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)
	inv := suite.newInvoice("500", "2023-07-31")
	_, _, err := suite.pay(inv.InvoiceID, "100")
	suite.Require().NoError(err)
	_, _, err = suite.pay(inv.InvoiceID, "50")
	suite.Require().NoError(err)

	payments, err := suite.service.ListPaymentsByInvoice(suite.ctx, inv.InvoiceID)
	suite.Require().NoError(err)
	suite.Len(payments, 2)
	suite.True(domain.SumPayments(payments).Equal(decimal.NewFromInt(150)))

	_, err = suite.service.ListPaymentsByInvoice(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NotificationOutlivesCancelledRequest() {
	inv := suite.newInvoice("500", "2023-07-31")
	ctx, cancel := context.WithCancel(suite.ctx)
	suite.notifier.On("Notify", mock.MatchedBy(func(c context.Context) bool {
		cancel()
		return c.Err() == nil
	}), mock.Anything).Return(nil).Once()

	_, _, err := suite.service.ApplyPayment(ctx, inv.InvoiceID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10),
		Method: domain.PaymentCash,
	}, "clerk")
	suite.Require().NoError(err)
	suite.notifier.AssertExpectations(suite.T())
}
