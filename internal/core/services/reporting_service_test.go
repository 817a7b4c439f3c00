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

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
	from     time.Time
	to       time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
	suite.from = time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2023, 7, 31, 23, 59, 59, 0, time.UTC)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_Totals() {
	ctx := context.Background()
	asOf := time.Date(2023, 8, 2, 10, 0, 0, 0, time.UTC)
	suite.mockRepo.On("GetFinancialReportData", ctx, suite.from, suite.to).Return(&domain.FinancialReportData{
		AsOf: asOf,
		ByStatus: []domain.StatusBreakdown{
			{Status: domain.InvoiceOverdue, Count: 2, Invoiced: decimal.NewFromInt(1000), Paid: decimal.NewFromInt(100), Outstanding: decimal.NewFromInt(900), Credit: decimal.Zero},
			{Status: domain.InvoicePaid, Count: 1, Invoiced: decimal.NewFromInt(500), Paid: decimal.NewFromInt(550), Outstanding: decimal.Zero, Credit: decimal.NewFromInt(50)},
		},
		ByMethod: []domain.MethodBreakdown{
			{Method: domain.PaymentBankTransfer, Count: 1, Amount: decimal.NewFromInt(550)},
			{Method: domain.PaymentCash, Count: 2, Amount: decimal.NewFromInt(100)},
		},
	}, nil).Once()

	report, err := suite.service.FinancialReport(ctx, suite.from, suite.to)
	suite.Require().NoError(err)
	suite.Equal(asOf, report.AsOf)
	suite.Equal(3, report.InvoiceCount)
	suite.True(report.TotalInvoiced.Equal(decimal.NewFromInt(1500)))
	suite.True(report.TotalOutstanding.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(50)))
	suite.Equal(3, report.PaymentCount)
	suite.True(report.TotalCollected.Equal(decimal.NewFromInt(650)))
	suite.Len(report.ByStatus, 2)
	suite.Len(report.ByMethod, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_EmptyWindow() {
	ctx := context.Background()
	suite.mockRepo.On("GetFinancialReportData", ctx, suite.from, suite.to).Return(&domain.FinancialReportData{AsOf: suite.to}, nil).Once()

	report, err := suite.service.FinancialReport(ctx, suite.from, suite.to)
	suite.Require().NoError(err)
	suite.Equal(0, report.InvoiceCount)
	suite.True(report.TotalCollected.IsZero())
	suite.NotNil(report.ByStatus)
	suite.NotNil(report.ByMethod)
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_InvertedWindow() {
	report, err := suite.service.FinancialReport(context.Background(), suite.to, suite.from)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetFinancialReportData", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_RepositoryError() {
	ctx := context.Background()
	suite.mockRepo.On("GetFinancialReportData", ctx, suite.from, suite.to).Return(nil, assert.AnError).Once()

	report, err := suite.service.FinancialReport(ctx, suite.from, suite.to)
	suite.Nil(report)
	suite.ErrorIs(err, assert.AnError)
}

// The report reads one snapshot: payments recorded through the service show up in both
// the status and the method breakdowns.
func TestFinancialReport_MemoryStoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 7, 20, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore(memory.WithClock(fixedClock(now)))
	students := memory.NewStudentDirectory(domain.Student{StudentRef: "stu-1", Status: domain.StudentActive})
	invoices := services.NewInvoiceService(store, services.NewInvoiceNumberAllocator(store), students, services.WithInvoiceClock(fixedClock(now)))
	payments := services.NewPaymentService(store, store, &RecordingNotifier{}, services.WithPaymentClock(fixedClock(now)))

	inv, err := invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{StudentRef: "stu-1", Amount: decimal.NewFromInt(500), DueDate: "2023-07-31"}, "clerk")
	if !assert.NoError(t, err) {
		return
	}
	_, _, err = payments.ApplyPayment(ctx, inv.InvoiceID, dto.RecordPaymentRequest{Amount: decimal.NewFromInt(300), Method: domain.PaymentCash}, "clerk")
	assert.NoError(t, err)

	report, err := services.NewReportingService(store).FinancialReport(ctx,
		time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 7, 31, 23, 59, 59, 0, time.UTC))
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 1, report.InvoiceCount)
	assert.True(t, report.TotalOutstanding.Equal(decimal.NewFromInt(200)))
	assert.True(t, report.TotalCollected.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, now, report.AsOf)
}
