package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
)

func TestInvoiceMapping_BillingPeriod(t *testing.T) {
	issued := time.Date(2023, 7, 1, 6, 0, 0, 0, time.UTC)
	cycle := domain.Invoice{
		InvoiceID:     "i1",
		InvoiceNumber: "INV-2023-07-001",
		StudentRef:    "stu-1",
		Amount:        decimal.NewFromInt(500),
		PaidAmount:    decimal.Zero,
		BillingPeriod: &domain.BillingPeriod{Year: 2023, Month: time.July},
		DueDate:       time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:        domain.InvoiceUnpaid,
		IssuedAt:      issued,
		UpdatedAt:     issued,
		CreatedBy:     "admin",
		UpdatedBy:     "admin",
		Version:       1,
	}

	m := ToModelInvoice(cycle)
	require.NotNil(t, m.PeriodYear)
	require.NotNil(t, m.PeriodMonth)
	assert.Equal(t, int16(2023), *m.PeriodYear)
	assert.Equal(t, int16(7), *m.PeriodMonth)
	assert.Equal(t, "admin", m.LastUpdatedBy)

	assert.Equal(t, cycle, ToDomainInvoice(m))

	adHoc := cycle
	adHoc.BillingPeriod = nil
	m = ToModelInvoice(adHoc)
	assert.Nil(t, m.PeriodYear)
	assert.Nil(t, m.PeriodMonth)
	assert.Nil(t, ToDomainInvoice(m).BillingPeriod)
}

func TestToDomainInvoice_DueDateIsUTCCalendarDay(t *testing.T) {
	// DATE columns can come back in the session time zone
	local := time.FixedZone("UTC+5", 5*3600)
	m := ToModelInvoice(domain.Invoice{InvoiceID: "x", Amount: decimal.NewFromInt(1), PaidAmount: decimal.Zero})
	m.DueDate = time.Date(2023, 7, 15, 0, 0, 0, 0, local)
	d := ToDomainInvoice(m)
	assert.Equal(t, time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC), d.DueDate)
}

func TestInvoiceMapping_RemindedAt(t *testing.T) {
	reminded := time.Date(2023, 7, 20, 14, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	m := ToModelInvoice(domain.Invoice{InvoiceID: "x", Amount: decimal.NewFromInt(1), PaidAmount: decimal.Zero})
	assert.Nil(t, m.RemindedAt)
	assert.Nil(t, ToDomainInvoice(m).RemindedAt)

	m.RemindedAt = &reminded
	d := ToDomainInvoice(m)
	require.NotNil(t, d.RemindedAt)
	assert.Equal(t, time.UTC, d.RemindedAt.Location())
	assert.True(t, reminded.Equal(*d.RemindedAt))
}

func TestPaymentMapping_ReferenceNumber(t *testing.T) {
	p := domain.Payment{PaymentID: "p1", InvoiceID: "i1", Amount: decimal.NewFromInt(5), Method: domain.PaymentCash}
	m := ToModelPayment(p)
	assert.Nil(t, m.ReferenceNumber)

	p.ReferenceNumber = "RCPT-9"
	m = ToModelPayment(p)
	require.NotNil(t, m.ReferenceNumber)
	assert.Equal(t, "RCPT-9", ToDomainPayment(m).ReferenceNumber)
}
