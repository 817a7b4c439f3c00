package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveInvoiceStatus(t *testing.T) {
	amount := decimal.NewFromInt(500)
	due := date(2023, 7, 15)

	tests := []struct {
		name string
		paid decimal.Decimal
		now  time.Time
		want domain.InvoiceStatus
	}{
		{"nothing paid before due", decimal.Zero, date(2023, 6, 20), domain.InvoiceUnpaid},
		{"nothing paid on due date", decimal.Zero, due.Add(23 * time.Hour), domain.InvoiceUnpaid},
		{"nothing paid day after due", decimal.Zero, date(2023, 7, 16), domain.InvoiceOverdue},
		{"partial before due", decimal.NewFromInt(300), date(2023, 6, 20), domain.InvoiceUnpaid},
		{"partial after due", decimal.NewFromInt(300), date(2023, 8, 1), domain.InvoiceOverdue},
		{"exact cover", decimal.NewFromInt(500), date(2023, 8, 1), domain.InvoicePaid},
		{"overpaid", decimal.NewFromInt(650), date(2023, 6, 1), domain.InvoicePaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DeriveInvoiceStatus(amount, tt.paid, due, tt.now))
		})
	}
}

func TestInvoiceRecompute_PartialThenFull(t *testing.T) {
	inv := &domain.Invoice{
		Amount:  decimal.NewFromInt(500),
		DueDate: date(2023, 7, 15),
		Status:  domain.InvoiceUnpaid,
	}

	changed := inv.Recompute(decimal.NewFromInt(300), date(2023, 6, 20))
	assert.True(t, changed)
	assert.Equal(t, domain.InvoiceUnpaid, inv.Status)
	assert.True(t, inv.BalanceDue().Equal(decimal.NewFromInt(200)))

	inv.Recompute(decimal.NewFromInt(500), date(2023, 6, 25))
	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.True(t, inv.BalanceDue().IsZero())
	assert.True(t, inv.CreditAmount().IsZero())

	assert.False(t, inv.Recompute(decimal.NewFromInt(500), date(2023, 6, 26)))
}

func TestInvoiceNeedsReminder(t *testing.T) {
	reminded := date(2023, 7, 16)
	base := domain.Invoice{
		Amount:     decimal.NewFromInt(500),
		PaidAmount: decimal.Zero,
		DueDate:    date(2023, 7, 15),
		Status:     domain.InvoiceUnpaid,
	}
	now := date(2023, 7, 20)

	tests := []struct {
		name   string
		modify func(*domain.Invoice)
		want   bool
	}{
		{"unpaid past due", func(*domain.Invoice) {}, true},
		{"derived overdue without reminder", func(i *domain.Invoice) { i.Status = domain.InvoiceOverdue }, true},
		{"already reminded", func(i *domain.Invoice) {
			i.Status = domain.InvoiceOverdue
			i.RemindedAt = &reminded
		}, false},
		{"covered", func(i *domain.Invoice) {
			i.PaidAmount = decimal.NewFromInt(500)
			i.Status = domain.InvoicePaid
		}, false},
		{"due today", func(i *domain.Invoice) { i.DueDate = now }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := base
			tt.modify(&inv)
			assert.Equal(t, tt.want, inv.NeedsReminder(now))
		})
	}
}

func TestInvoiceRecompute_SettlementClearsReminder(t *testing.T) {
	reminded := date(2023, 7, 16)
	inv := &domain.Invoice{
		Amount:     decimal.NewFromInt(500),
		DueDate:    date(2023, 7, 15),
		Status:     domain.InvoiceOverdue,
		RemindedAt: &reminded,
	}

	inv.Recompute(decimal.NewFromInt(100), date(2023, 7, 20))
	assert.Equal(t, domain.InvoiceOverdue, inv.Status)
	assert.NotNil(t, inv.RemindedAt)

	inv.Recompute(decimal.NewFromInt(500), date(2023, 7, 21))
	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.Nil(t, inv.RemindedAt)
}

func TestInvoiceCreditAmount(t *testing.T) {
	inv := domain.Invoice{Amount: decimal.NewFromInt(500), PaidAmount: decimal.NewFromInt(620)}
	assert.True(t, inv.CreditAmount().Equal(decimal.NewFromInt(120)))
	assert.True(t, inv.BalanceDue().IsZero())
}

func TestInvoiceEffectiveStatus(t *testing.T) {
	inv := domain.Invoice{
		Amount:     decimal.NewFromInt(500),
		PaidAmount: decimal.Zero,
		DueDate:    date(2023, 7, 15),
		Status:     domain.InvoiceUnpaid,
	}
	assert.Equal(t, domain.InvoiceOverdue, inv.EffectiveStatus(date(2023, 7, 20)))
	assert.Equal(t, domain.InvoiceUnpaid, inv.Status)
}

func TestNumberingPeriod(t *testing.T) {
	period := domain.BillingPeriod{Year: 2023, Month: time.July}
	cycle := domain.Invoice{BillingPeriod: &period, IssuedAt: date(2023, 6, 28)}
	assert.Equal(t, period, cycle.NumberingPeriod())

	adhoc := domain.Invoice{IssuedAt: time.Date(2023, 9, 30, 23, 30, 0, 0, time.UTC)}
	assert.Equal(t, domain.BillingPeriod{Year: 2023, Month: time.September}, adhoc.NumberingPeriod())
}

func TestFormatInvoiceNumber(t *testing.T) {
	period := domain.BillingPeriod{Year: 2023, Month: time.July}
	assert.Equal(t, "INV-2023-07-001", domain.FormatInvoiceNumber(period, 1))
	assert.Equal(t, "INV-2023-07-042", domain.FormatInvoiceNumber(period, 42))
	assert.Equal(t, "INV-2023-07-1000", domain.FormatInvoiceNumber(period, 1000))
}

func TestBillingPeriod(t *testing.T) {
	assert.NoError(t, domain.BillingPeriod{Year: 2023, Month: time.July}.Validate())
	assert.Error(t, domain.BillingPeriod{Year: 2023, Month: 13}.Validate())
	assert.Error(t, domain.BillingPeriod{Year: 0, Month: time.January}.Validate())

	feb := domain.BillingPeriod{Year: 2023, Month: time.February}
	assert.Equal(t, date(2023, 2, 15), feb.DueDate(15))
	assert.Equal(t, date(2023, 2, 28), feb.DueDate(31))
	assert.Equal(t, "2023-02", feb.String())
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, domain.PaymentBankTransfer.IsValid())
	assert.False(t, domain.PaymentMethod("cheque").IsValid())
}

func TestSumPayments(t *testing.T) {
	payments := []domain.Payment{
		{Amount: decimal.NewFromInt(300)},
		{Amount: decimal.RequireFromString("199.99")},
	}
	assert.True(t, domain.SumPayments(payments).Equal(decimal.RequireFromString("499.99")))
	assert.True(t, domain.SumPayments(nil).IsZero())
}
