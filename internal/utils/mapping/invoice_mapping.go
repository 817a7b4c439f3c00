package mapping

import (
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/SscSPs/fee_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		StudentRef:    d.StudentRef,
		Description:   d.Description,
		Amount:        d.Amount,
		PaidAmount:    d.PaidAmount,
		DueDate:       domain.DateOnly(d.DueDate),
		Status:        models.InvoiceStatus(d.Status),
		RemindedAt:    d.RemindedAt,
		IssuedAt:      d.IssuedAt,
		AuditFields:   ToModelAuditFields(d),
	}
	if d.BillingPeriod != nil {
		year := int16(d.BillingPeriod.Year)
		month := int16(d.BillingPeriod.Month)
		m.PeriodYear = &year
		m.PeriodMonth = &month
	}
	return m
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	d := domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		StudentRef:    m.StudentRef,
		Description:   m.Description,
		Amount:        m.Amount,
		PaidAmount:    m.PaidAmount,
		DueDate:       time.Date(m.DueDate.Year(), m.DueDate.Month(), m.DueDate.Day(), 0, 0, 0, 0, time.UTC),
		Status:        domain.InvoiceStatus(m.Status),
		IssuedAt:      m.IssuedAt.UTC(),
	}
	if m.RemindedAt != nil {
		reminded := m.RemindedAt.UTC()
		d.RemindedAt = &reminded
	}
	if m.PeriodYear != nil && m.PeriodMonth != nil {
		d.BillingPeriod = &domain.BillingPeriod{Year: int(*m.PeriodYear), Month: time.Month(*m.PeriodMonth)}
	}
	applyAuditFields(&d, m.AuditFields)
	return d
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
