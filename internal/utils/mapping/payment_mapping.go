package mapping

import (
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/SscSPs/fee_ledger/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	m := models.Payment{
		PaymentID:  d.PaymentID,
		InvoiceID:  d.InvoiceID,
		Amount:     d.Amount,
		Method:     string(d.Method),
		RecordedAt: d.RecordedAt,
		RecordedBy: d.RecordedBy,
	}
	if d.ReferenceNumber != "" {
		ref := d.ReferenceNumber
		m.ReferenceNumber = &ref
	}
	return m
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	d := domain.Payment{
		PaymentID:  m.PaymentID,
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
		Method:     domain.PaymentMethod(m.Method),
		RecordedAt: m.RecordedAt.UTC(),
		RecordedBy: m.RecordedBy,
	}
	if m.ReferenceNumber != nil {
		d.ReferenceNumber = *m.ReferenceNumber
	}
	return d
}

// ToDomainStudent converts a students row to a domain Student
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentRef: m.StudentRef,
		FullName:   m.FullName,
		Status:     domain.StudentStatus(m.Status),
	}
}
