package mapping

import (
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/SscSPs/fee_ledger/internal/models"
)

// ToModelAuditFields extracts the audit columns of a domain Invoice
func ToModelAuditFields(d domain.Invoice) models.AuditFields {
	return models.AuditFields{
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.UpdatedAt,
		LastUpdatedBy: d.UpdatedBy,
		Version:       d.Version,
	}
}

// applyAuditFields copies the audit columns onto a domain Invoice
func applyAuditFields(d *domain.Invoice, m models.AuditFields) {
	d.CreatedBy = m.CreatedBy
	d.UpdatedAt = m.LastUpdatedAt.UTC()
	d.UpdatedBy = m.LastUpdatedBy
	d.Version = m.Version
}
