package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		InvoiceRepo:   newPgxInvoiceRepository(dbPool),
		PaymentRepo:   newPgxPaymentRepository(dbPool),
		SequenceRepo:  newPgxSequenceRepository(dbPool),
		OverdueRepo:   newPgxOverdueRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
