package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextInvoiceSequence advances the counter row of the period in a single statement.
// The row lock taken by the upsert serialises concurrent callers.
func (r *PgxSequenceRepository) NextInvoiceSequence(ctx context.Context, period domain.BillingPeriod) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (period_year, period_month, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (period_year, period_month)
		DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := r.Pool.QueryRow(ctx, query, period.Year, int(period.Month)).Scan(&next); err != nil {
		return 0, translateError(err, "failed to advance invoice sequence for "+period.String())
	}
	return next, nil
}
