package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"

	constraintInvoiceNumber = "invoices_invoice_number_key"
	constraintStudentPeriod = "invoices_student_period_key"
)

// translateError maps driver errors onto the application error taxonomy.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewAppError(404, msg, apperrors.ErrNotFound)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintInvoiceNumber:
				return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrDuplicateInvoiceNumber, pgErr.Detail)
			case constraintStudentPeriod:
				return fmt.Errorf("%s: %w: student already invoiced for the period", msg, apperrors.ErrDuplicate)
			default:
				return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrDuplicate, pgErr.Detail)
			}
		case sqlStateForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrReferentialConflict, pgErr.Detail)
		case sqlStateCheckViolation:
			return apperrors.NewAppError(400, msg+": "+pgErr.ConstraintName, apperrors.ErrValidation)
		}
	}
	return apperrors.NewAppError(500, msg, err)
}
