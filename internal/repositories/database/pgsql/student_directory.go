package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/fee_ledger/internal/apperrors"
	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/models"
	"github.com/SscSPs/fee_ledger/internal/utils/mapping"
)

// PgxStudentDirectory reads the students table, a read model kept in step with the student directory.
type PgxStudentDirectory struct {
	BaseRepository
}

// NewStudentDirectory creates a student directory backed by the students table.
func NewStudentDirectory(pool *pgxpool.Pool) portssvc.StudentDirectory {
	return &PgxStudentDirectory{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portssvc.StudentDirectory = (*PgxStudentDirectory)(nil)

// ListActiveStudents returns the refs of active students in ref order.
func (d *PgxStudentDirectory) ListActiveStudents(ctx context.Context) ([]string, error) {
	query := `
		SELECT student_ref, full_name, status
		FROM students
		WHERE status = $1
		ORDER BY student_ref;
	`
	rows, err := d.Pool.Query(ctx, query, string(domain.StudentActive))
	if err != nil {
		return nil, translateError(err, "failed to query active students")
	}
	defer rows.Close()

	refs := []string{}
	for rows.Next() {
		var m models.Student
		if err := rows.Scan(&m.StudentRef, &m.FullName, &m.Status); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan student row", err)
		}
		refs = append(refs, mapping.ToDomainStudent(m).StudentRef)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "error iterating student rows")
	}
	return refs, nil
}

// StudentExists reports whether the directory knows the student, active or not.
func (d *PgxStudentDirectory) StudentExists(ctx context.Context, studentRef string) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM students WHERE student_ref = $1);`, studentRef).Scan(&exists)
	if err != nil {
		return false, translateError(err, "failed to look up student "+studentRef)
	}
	return exists, nil
}
