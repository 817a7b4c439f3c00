package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
)

// StudentDirectory is an in-process student directory for development and tests.
type StudentDirectory struct {
	mu       sync.RWMutex
	students map[string]domain.Student
}

// NewStudentDirectory creates a directory seeded with the given students.
func NewStudentDirectory(students ...domain.Student) *StudentDirectory {
	d := &StudentDirectory{students: make(map[string]domain.Student, len(students))}
	for _, st := range students {
		d.students[st.StudentRef] = st
	}
	return d
}

var _ portssvc.StudentDirectory = (*StudentDirectory)(nil)

// Put adds or replaces a student.
func (d *StudentDirectory) Put(student domain.Student) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.students[student.StudentRef] = student
}

// ListActiveStudents returns the refs of active students in ascending order.
func (d *StudentDirectory) ListActiveStudents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	refs := make([]string, 0, len(d.students))
	for ref, st := range d.students {
		if st.Status == domain.StudentActive {
			refs = append(refs, ref)
		}
	}
	sort.Strings(refs)
	return refs, nil
}

// StudentExists reports whether ref is known, active or not.
func (d *StudentDirectory) StudentExists(ctx context.Context, studentRef string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.students[studentRef]
	return ok, nil
}
