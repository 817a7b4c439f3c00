package domain

// StudentStatus mirrors the enrolment state kept by the student directory.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// Student is the ledger's read-only view of a directory entry.
type Student struct {
	StudentRef string        `json:"studentRef"`
	FullName   string        `json:"fullName"`
	Status     StudentStatus `json:"status"`
}
