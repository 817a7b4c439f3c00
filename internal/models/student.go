package models

// Student is a row of the students read model, fed by the student directory.
type Student struct {
	StudentRef string `db:"student_ref"`
	FullName   string `db:"full_name"`
	Status     string `db:"status"`
}
