package spap

// Store persists the full student graph. Implementations load everything at
// open time, hold the graph in memory and write the whole document back on
// each save; there is no partial update at this scale.
type Store interface {
	// Students returns every persisted student.
	Students() ([]Student, error)
	// GetStudent looks a student up by email. Returns ErrStudentNotFound.
	GetStudent(email string) (Student, error)
	// AddStudent appends a new student and saves. Returns ErrStudentExists
	// when the email is already taken.
	AddStudent(Student) (Student, error)
	// PutStudent replaces the stored student with the same email and saves.
	PutStudent(Student) error
	// DeleteStudent removes a student by email and saves.
	DeleteStudent(email string) error
	// Save writes the current graph to disk unconditionally.
	Save() error
	// Close flushes the graph and releases the store.
	Close() error
}
