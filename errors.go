package spap

import "errors"

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentExists   = errors.New("a student with this email already exists")
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseExists    = errors.New("a course with this code already exists")
	ErrTaskNotFound    = errors.New("task not found")
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries per-field messages for rejected user input.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}
