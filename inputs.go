package spap

import (
	"strings"
	"time"
)

// DueDateFormat is the layout users type due dates in.
const DueDateFormat = "2006-01-02"

// RegisterStudent contains the information needed to create an account.
type RegisterStudent struct {
	Email     string `json:"email" validate:"required,email"`
	StudentID string `json:"student_id" validate:"required,alphanum"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Validate cleans the input in place and checks the email is not taken.
func (r *RegisterStudent) Validate(store Store) error {
	r.Email = CleanString(r.Email, true)
	r.StudentID = strings.ToUpper(CleanString(r.StudentID))

	if err := Validate.Struct(r); err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	switch _, err := store.GetStudent(r.Email); err {
	case ErrStudentNotFound:
		return nil
	case nil:
		return NewValidationError(ErrStudentExists, FieldError{Field: "email", Error: ErrStudentExists.Error()})
	default:
		return err
	}
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = CleanString(c.Email, true)
	return Validate.Struct(c)
}

// NewCourse contains the information needed to add a course.
type NewCourse struct {
	Code string `json:"code" validate:"required,coursecode,max=16"`
	Name string `json:"name" validate:"omitempty,max=80"`
}

func (nc *NewCourse) Validate() error {
	nc.Code = strings.ToUpper(CleanString(nc.Code))
	nc.Name = CleanString(nc.Name)
	return Validate.Struct(nc)
}

// NewTask contains the information needed to add a task to a course.
// An empty or "TBD" due date means no due date, as typed in the menu.
type NewTask struct {
	CourseCode    string  `json:"course" validate:"required,coursecode"`
	Title         string  `json:"title" validate:"required,max=120"`
	DueDate       string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	WeightPercent float64 `json:"weight_percent" validate:"gte=0,lte=100"`
}

func (nt *NewTask) Validate() error {
	nt.CourseCode = strings.ToUpper(CleanString(nt.CourseCode))
	nt.Title = CleanString(nt.Title)
	nt.DueDate = CleanString(nt.DueDate)
	if strings.EqualFold(nt.DueDate, "TBD") {
		nt.DueDate = ""
	}
	return Validate.Struct(nt)
}

// Due returns the parsed due date, or the zero time when none was given.
// Call after Validate has vetted the layout.
func (nt NewTask) Due() time.Time {
	if nt.DueDate == "" {
		return time.Time{}
	}
	due, err := time.Parse(DueDateFormat, nt.DueDate)
	if err != nil {
		return time.Time{}
	}
	return due
}

// UpdateTaskStatus moves a task to a new lifecycle state.
type UpdateTaskStatus struct {
	CourseCode string     `json:"course" validate:"required,coursecode"`
	TaskID     int        `json:"task_id" validate:"required,gt=0"`
	Status     TaskStatus `json:"status" validate:"taskstatus"`
}

func (u *UpdateTaskStatus) Validate() error {
	u.CourseCode = strings.ToUpper(CleanString(u.CourseCode))
	return Validate.Struct(u)
}
