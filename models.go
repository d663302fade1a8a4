package spap

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TaskStatus is the lifecycle state of a Task. The numeric values are part of
// the persisted format, so they must not be reordered.
type TaskStatus int

const (
	StatusTodo TaskStatus = iota + 1
	StatusInProgress
	StatusDone
)

func (s TaskStatus) String() string {
	switch s {
	case StatusTodo:
		return "TODO"
	case StatusInProgress:
		return "IN PROGRESS"
	case StatusDone:
		return "DONE"
	}
	return "UNKNOWN"
}

func (s TaskStatus) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

// SessionKind labels what a study session was spent on.
type SessionKind string

const (
	KindStudy  SessionKind = "study"
	KindReview SessionKind = "review"
)

// Student is the root of the model graph. Tasks and sessions live on the
// course that owns them; the student-level accessors are computed views.
type Student struct {
	ID           string    `json:"student_id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Courses      []Course  `json:"courses"`
}

func (s *Student) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = hash
	return nil
}

func (s *Student) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(s.PasswordHash, []byte(pwd))
}

// Course returns a pointer into the course list so callers can mutate the
// matched course in place. Codes are matched case-insensitively.
func (s *Student) Course(code string) (*Course, bool) {
	for i := range s.Courses {
		if strings.EqualFold(s.Courses[i].Code, code) {
			return &s.Courses[i], true
		}
	}
	return nil, false
}

func (s *Student) AddCourse(c Course) error {
	if _, ok := s.Course(c.Code); ok {
		return ErrCourseExists
	}
	s.Courses = append(s.Courses, c)
	return nil
}

func (s *Student) RemoveCourse(code string) error {
	for i := range s.Courses {
		if strings.EqualFold(s.Courses[i].Code, code) {
			s.Courses = append(s.Courses[:i], s.Courses[i+1:]...)
			return nil
		}
	}
	return ErrCourseNotFound
}

// Tasks flattens every course's task list, preserving course order.
func (s *Student) Tasks() []Task {
	var tasks []Task
	for i := range s.Courses {
		tasks = append(tasks, s.Courses[i].Tasks...)
	}
	return tasks
}

// Sessions flattens every course's session list, preserving course order.
func (s *Student) Sessions() []StudySession {
	var sessions []StudySession
	for i := range s.Courses {
		sessions = append(sessions, s.Courses[i].Sessions...)
	}
	return sessions
}

// Day builds the derived view for one calendar date: tasks due that day and
// sessions started that day, across all courses.
func (s *Student) Day(date time.Time) Day {
	d := Day{Date: date}
	for _, t := range s.Tasks() {
		if t.HasDueDate() && sameDay(t.DueDate, date) {
			d.TasksDue = append(d.TasksDue, t)
		}
	}
	for _, ss := range s.Sessions() {
		if sameDay(ss.StartedAt, date) {
			d.Sessions = append(d.Sessions, ss)
		}
	}
	return d
}

// Course owns its tasks and study sessions; neither exists outside a course.
type Course struct {
	Code      string         `json:"code"`
	Name      string         `json:"name,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Tasks     []Task         `json:"tasks"`
	Sessions  []StudySession `json:"sessions"`
}

// Task returns a pointer into the task list for in-place mutation.
func (c *Course) Task(id int) (*Task, bool) {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return &c.Tasks[i], true
		}
	}
	return nil, false
}

// AddTask assigns the next free ID, appends the task and returns the stored
// copy. IDs are never reused after a deletion.
func (c *Course) AddTask(t Task) Task {
	t.ID = c.nextTaskID()
	c.Tasks = append(c.Tasks, t)
	return t
}

func (c *Course) nextTaskID() int {
	next := 1
	for _, t := range c.Tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

func (c *Course) RemoveTask(id int) error {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

// RecordSession appends a finalized session and credits its minutes to the
// task it was spent on, if any.
func (c *Course) RecordSession(ss StudySession) error {
	if ss.TaskID != 0 {
		t, ok := c.Task(ss.TaskID)
		if !ok {
			return ErrTaskNotFound
		}
		t.WorkMinutes += ss.Minutes
	}
	c.Sessions = append(c.Sessions, ss)
	return nil
}

// StudyMinutes totals the recorded session minutes for the course.
func (c *Course) StudyMinutes() int {
	var total int
	for _, ss := range c.Sessions {
		total += ss.Minutes
	}
	return total
}

func (c *Course) CompletedTasks() int {
	var n int
	for _, t := range c.Tasks {
		if t.Done() {
			n++
		}
	}
	return n
}

// CompletionRatio is completed tasks over all tasks, 0 for an empty course.
func (c *Course) CompletionRatio() float64 {
	if len(c.Tasks) == 0 {
		return 0
	}
	return float64(c.CompletedTasks()) / float64(len(c.Tasks))
}

// Task is a graded piece of course work. WorkMinutes accumulates the study
// time recorded against it.
type Task struct {
	ID            int        `json:"id"`
	Title         string     `json:"title"`
	AssignedOn    time.Time  `json:"assigned_on"`
	DueDate       time.Time  `json:"due_date,omitzero"`
	WeightPercent float64    `json:"weight_percent"`
	PointsEarned  float64    `json:"points_earned"`
	WorkMinutes   int        `json:"work_minutes"`
	Status        TaskStatus `json:"status"`
}

func (t Task) Done() bool {
	return t.Status == StatusDone
}

// HasDueDate reports whether a due date was set; the zero time means none.
func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// StudySession is a finalized timed interval attributed to one course.
// Sessions are immutable once built; the controller is the only producer.
type StudySession struct {
	ID        uuid.UUID   `json:"id"`
	TaskID    int         `json:"task_id,omitempty"`
	Kind      SessionKind `json:"kind"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   time.Time   `json:"ended_at"`
	Minutes   int         `json:"minutes"`
}

func (ss StudySession) Duration() time.Duration {
	return ss.EndedAt.Sub(ss.StartedAt)
}

// Day is a derived calendar view; it is never persisted on its own.
type Day struct {
	Date     time.Time
	TasksDue []Task
	Sessions []StudySession
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
