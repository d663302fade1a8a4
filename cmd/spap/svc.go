package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/cinemadrums/spap"
	"github.com/cinemadrums/spap/analytics"
	"github.com/cinemadrums/spap/timer"
)

var errInvalidLogin = errors.New("invalid email or password")

// StudentSvc is everything the screens call. Mutating operations change the
// passed-in student and persist through the store when autosave is on; Save
// always writes.
type StudentSvc interface {
	Register(spap.RegisterStudent) (spap.Student, error)
	Login(spap.Credentials) (spap.Student, error)

	AddCourse(*spap.Student, spap.NewCourse) (spap.Course, error)
	RemoveCourse(*spap.Student, string) error
	AddTask(*spap.Student, spap.NewTask) (spap.Task, error)
	UpdateTaskStatus(*spap.Student, spap.UpdateTaskStatus) (spap.Task, error)
	RemoveTask(st *spap.Student, courseCode string, taskID int) error

	StartSession(st *spap.Student, courseCode string, taskID int, kind spap.SessionKind) (time.Time, error)
	StopSession(st *spap.Student, courseCode string) (spap.StudySession, error)
	Active(courseCode string) (time.Time, bool)

	Report(spap.Student) analytics.Report
	Recommend(spap.Student) (*spap.Task, string)
	Save(spap.Student) error
	Logout(spap.Student) error
}

// impl
type studentSvc struct {
	store    spap.Store
	ctrl     *timer.Controller
	weights  analytics.Weights
	autosave bool
	l        spap.Logger
	now      func() time.Time
}

func NewStudentSvc(store spap.Store, ctrl *timer.Controller, weights analytics.Weights, autosave bool, logger spap.Logger) StudentSvc {
	return &studentSvc{
		store:    store,
		ctrl:     ctrl,
		weights:  weights,
		autosave: autosave,
		l:        logger,
		now:      time.Now,
	}
}

func (s *studentSvc) Register(req spap.RegisterStudent) (spap.Student, error) {
	if err := req.Validate(s.store); err != nil {
		return spap.Student{}, err
	}

	st := spap.Student{
		ID:        req.StudentID,
		Email:     req.Email,
		CreatedAt: s.now(),
	}
	if err := st.SetPassword(req.Password); err != nil {
		return spap.Student{}, fmt.Errorf("hashing password: %w", err)
	}

	created, err := s.store.AddStudent(st)
	if err != nil {
		return spap.Student{}, err
	}
	s.l.Info("registered student", "email", created.Email)
	return created, nil
}

func (s *studentSvc) Login(creds spap.Credentials) (spap.Student, error) {
	if err := creds.Validate(); err != nil {
		return spap.Student{}, err
	}

	st, err := s.store.GetStudent(creds.Email)
	if err != nil {
		if errors.Is(err, spap.ErrStudentNotFound) {
			return spap.Student{}, errInvalidLogin
		}
		return spap.Student{}, err
	}
	if err := st.CheckPassword(creds.Password); err != nil {
		return spap.Student{}, errInvalidLogin
	}

	s.l.Info("student logged in", "email", st.Email)
	return st, nil
}

func (s *studentSvc) AddCourse(st *spap.Student, nc spap.NewCourse) (spap.Course, error) {
	if err := nc.Validate(); err != nil {
		return spap.Course{}, err
	}

	course := spap.Course{
		Code:      nc.Code,
		Name:      nc.Name,
		CreatedAt: s.now(),
	}
	if err := st.AddCourse(course); err != nil {
		return spap.Course{}, err
	}
	return course, s.persist(*st)
}

func (s *studentSvc) RemoveCourse(st *spap.Student, code string) error {
	// a running timer must not outlive its course
	s.ctrl.Discard(code)
	if err := st.RemoveCourse(code); err != nil {
		return err
	}
	return s.persist(*st)
}

func (s *studentSvc) AddTask(st *spap.Student, nt spap.NewTask) (spap.Task, error) {
	if err := nt.Validate(); err != nil {
		return spap.Task{}, err
	}

	course, ok := st.Course(nt.CourseCode)
	if !ok {
		return spap.Task{}, spap.ErrCourseNotFound
	}

	task := course.AddTask(spap.Task{
		Title:         nt.Title,
		AssignedOn:    s.now(),
		DueDate:       nt.Due(),
		WeightPercent: nt.WeightPercent,
		Status:        spap.StatusTodo,
	})
	return task, s.persist(*st)
}

func (s *studentSvc) UpdateTaskStatus(st *spap.Student, u spap.UpdateTaskStatus) (spap.Task, error) {
	if err := u.Validate(); err != nil {
		return spap.Task{}, err
	}

	course, ok := st.Course(u.CourseCode)
	if !ok {
		return spap.Task{}, spap.ErrCourseNotFound
	}
	task, ok := course.Task(u.TaskID)
	if !ok {
		return spap.Task{}, spap.ErrTaskNotFound
	}

	task.Status = u.Status
	return *task, s.persist(*st)
}

func (s *studentSvc) RemoveTask(st *spap.Student, courseCode string, taskID int) error {
	course, ok := st.Course(courseCode)
	if !ok {
		return spap.ErrCourseNotFound
	}
	if err := course.RemoveTask(taskID); err != nil {
		return err
	}
	// a session pinned to the task could never be recorded anymore
	if pinned, ok := s.ctrl.Task(course.Code); ok && pinned == taskID {
		s.ctrl.Discard(course.Code)
	}
	return s.persist(*st)
}

// StartSession begins a timer for the course. Nothing is persisted until the
// session is stopped; a failed start leaves both the timer and the student
// untouched.
func (s *studentSvc) StartSession(st *spap.Student, courseCode string, taskID int, kind spap.SessionKind) (time.Time, error) {
	course, ok := st.Course(courseCode)
	if !ok {
		return time.Time{}, spap.ErrCourseNotFound
	}
	if taskID != 0 {
		if _, ok := course.Task(taskID); !ok {
			return time.Time{}, spap.ErrTaskNotFound
		}
	}

	if err := s.ctrl.Start(course.Code, taskID, kind); err != nil {
		return time.Time{}, err
	}
	startedAt, _ := s.ctrl.Active(course.Code)
	return startedAt, nil
}

// StopSession finalizes the course's running session and records it on the
// student. Stopping destroys the interval, so anything that could make the
// recording fail is checked first; on error the session is left running.
func (s *studentSvc) StopSession(st *spap.Student, courseCode string) (spap.StudySession, error) {
	course, ok := st.Course(courseCode)
	if !ok {
		return spap.StudySession{}, spap.ErrCourseNotFound
	}
	if pinned, ok := s.ctrl.Task(course.Code); ok && pinned != 0 {
		if _, ok := course.Task(pinned); !ok {
			return spap.StudySession{}, spap.ErrTaskNotFound
		}
	}

	sess, err := s.ctrl.Stop(course.Code)
	if err != nil {
		return spap.StudySession{}, err
	}
	if err := course.RecordSession(sess); err != nil {
		return spap.StudySession{}, err
	}
	s.l.Debug("session recorded", "course", course.Code, "minutes", sess.Minutes)
	return sess, s.persist(*st)
}

func (s *studentSvc) Active(courseCode string) (time.Time, bool) {
	return s.ctrl.Active(courseCode)
}

func (s *studentSvc) Report(st spap.Student) analytics.Report {
	return analytics.NewReport(st, s.weights)
}

func (s *studentSvc) Recommend(st spap.Student) (*spap.Task, string) {
	return analytics.Recommend(st)
}

// Save writes the student regardless of the autosave setting. Quitting goes
// through here.
func (s *studentSvc) Save(st spap.Student) error {
	return s.store.PutStudent(st)
}

// Logout saves like Save does, then discards any timers the student left
// running. The controller outlives the login, so a later account with the
// same course codes would otherwise inherit them.
func (s *studentSvc) Logout(st spap.Student) error {
	if err := s.store.PutStudent(st); err != nil {
		return err
	}
	s.ctrl.Reset()
	return nil
}

func (s *studentSvc) persist(st spap.Student) error {
	if !s.autosave {
		return nil
	}
	return s.store.PutStudent(st)
}
