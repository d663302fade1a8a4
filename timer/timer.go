// Package timer tracks running study sessions, at most one per course.
package timer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cinemadrums/spap"
)

var (
	ErrSessionRunning  = errors.New("a study session is already running for this course")
	ErrNoActiveSession = errors.New("no study session is running for this course")
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

type activeSession struct {
	id        uuid.UUID
	taskID    int
	kind      spap.SessionKind
	startedAt time.Time
}

// Controller holds the running sessions in memory only. Nothing is persisted
// until Stop returns a finalized StudySession and the caller records it.
type Controller struct {
	l      spap.Logger
	active map[string]activeSession
}

func NewController(logger spap.Logger) *Controller {
	return &Controller{
		l:      logger,
		active: make(map[string]activeSession),
	}
}

// Start begins a session for the course. taskID may be 0 when the time is not
// spent on a particular task; an empty kind defaults to KindStudy. Starting a
// course that already has a running session fails without touching it.
func (c *Controller) Start(courseCode string, taskID int, kind spap.SessionKind) error {
	key := sessionKey(courseCode)
	if _, ok := c.active[key]; ok {
		return ErrSessionRunning
	}

	if kind == "" {
		kind = spap.KindStudy
	}
	c.active[key] = activeSession{
		id:        uuid.New(),
		taskID:    taskID,
		kind:      kind,
		startedAt: nowFunc(),
	}
	c.l.Debug("session started", "course", key, "task", taskID, "kind", kind)
	return nil
}

// Stop finalizes the course's running session and returns it. Whole minutes
// only; a session under a minute counts as zero.
func (c *Controller) Stop(courseCode string) (spap.StudySession, error) {
	key := sessionKey(courseCode)
	a, ok := c.active[key]
	if !ok {
		return spap.StudySession{}, ErrNoActiveSession
	}
	delete(c.active, key)

	endedAt := nowFunc()
	sess := spap.StudySession{
		ID:        a.id,
		TaskID:    a.taskID,
		Kind:      a.kind,
		StartedAt: a.startedAt,
		EndedAt:   endedAt,
		Minutes:   int(endedAt.Sub(a.startedAt).Seconds()) / 60,
	}
	c.l.Debug("session stopped", "course", key, "minutes", sess.Minutes)
	return sess, nil
}

// Discard drops the course's running session without recording it. Used when
// the course itself goes away mid-session.
func (c *Controller) Discard(courseCode string) {
	delete(c.active, sessionKey(courseCode))
}

// Reset discards every running session. Used at logout so a later login
// cannot stop or inherit another account's timers.
func (c *Controller) Reset() {
	if len(c.active) == 0 {
		return
	}
	c.l.Debug("sessions discarded", "count", len(c.active))
	c.active = make(map[string]activeSession)
}

// Active reports whether a session is running for the course and when it
// started.
func (c *Controller) Active(courseCode string) (time.Time, bool) {
	a, ok := c.active[sessionKey(courseCode)]
	return a.startedAt, ok
}

// Task reports the task id the course's running session is pinned to. A
// course-only session reports 0.
func (c *Controller) Task(courseCode string) (int, bool) {
	a, ok := c.active[sessionKey(courseCode)]
	return a.taskID, ok
}

func sessionKey(courseCode string) string {
	return strings.ToUpper(strings.TrimSpace(courseCode))
}
