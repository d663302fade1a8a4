package spap

import (
	"errors"
	"testing"
	"time"
)

func TestStudentPasswordHashing(t *testing.T) {
	var st Student
	if err := st.SetPassword("secure123"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}

	// the password must never be stored as plain text
	if string(st.PasswordHash) == "secure123" {
		t.Error("PasswordHash stores the plain text password")
	}
	if err := st.CheckPassword("secure123"); err != nil {
		t.Errorf("CheckPassword() with right password error = %v", err)
	}
	if err := st.CheckPassword("wrongpass"); err == nil {
		t.Error("CheckPassword() with wrong password error = nil")
	}
}

func TestCourseCodesUniquePerStudent(t *testing.T) {
	var st Student
	if err := st.AddCourse(Course{Code: "ECED3410", Name: "Digital Systems"}); err != nil {
		t.Fatalf("AddCourse() error = %v", err)
	}
	if err := st.AddCourse(Course{Code: "eced3410"}); !errors.Is(err, ErrCourseExists) {
		t.Errorf("AddCourse() duplicate error = %v, want %v", err, ErrCourseExists)
	}

	c, ok := st.Course("eced3410")
	if !ok {
		t.Fatal("Course() lookup is not case-insensitive")
	}
	if c.Name != "Digital Systems" {
		t.Errorf("Course().Name = %q, want %q", c.Name, "Digital Systems")
	}

	if err := st.RemoveCourse("ECED3410"); err != nil {
		t.Errorf("RemoveCourse() error = %v", err)
	}
	if err := st.RemoveCourse("ECED3410"); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("RemoveCourse() missing error = %v, want %v", err, ErrCourseNotFound)
	}
}

func TestAddTaskAssignsSequentialIDs(t *testing.T) {
	var c Course
	for i, title := range []string{"Lab 1", "Lab 2", "Lab 3"} {
		task := c.AddTask(Task{Title: title, Status: StatusTodo})
		if task.ID != i+1 {
			t.Errorf("AddTask() ID = %d, want %d", task.ID, i+1)
		}
	}

	if err := c.RemoveTask(2); err != nil {
		t.Fatalf("RemoveTask() error = %v", err)
	}
	if err := c.RemoveTask(2); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("RemoveTask() missing error = %v, want %v", err, ErrTaskNotFound)
	}

	// IDs are never reused after a deletion
	if task := c.AddTask(Task{Title: "Lab 4"}); task.ID != 4 {
		t.Errorf("AddTask() after removal ID = %d, want 4", task.ID)
	}

	got, ok := c.Task(3)
	if !ok || got.Title != "Lab 3" {
		t.Errorf("Task(3) = %+v, %v; want Lab 3", got, ok)
	}
}

func TestRecordSession(t *testing.T) {
	c := Course{Code: "ECED3410"}
	c.AddTask(Task{Title: "Lab 1", Status: StatusInProgress})

	if err := c.RecordSession(StudySession{TaskID: 1, Kind: KindStudy, Minutes: 25}); err != nil {
		t.Fatalf("RecordSession() error = %v", err)
	}
	task, _ := c.Task(1)
	if task.WorkMinutes != 25 {
		t.Errorf("WorkMinutes = %d, want 25", task.WorkMinutes)
	}

	// untasked time still counts toward the course
	if err := c.RecordSession(StudySession{Kind: KindReview, Minutes: 10}); err != nil {
		t.Fatalf("RecordSession() untasked error = %v", err)
	}
	if got := c.StudyMinutes(); got != 35 {
		t.Errorf("StudyMinutes() = %d, want 35", got)
	}

	if err := c.RecordSession(StudySession{TaskID: 99, Minutes: 5}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("RecordSession() unknown task error = %v, want %v", err, ErrTaskNotFound)
	}
	if len(c.Sessions) != 2 {
		t.Errorf("Sessions len = %d, want 2 (failed record must not append)", len(c.Sessions))
	}
}

func TestCompletionRatio(t *testing.T) {
	tests := []struct {
		name string
		c    Course
		want float64
	}{
		{name: "empty course", want: 0},
		{
			name: "half done",
			c: Course{Tasks: []Task{
				{ID: 1, Status: StatusDone},
				{ID: 2, Status: StatusTodo},
			}},
			want: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.CompletionRatio(); got != tt.want {
				t.Errorf("CompletionRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStudentFlattenedViews(t *testing.T) {
	st := Student{Courses: []Course{
		{
			Code:     "ECED3410",
			Tasks:    []Task{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
			Sessions: []StudySession{{Minutes: 10}},
		},
		{
			Code:     "CSCI2110",
			Tasks:    []Task{{ID: 1, Title: "C"}},
			Sessions: []StudySession{{Minutes: 20}, {Minutes: 30}},
		},
	}}

	tasks := st.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("Tasks() len = %d, want 3", len(tasks))
	}
	if tasks[0].Title != "A" || tasks[2].Title != "C" {
		t.Errorf("Tasks() order = %q..%q, want course order preserved", tasks[0].Title, tasks[2].Title)
	}
	if got := len(st.Sessions()); got != 3 {
		t.Errorf("Sessions() len = %d, want 3", got)
	}
}

func TestStudentDayView(t *testing.T) {
	due := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	st := Student{Courses: []Course{
		{
			Code: "ECED3410",
			Tasks: []Task{
				{ID: 1, Title: "Due that day", DueDate: due.Add(20 * time.Hour)},
				{ID: 2, Title: "Due later", DueDate: due.AddDate(0, 0, 1)},
				{ID: 3, Title: "No due date"},
			},
			Sessions: []StudySession{
				{StartedAt: due.Add(9 * time.Hour), Minutes: 30},
				{StartedAt: due.AddDate(0, 0, -1), Minutes: 45},
			},
		},
	}}

	day := st.Day(due)
	if len(day.TasksDue) != 1 || day.TasksDue[0].Title != "Due that day" {
		t.Errorf("TasksDue = %+v, want only the task due that day", day.TasksDue)
	}
	if len(day.Sessions) != 1 || day.Sessions[0].Minutes != 30 {
		t.Errorf("Sessions = %+v, want only the session started that day", day.Sessions)
	}
	if !day.Date.Equal(due) {
		t.Errorf("Date = %v, want %v", day.Date, due)
	}
}

func TestTaskStatus(t *testing.T) {
	tests := []struct {
		status TaskStatus
		want   string
		valid  bool
	}{
		{status: StatusTodo, want: "TODO", valid: true},
		{status: StatusInProgress, want: "IN PROGRESS", valid: true},
		{status: StatusDone, want: "DONE", valid: true},
		{status: 0, want: "UNKNOWN"},
		{status: 9, want: "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("TaskStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("TaskStatus(%d).Valid() = %v, want %v", tt.status, got, tt.valid)
		}
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2026, 3, 6, 14, 0, 0, 0, time.UTC)
	ss := StudySession{StartedAt: start, EndedAt: start.Add(95 * time.Minute), Minutes: 95}
	if got := ss.Duration(); got != 95*time.Minute {
		t.Errorf("Duration() = %v, want %v", got, 95*time.Minute)
	}
}
