package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cinemadrums/spap"
	"github.com/cinemadrums/spap/charmlog"
)

func testLogger() spap.Logger {
	return charmlog.NewLogger(charmlog.Options{Writer: io.Discard})
}

func testStudent(email string) spap.Student {
	now := time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC)
	return spap.Student{
		ID:        "B00123456",
		Email:     email,
		CreatedAt: now,
		Courses: []spap.Course{
			{
				Code:      "ECED3410",
				Name:      "Digital Systems",
				CreatedAt: now,
				Tasks: []spap.Task{
					{
						ID:            1,
						Title:         "Lab 1",
						AssignedOn:    now,
						DueDate:       now.AddDate(0, 0, 7),
						WeightPercent: 10,
						PointsEarned:  85,
						WorkMinutes:   90,
						Status:        spap.StatusDone,
					},
				},
				Sessions: []spap.StudySession{
					{
						ID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
						TaskID:    1,
						Kind:      spap.KindStudy,
						StartedAt: now,
						EndedAt:   now.Add(90 * time.Minute),
						Minutes:   90,
					},
				},
			},
		},
	}
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "spap.json")

	store, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	students, err := store.Students()
	if err != nil {
		t.Fatalf("Students() error = %v", err)
	}
	if len(students) != 0 {
		t.Errorf("Students() len = %d, want 0", len(students))
	}

	// an empty document should have been written
	if _, err := os.Stat(path); err != nil {
		t.Errorf("data file was not created: %v", err)
	}
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spap.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	students, err := store.Students()
	if err != nil {
		t.Fatalf("Students() error = %v", err)
	}
	if len(students) != 0 {
		t.Errorf("Students() len = %d, want 0", len(students))
	}

	// the next save replaces the malformed file with a valid one
	if _, err := store.AddStudent(testStudent("a@test.test")); err != nil {
		t.Fatalf("AddStudent() error = %v", err)
	}
	reopened, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetStudent("a@test.test"); err != nil {
		t.Errorf("GetStudent() after reopen error = %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spap.json")

	store, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	st := testStudent("roundtrip@test.test")
	if err := st.SetPassword("hunter22"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddStudent(st); err != nil {
		t.Fatalf("AddStudent() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetStudent("roundtrip@test.test")
	if err != nil {
		t.Fatalf("GetStudent() error = %v", err)
	}
	if got.ID != st.ID {
		t.Errorf("ID = %q, want %q", got.ID, st.ID)
	}
	if !got.CreatedAt.Equal(st.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, st.CreatedAt)
	}
	if err := got.CheckPassword("hunter22"); err != nil {
		t.Errorf("CheckPassword() after round trip error = %v", err)
	}
	if len(got.Courses) != 1 {
		t.Fatalf("Courses len = %d, want 1", len(got.Courses))
	}

	course := got.Courses[0]
	want := st.Courses[0]
	if course.Code != want.Code || course.Name != want.Name {
		t.Errorf("course = %q %q, want %q %q", course.Code, course.Name, want.Code, want.Name)
	}
	if len(course.Tasks) != 1 || len(course.Sessions) != 1 {
		t.Fatalf("tasks/sessions len = %d/%d, want 1/1", len(course.Tasks), len(course.Sessions))
	}

	task, wantTask := course.Tasks[0], want.Tasks[0]
	if task.ID != wantTask.ID || task.Title != wantTask.Title || task.Status != wantTask.Status {
		t.Errorf("task = %+v, want %+v", task, wantTask)
	}
	if !task.DueDate.Equal(wantTask.DueDate) {
		t.Errorf("DueDate = %v, want %v", task.DueDate, wantTask.DueDate)
	}
	if task.WeightPercent != wantTask.WeightPercent || task.PointsEarned != wantTask.PointsEarned {
		t.Errorf("grading = %v/%v, want %v/%v",
			task.WeightPercent, task.PointsEarned, wantTask.WeightPercent, wantTask.PointsEarned)
	}

	sess, wantSess := course.Sessions[0], want.Sessions[0]
	if sess.ID != wantSess.ID || sess.TaskID != wantSess.TaskID || sess.Kind != wantSess.Kind {
		t.Errorf("session = %+v, want %+v", sess, wantSess)
	}
	if sess.Minutes != wantSess.Minutes || !sess.EndedAt.Equal(wantSess.EndedAt) {
		t.Errorf("session timing = %d %v, want %d %v",
			sess.Minutes, sess.EndedAt, wantSess.Minutes, wantSess.EndedAt)
	}
}

func TestAddStudentDuplicateEmail(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "spap.json"), testLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if _, err := store.AddStudent(testStudent("dup@test.test")); err != nil {
		t.Fatalf("AddStudent() error = %v", err)
	}
	if _, err := store.AddStudent(testStudent("DUP@test.test")); !errors.Is(err, spap.ErrStudentExists) {
		t.Errorf("AddStudent() error = %v, want %v", err, spap.ErrStudentExists)
	}

	students, _ := store.Students()
	if len(students) != 1 {
		t.Errorf("Students() len = %d, want 1", len(students))
	}
}

func TestPutStudent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "spap.json"), testLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.PutStudent(testStudent("ghost@test.test")); !errors.Is(err, spap.ErrStudentNotFound) {
		t.Errorf("PutStudent() error = %v, want %v", err, spap.ErrStudentNotFound)
	}

	st := testStudent("put@test.test")
	if _, err := store.AddStudent(st); err != nil {
		t.Fatalf("AddStudent() error = %v", err)
	}
	st.ID = "B00999999"
	if err := store.PutStudent(st); err != nil {
		t.Fatalf("PutStudent() error = %v", err)
	}

	got, err := store.GetStudent("put@test.test")
	if err != nil {
		t.Fatalf("GetStudent() error = %v", err)
	}
	if got.ID != "B00999999" {
		t.Errorf("ID = %q, want %q", got.ID, "B00999999")
	}
}

func TestDeleteStudent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spap.json")
	store, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, err := store.AddStudent(testStudent("keep@test.test")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddStudent(testStudent("drop@test.test")); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteStudent("nobody@test.test"); !errors.Is(err, spap.ErrStudentNotFound) {
		t.Errorf("DeleteStudent() error = %v, want %v", err, spap.ErrStudentNotFound)
	}
	if err := store.DeleteStudent("drop@test.test"); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, testLogger())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	students, _ := reopened.Students()
	if len(students) != 1 || students[0].Email != "keep@test.test" {
		t.Errorf("Students() after delete = %+v, want only keep@test.test", students)
	}
}
