// Package storage implements spap's Store interface over a single JSON document
package storage

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cinemadrums/spap"
)

// document is the on-disk shape of the data file.
type document struct {
	Students []spap.Student `json:"students"`
}

type fileStore struct {
	path string
	l    spap.Logger

	mu  sync.RWMutex
	doc document
}

var _ spap.Store = (*fileStore)(nil)

// Open loads the data file at path, creating an empty one (and its parent
// directory) if it does not exist. A file that cannot be parsed is logged and
// treated as empty; it gets replaced on the next save.
func Open(path string, logger spap.Logger) (spap.Store, error) {
	s := &fileStore{
		path: path,
		l:    logger,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.l.Info("no data file yet, starting empty", "path", s.path)
		if err := os.MkdirAll(filepath.Dir(s.path), 0o744); err != nil {
			return err
		}
		return s.save()
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		s.l.Warn("data file is malformed, starting empty", "path", s.path, "error", err)
		s.doc = document{}
	}
	return nil
}

// save writes the whole document. Callers hold the appropriate lock.
func (s *fileStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "    ")
	if err != nil {
		return err
	}

	// Write to a temp file first so a crash mid-write never leaves a
	// truncated document behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}

	s.l.Debug("wrote data file", "path", s.path, "students", len(s.doc.Students))
	return nil
}

func (s *fileStore) Students() ([]spap.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	students := make([]spap.Student, len(s.doc.Students))
	copy(students, s.doc.Students)
	return students, nil
}

func (s *fileStore) GetStudent(email string) (spap.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.doc.Students {
		if strings.EqualFold(st.Email, email) {
			return st, nil
		}
	}
	return spap.Student{}, spap.ErrStudentNotFound
}

func (s *fileStore) AddStudent(st spap.Student) (spap.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.doc.Students {
		if strings.EqualFold(existing.Email, st.Email) {
			return spap.Student{}, spap.ErrStudentExists
		}
	}

	s.doc.Students = append(s.doc.Students, st)
	if err := s.save(); err != nil {
		return spap.Student{}, err
	}
	return st, nil
}

func (s *fileStore) PutStudent(st spap.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Students {
		if strings.EqualFold(s.doc.Students[i].Email, st.Email) {
			s.doc.Students[i] = st
			return s.save()
		}
	}
	return spap.ErrStudentNotFound
}

func (s *fileStore) DeleteStudent(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Students {
		if strings.EqualFold(s.doc.Students[i].Email, email) {
			s.doc.Students = append(s.doc.Students[:i], s.doc.Students[i+1:]...)
			return s.save()
		}
	}
	return spap.ErrStudentNotFound
}

func (s *fileStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save()
}

func (s *fileStore) Close() error {
	return s.Save()
}
