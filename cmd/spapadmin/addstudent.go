package main

import (
	"fmt"
	"time"

	"github.com/cinemadrums/spap"
)

// addStudent creates a student account the same way the menu flow does.
func (cli *commandLine) addStudent(email, id, pwd string) error {
	req := spap.RegisterStudent{
		Email:     email,
		StudentID: id,
		Password:  pwd,
	}
	if err := req.Validate(cli.store); err != nil {
		return err
	}

	st := spap.Student{
		ID:        req.StudentID,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if err := st.SetPassword(req.Password); err != nil {
		return err
	}
	if _, err := cli.store.AddStudent(st); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", st.Email)
	return nil
}
