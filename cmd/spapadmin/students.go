package main

import "fmt"

func (cli *commandLine) listStudents() error {
	students, err := cli.store.Students()
	if err != nil {
		return err
	}
	if len(students) == 0 {
		fmt.Println("No students found.")
		return nil
	}

	for _, st := range students {
		fmt.Printf("%-30s %-12s %d courses, %d tasks, %d sessions\n",
			st.Email, st.ID, len(st.Courses), len(st.Tasks()), len(st.Sessions()))
	}
	return nil
}
