package main

import "fmt"

// wipe clears every student from the data file.
func (cli *commandLine) wipe() error {
	students, err := cli.store.Students()
	if err != nil {
		return err
	}
	for _, st := range students {
		if err := cli.store.DeleteStudent(st.Email); err != nil {
			return err
		}
	}
	fmt.Printf("Removed %d students\n", len(students))
	return nil
}
