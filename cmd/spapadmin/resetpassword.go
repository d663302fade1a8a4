package main

import "github.com/cinemadrums/spap"

func (cli *commandLine) resetPassword(email, pwd string) error {
	st, err := cli.store.GetStudent(spap.CleanString(email, true))
	if err != nil {
		return err
	}
	if err := st.SetPassword(pwd); err != nil {
		return err
	}
	return cli.store.PutStudent(st)
}
