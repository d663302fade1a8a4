package main

import "github.com/cinemadrums/spap"

// LoggedInMsg carries the authenticated student into the dashboard. Sent by
// both the login and the register commands; registering logs you in.
type LoggedInMsg struct {
	student spap.Student
	note    string
}

type ErrorMsg struct {
	err error
}
