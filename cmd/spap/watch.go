package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/stopwatch"
)

// sessionWatch shows the elapsed time of the session being run from this
// screen. Sessions started earlier keep running in the controller either way.
type sessionWatch struct {
	stopwatch.Model
	course string
}

func newSessionWatch(course string) sessionWatch {
	return sessionWatch{
		Model:  stopwatch.NewWithInterval(time.Second),
		course: course,
	}
}

func (w sessionWatch) View() string {
	el := w.Elapsed()
	return fmt.Sprintf("[%s] %02d:%02d:%02d",
		w.course, int(el.Hours()), int(el.Minutes())%60, int(el.Seconds())%60)
}
