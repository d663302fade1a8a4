package main

import (
	"fmt"

	"github.com/cinemadrums/spap"
	"github.com/cinemadrums/spap/analytics"
)

// report prints the productivity report the dashboard shows, without the
// interactive program around it.
func (cli *commandLine) report(email string) error {
	st, err := cli.store.GetStudent(spap.CleanString(email, true))
	if err != nil {
		return err
	}

	r := analytics.NewReport(st, cli.weights)
	fmt.Printf("Report for %s (generated %s)\n", st.Email, r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Tasks: %d/%d done | Sessions: %d | Study time: %dm\n",
		r.TasksDone, r.TasksTotal, r.Sessions, r.StudyMinutes)
	for _, row := range r.Courses {
		fmt.Printf("  %-10s tasks %d/%d | study %dm | score %.1f | grade %.2f%%\n",
			row.Code, row.TasksDone, row.TasksTotal, row.StudyMinutes, row.Score, row.Grade)
	}
	fmt.Printf("Daily score: %.1f | Mean course score: %.1f\n", r.DailyScore, r.MeanScore)

	if top, rationale := analytics.Recommend(st); top != nil {
		fmt.Printf("Next up: %q - %s\n", top.Title, rationale)
	}
	return nil
}
