package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/cinemadrums/spap"
	"github.com/cinemadrums/spap/analytics"
)

// renderReport builds the body of the analytics screen.
func renderReport(r analytics.Report, top *spap.Task, rationale string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Total Tasks: %d (%d done)\n", r.TasksTotal, r.TasksDone))
	b.WriteString(fmt.Sprintf("Total Study Sessions: %d\n", r.Sessions))
	b.WriteString(fmt.Sprintf("Total Study Time: %s\n", formatMinutes(r.StudyMinutes)))

	if len(r.Courses) > 0 {
		b.WriteString(strings.Repeat("-", 40) + "\n")
	}
	for _, row := range r.Courses {
		title := row.Code
		if row.Name != "" {
			title += " " + row.Name
		}
		b.WriteString(title + "\n")
		b.WriteString(fmt.Sprintf("  tasks: %d/%d done | study: %s | score: %.1f | grade: %.2f%%\n",
			row.TasksDone, row.TasksTotal, formatMinutes(row.StudyMinutes), row.Score, row.Grade))
	}

	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString(fmt.Sprintf("Daily Productivity Score: %.1f points\n", r.DailyScore))
	b.WriteString(analytics.Motivation(r.DailyScore) + "\n")

	b.WriteString("\n")
	if top != nil {
		due := "no due date"
		if top.HasDueDate() {
			due = "due " + humanize.Time(top.DueDate)
		}
		b.WriteString(fmt.Sprintf("Work on this next: %q (%s)\n", top.Title, due))
	}
	b.WriteString(rationale + "\n")

	return b.String()
}

// renderTaskTable lists a course's tasks the way the update-status menu shows
// them.
func renderTaskTable(c spap.Course) string {
	if len(c.Tasks) == 0 {
		return "No tasks found.\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-5s %-15s %s\n", "ID", "Status", "Title"))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, t := range c.Tasks {
		b.WriteString(fmt.Sprintf("%-5d %-15s %s", t.ID, t.Status, t.Title))
		if t.HasDueDate() {
			b.WriteString(faintStyle.Render(fmt.Sprintf("  (due %s)", humanize.Time(t.DueDate))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
