// Package analytics computes productivity statistics over the student graph.
// Every function here is a pure read; nothing mutates the model.
package analytics

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cinemadrums/spap"
)

// nowFunc is swapped out in tests.
var nowFunc = time.Now

// ProductivityScore rates a course: points for every hour studied plus a
// bonus scaled by the share of completed tasks. One decimal place.
func ProductivityScore(c spap.Course, w Weights) float64 {
	hours := float64(c.StudyMinutes()) / 60
	return round1(w.PointsPerHour*hours + w.CompletionBonus*c.CompletionRatio())
}

// DailyScore rates one calendar day: points for the work time logged on each
// of the day's tasks plus a flat bonus per completed one.
func DailyScore(d spap.Day, w Weights) float64 {
	var score float64
	for _, t := range d.TasksDue {
		score += float64(t.WorkMinutes) / 60 * w.PointsPerHour
		if t.Done() {
			score += w.TaskBonus
		}
	}
	return round1(score)
}

// CourseGrade is the weighted average over the course's graded tasks, as a
// percentage. Ungraded tasks still count their weight, so the grade reads
// like a running total. Two decimal places; 0 when nothing carries weight.
func CourseGrade(c spap.Course) float64 {
	var totalWeight, weightedSum float64
	for _, t := range c.Tasks {
		totalWeight += t.WeightPercent
		if t.PointsEarned > 0 {
			weightedSum += t.PointsEarned / 100 * t.WeightPercent
		}
	}
	if totalWeight == 0 {
		return 0
	}
	return round2(weightedSum / totalWeight * 100)
}

// Recommend picks the most urgent unfinished task across every course:
// heavier tasks due sooner win. Tasks without a due date sort last. Returns
// nil and an explanatory line when nothing is left to do.
func Recommend(st spap.Student) (*spap.Task, string) {
	var active []spap.Task
	for _, t := range st.Tasks() {
		if !t.Done() {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return nil, "No active tasks found! You are free."
	}

	today := nowFunc()
	urgency := func(t spap.Task) float64 {
		if !t.HasDueDate() {
			return -1
		}
		// Due today or overdue clamps to 0.1 so the weight dominates
		// instead of dividing by zero.
		return t.WeightPercent / math.Max(daysLeft(t, today), 0.1)
	}

	top := mergeSort(active, urgency)[0]

	days := "?"
	if top.HasDueDate() {
		days = strconv.Itoa(int(daysLeft(top, today)))
	}
	return &top, fmt.Sprintf("Priority Score: %.1f (Weight: %g%% / Days Left: %s)",
		urgency(top), top.WeightPercent, days)
}

func daysLeft(t spap.Task, today time.Time) float64 {
	return math.Floor(t.DueDate.Sub(today).Hours() / 24)
}

// mergeSort orders tasks by score, highest first. Ties keep the left-hand
// element so the incoming order breaks them.
func mergeSort(tasks []spap.Task, score func(spap.Task) float64) []spap.Task {
	if len(tasks) <= 1 {
		return tasks
	}
	mid := len(tasks) / 2
	return merge(mergeSort(tasks[:mid], score), mergeSort(tasks[mid:], score), score)
}

func merge(left, right []spap.Task, score func(spap.Task) float64) []spap.Task {
	merged := make([]spap.Task, 0, len(left)+len(right))
	var i, j int
	for i < len(left) && j < len(right) {
		if score(left[i]) >= score(right[j]) {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}
	merged = append(merged, left[i:]...)
	return append(merged, right[j:]...)
}

// CourseRow is one course's line of the report.
type CourseRow struct {
	Code         string
	Name         string
	TasksDone    int
	TasksTotal   int
	StudyMinutes int
	Score        float64
	Grade        float64
}

// Report aggregates every course plus whole-student totals. GeneratedAt
// anchors the daily score.
type Report struct {
	GeneratedAt  time.Time
	Courses      []CourseRow
	TasksDone    int
	TasksTotal   int
	Sessions     int
	StudyMinutes int
	DailyScore   float64
	MeanScore    float64
}

func NewReport(st spap.Student, w Weights) Report {
	r := Report{GeneratedAt: nowFunc()}

	var scoreSum float64
	for _, c := range st.Courses {
		row := CourseRow{
			Code:         c.Code,
			Name:         c.Name,
			TasksDone:    c.CompletedTasks(),
			TasksTotal:   len(c.Tasks),
			StudyMinutes: c.StudyMinutes(),
			Score:        ProductivityScore(c, w),
			Grade:        CourseGrade(c),
		}
		r.Courses = append(r.Courses, row)
		r.TasksDone += row.TasksDone
		r.TasksTotal += row.TasksTotal
		r.StudyMinutes += row.StudyMinutes
		scoreSum += row.Score
	}

	r.Sessions = len(st.Sessions())
	r.DailyScore = DailyScore(st.Day(r.GeneratedAt), w)
	if len(r.Courses) > 0 {
		r.MeanScore = round1(scoreSum / float64(len(r.Courses)))
	}
	return r
}

// CompletionRatio is completed tasks over all tasks for the whole student.
func (r Report) CompletionRatio() float64 {
	if r.TasksTotal == 0 {
		return 0
	}
	return float64(r.TasksDone) / float64(r.TasksTotal)
}

// Motivation returns the encouragement line shown under a daily score.
func Motivation(score float64) string {
	switch {
	case score > 100:
		return "Amazing! You are crushing it today!"
	case score > 50:
		return "Good job! Keep up the work."
	}
	return "Time to get to work! Finish a task for 50 points!"
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }

func round2(f float64) float64 { return math.Round(f*100) / 100 }
