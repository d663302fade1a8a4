package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cinemadrums/spap"
)

const logo = `
	███████╗██████╗  █████╗ ██████╗
	██╔════╝██╔══██╗██╔══██╗██╔══██╗
	███████╗██████╔╝███████║██████╔╝
	╚════██║██╔═══╝ ██╔══██║██╔═══╝
	███████║██║     ██║  ██║██║
	╚══════╝╚═╝     ╚═╝  ╚═╝╚═╝     `

type screen int

const (
	screenLoginMenu screen = iota
	screenLogin
	screenRegister
	screenDashboard
	screenSession
	screenRunning
	screenNewTask
	screenTaskStatus
	screenNewCourse
	screenReport
)

// form collects the answers of the multi-step screens.
type form struct {
	email     string
	studentID string
	course    string
	title     string
	due       string
	taskID    int
}

type model struct {
	// children
	userinput textinput.Model
	vp        viewport.Model
	watch     sessionWatch

	// supplied
	l   spap.Logger
	svc StudentSvc

	// state
	scr      screen
	step     int
	form     form
	student  spap.Student
	alerts   []string
	quitting bool
	h        int

	// configuration
	timeFormat string
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, swCmd, cmd tea.Cmd

	m, cmd = m.updateParent(msg)

	// update children

	m.userinput, tiCmd = m.userinput.Update(msg)
	m.watch.Model, swCmd = m.watch.Update(msg)

	switch msg.(type) {
	case tea.KeyMsg:
		// vp updates on KeyMsg cause a view flicker
	default:
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, swCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.addErrorAlert(msg.err)
		return m, nil
	case LoggedInMsg:
		m = m.toDashboard()
		m.student = msg.student
		if msg.note != "" {
			m.addAlert(msg.note, colorGreen)
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			input := m.userinput.Value()
			m.userinput.Reset()
			m.alerts = nil
			return m.handleInput(strings.TrimSpace(input))
		case tea.KeyEsc:
			return m.goBack(), nil
		case tea.KeyCtrlC:
			return m.endProgram()
		}
	}
	return m, nil
}

func (m model) handleInput(input string) (model, tea.Cmd) {
	switch m.scr {
	case screenLoginMenu:
		return m.handleLoginMenu(input)
	case screenLogin:
		return m.handleLogin(input)
	case screenRegister:
		return m.handleRegister(input)
	case screenDashboard:
		return m.handleDashboard(input)
	case screenSession:
		return m.handleSession(input)
	case screenRunning:
		return m.stopCourse(m.watch.course)
	case screenNewTask:
		return m.handleNewTask(input)
	case screenTaskStatus:
		return m.handleTaskStatus(input)
	case screenNewCourse:
		return m.handleNewCourse(input)
	case screenReport:
		return m.toDashboard(), nil
	}
	return m, nil
}

func (m model) handleLoginMenu(input string) (model, tea.Cmd) {
	switch input {
	case "1":
		m.scr = screenLogin
		m.step = 0
		m.form = form{}
		return m, nil
	case "2":
		m.scr = screenRegister
		m.step = 0
		m.form = form{}
		return m, nil
	case "3":
		return m.endProgram()
	}
	m.addAlert("Invalid choice. Please try again.", colorYellow)
	return m, nil
}

func (m model) handleLogin(input string) (model, tea.Cmd) {
	if m.step == 0 {
		m.form.email = input
		m.step = 1
		m.userinput.EchoMode = textinput.EchoPassword
		return m, nil
	}

	m.userinput.EchoMode = textinput.EchoNormal
	creds := spap.Credentials{Email: m.form.email, Password: input}
	m.scr = screenLoginMenu
	m.step = 0
	m.form = form{}

	// bcrypt is slow enough to block the blink, so check off the update loop
	return m, func() tea.Msg {
		st, err := m.svc.Login(creds)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return LoggedInMsg{
			student: st,
			note:    fmt.Sprintf("Login successful! Welcome back, %s.", st.Email),
		}
	}
}

func (m model) handleRegister(input string) (model, tea.Cmd) {
	switch m.step {
	case 0:
		m.form.email = input
		m.step = 1
		return m, nil
	case 1:
		m.form.studentID = input
		m.step = 2
		m.userinput.EchoMode = textinput.EchoPassword
		return m, nil
	}

	m.userinput.EchoMode = textinput.EchoNormal
	req := spap.RegisterStudent{
		Email:     m.form.email,
		StudentID: m.form.studentID,
		Password:  input,
	}
	m.scr = screenLoginMenu
	m.step = 0
	m.form = form{}

	return m, func() tea.Msg {
		st, err := m.svc.Register(req)
		if err != nil {
			return ErrorMsg{err: err}
		}
		return LoggedInMsg{
			student: st,
			note:    "Account created successfully! Logging you in...",
		}
	}
}

func (m model) handleDashboard(input string) (model, tea.Cmd) {
	switch input {
	case "1":
		m.scr = screenSession
		m.step = 0
		m.form = form{}
	case "2":
		m.scr = screenNewTask
		m.step = 0
		m.form = form{}
	case "3":
		m.scr = screenTaskStatus
		m.step = 0
		m.form = form{}
	case "4":
		r := m.svc.Report(m.student)
		top, rationale := m.svc.Recommend(m.student)
		m.vp.SetContent(renderReport(r, top, rationale))
		m.vp.GotoTop()
		m.scr = screenReport
		m.resizeViewport()
	case "5":
		m.scr = screenNewCourse
		m.step = 0
		m.form = form{}
	case "6":
		if err := m.svc.Logout(m.student); err != nil {
			m.addErrorAlert(err)
			return m, nil
		}
		m.student = spap.Student{}
		m.watch = sessionWatch{}
		m.scr = screenLoginMenu
		m.addAlert("Data saved! Logging out...", colorGreen)
	default:
		m.addAlert("Invalid choice.", colorYellow)
	}
	return m, nil
}

func (m model) handleSession(input string) (model, tea.Cmd) {
	switch m.step {
	case 0:
		if input == "" {
			m.addAlert("Enter a course code.", colorYellow)
			return m, nil
		}
		// toggling: a running course gets stopped, anything else starts
		if _, running := m.svc.Active(input); running {
			return m.stopCourse(input)
		}
		if _, ok := m.student.Course(input); !ok {
			m.addAlert("Error: "+spap.ErrCourseNotFound.Error(), colorRed)
			return m, nil
		}
		m.form.course = input
		m.step = 1
		return m, nil
	case 1:
		if input != "" {
			id, err := strconv.Atoi(input)
			if err != nil || id <= 0 {
				m.addAlert("Task ID must be a positive number.", colorYellow)
				return m, nil
			}
			m.form.taskID = id
		}
		m.step = 2
		return m, nil
	}

	var kind spap.SessionKind
	switch strings.ToLower(input) {
	case "", "study":
		kind = spap.KindStudy
	case "review":
		kind = spap.KindReview
	default:
		m.addAlert("Session kind must be study or review.", colorYellow)
		return m, nil
	}

	startedAt, err := m.svc.StartSession(&m.student, m.form.course, m.form.taskID, kind)
	if err != nil {
		m.addErrorAlert(err)
		return m.toDashboard(), nil
	}

	course, _ := m.student.Course(m.form.course)
	m.watch = newSessionWatch(course.Code)
	m.scr = screenRunning
	m.addAlert(fmt.Sprintf("Timer Started at %s! Good luck studying!", startedAt.Format(m.timeFormat)), colorGreen)
	return m, m.watch.Start()
}

func (m model) stopCourse(code string) (model, tea.Cmd) {
	sess, err := m.svc.StopSession(&m.student, code)
	if err != nil {
		m.addErrorAlert(err)
		return m.toDashboard(), nil
	}

	// a fresh zero watch ignores the old tick stream, which stops it
	m.watch = sessionWatch{}
	m = m.toDashboard()
	m.addAlert(fmt.Sprintf("Study Session Saved! You studied for %d minutes.", sess.Minutes), colorGreen)
	return m, nil
}

func (m model) handleNewTask(input string) (model, tea.Cmd) {
	switch m.step {
	case 0:
		if _, ok := m.student.Course(input); !ok {
			m.addAlert("Error: "+spap.ErrCourseNotFound.Error(), colorRed)
			return m, nil
		}
		m.form.course = input
		m.step = 1
		return m, nil
	case 1:
		if input == "" {
			m.addAlert("Title cannot be empty.", colorYellow)
			return m, nil
		}
		m.form.title = input
		m.step = 2
		return m, nil
	case 2:
		m.form.due = input
		m.step = 3
		return m, nil
	}

	var weight float64
	if input != "" {
		var err error
		weight, err = strconv.ParseFloat(input, 64)
		if err != nil {
			m.addAlert("Weight must be a number between 0 and 100.", colorYellow)
			return m, nil
		}
	}

	nt := spap.NewTask{
		CourseCode:    m.form.course,
		Title:         m.form.title,
		DueDate:       m.form.due,
		WeightPercent: weight,
	}
	if _, err := m.svc.AddTask(&m.student, nt); err != nil {
		m.addErrorAlert(err)
		return m.toDashboard(), nil
	}

	m = m.toDashboard()
	m.addAlert("Task added successfully!", colorGreen)
	return m, nil
}

func (m model) handleTaskStatus(input string) (model, tea.Cmd) {
	switch m.step {
	case 0:
		if _, ok := m.student.Course(input); !ok {
			m.addAlert("Error: "+spap.ErrCourseNotFound.Error(), colorRed)
			return m, nil
		}
		m.form.course = input
		m.step = 1
		return m, nil
	case 1:
		course, _ := m.student.Course(m.form.course)
		id, err := strconv.Atoi(input)
		if err != nil {
			m.addAlert("Task ID not found.", colorRed)
			return m, nil
		}
		if _, ok := course.Task(id); !ok {
			m.addAlert("Task ID not found.", colorRed)
			return m, nil
		}
		m.form.taskID = id
		m.step = 2
		return m, nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		m.addAlert("Invalid status selected.", colorYellow)
		return m, nil
	}

	u := spap.UpdateTaskStatus{
		CourseCode: m.form.course,
		TaskID:     m.form.taskID,
		Status:     spap.TaskStatus(n),
	}
	if _, err := m.svc.UpdateTaskStatus(&m.student, u); err != nil {
		m.addErrorAlert(err)
		return m, nil
	}

	m = m.toDashboard()
	m.addAlert("Status updated!", colorGreen)
	return m, nil
}

func (m model) handleNewCourse(input string) (model, tea.Cmd) {
	if m.step == 0 {
		if input == "" {
			m.addAlert("Enter a course code.", colorYellow)
			return m, nil
		}
		m.form.course = input
		m.step = 1
		return m, nil
	}

	nc := spap.NewCourse{Code: m.form.course, Name: input}
	course, err := m.svc.AddCourse(&m.student, nc)
	if err != nil {
		m.addErrorAlert(err)
		return m.toDashboard(), nil
	}

	m = m.toDashboard()
	m.addAlert(fmt.Sprintf("Course '%s' added successfully!", course.Code), colorGreen)
	return m, nil
}

// goBack leaves the current screen without submitting anything. A running
// timer keeps running in the controller.
func (m model) goBack() model {
	switch m.scr {
	case screenLoginMenu, screenDashboard:
		return m
	case screenLogin, screenRegister:
		m.scr = screenLoginMenu
	default:
		m.scr = screenDashboard
	}
	m.step = 0
	m.form = form{}
	m.userinput.EchoMode = textinput.EchoNormal
	return m
}

func (m model) toDashboard() model {
	m.scr = screenDashboard
	m.step = 0
	m.form = form{}
	m.userinput.EchoMode = textinput.EchoNormal
	return m
}

func (m model) endProgram() (model, tea.Cmd) {
	m.quitting = true
	if m.student.Email != "" {
		if err := m.svc.Save(m.student); err != nil {
			m.l.Error("failed final save", "error", err)
		}
	}
	return m, tea.Quit
}

func (m *model) addAlert(alert string, color string) {
	m.alerts = append(m.alerts, colorize(color, alert))
}

func (m *model) addErrorAlert(err error) {
	if flds := spap.FieldErrors(err); len(flds) > 0 {
		for _, fld := range flds {
			m.addAlert(fmt.Sprintf("Error: %s: %s", fld.Field, fld.Error), colorRed)
		}
		return
	}
	m.addAlert("Error: "+err.Error(), colorRed)
}

func (m *model) resizeViewport() {
	h := m.h - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter()) - 1
	if h < 5 {
		h = 5
	}
	if tl := m.vp.TotalLineCount(); tl > 0 && tl < h {
		h = tl
	}
	m.vp.Height = h
}

func (m model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString(m.renderBody())
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m model) renderHeader() string {
	switch m.scr {
	case screenLoginMenu, screenLogin, screenRegister:
		return banner("Welcome to the Student Productivity Analytics Platform!")
	default:
		return banner("Dashboard - " + m.student.Email)
	}
}

func (m model) renderBody() string {
	switch m.scr {
	case screenLoginMenu:
		return "1. Login\n2. Create New Account\n3. Exit\n"
	case screenLogin:
		return "--- Login ---\n"
	case screenRegister:
		return "--- Create New Account ---\n"
	case screenDashboard:
		return m.renderDashboard()
	case screenSession:
		return m.renderSessionPicker()
	case screenRunning:
		return "--- Study Session ---\n\n" + colorize(colorCyan, m.watch.View()) + "\n"
	case screenNewTask:
		return "--- Add New Task ---\n"
	case screenTaskStatus:
		return m.renderTaskStatus()
	case screenNewCourse:
		return "--- Add New Course ---\n"
	case screenReport:
		return "--- Productivity Analytics Report ---\n" + m.vp.View() + "\n"
	}
	return ""
}

func (m model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Stats: %d Courses | %d Tasks | %d Sessions\n",
		len(m.student.Courses), len(m.student.Tasks()), len(m.student.Sessions())))
	if running := m.runningCourses(); len(running) > 0 {
		b.WriteString(colorize(colorCyan, "Running: "+strings.Join(running, ", ")) + "\n")
	}
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString("1. Start/Stop Study Session\n")
	b.WriteString("2. Add New Task\n")
	b.WriteString("3. Update Task Status\n")
	b.WriteString("4. View Analytics Report\n")
	b.WriteString("5. Add New Course\n")
	b.WriteString("6. Save & Logout\n")
	return b.String()
}

func (m model) runningCourses() []string {
	var running []string
	for _, c := range m.student.Courses {
		if startedAt, ok := m.svc.Active(c.Code); ok {
			running = append(running, fmt.Sprintf("%s (%s)", c.Code, formatMinutes(int(time.Since(startedAt).Minutes()))))
		}
	}
	return running
}

func (m model) renderSessionPicker() string {
	var b strings.Builder
	b.WriteString("--- Start/Stop Study Session ---\n")
	switch m.step {
	case 0:
		b.WriteString(m.renderCourseList())
	case 1:
		if course, ok := m.student.Course(m.form.course); ok {
			b.WriteString(renderTaskTable(*course))
		}
	default:
		b.WriteString("study (default) or review\n")
	}
	return b.String()
}

func (m model) renderTaskStatus() string {
	var b strings.Builder
	b.WriteString("--- Update Task Status ---\n")
	switch m.step {
	case 0:
		b.WriteString(m.renderCourseList())
	case 1:
		if course, ok := m.student.Course(m.form.course); ok {
			b.WriteString(renderTaskTable(*course))
		}
	default:
		if course, ok := m.student.Course(m.form.course); ok {
			if task, ok := course.Task(m.form.taskID); ok {
				b.WriteString(fmt.Sprintf("Updating '%s'\n", task.Title))
			}
		}
		b.WriteString("1. TODO\n2. IN PROGRESS\n3. DONE (Earn 50 points!)\n")
	}
	return b.String()
}

func (m model) renderCourseList() string {
	if len(m.student.Courses) == 0 {
		return "No courses yet. Add one from the dashboard first.\n"
	}

	var b strings.Builder
	for _, c := range m.student.Courses {
		line := c.Code
		if c.Name != "" {
			line += " - " + c.Name
		}
		if _, ok := m.svc.Active(c.Code); ok {
			line += " " + colorize(colorCyan, "[running]")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) renderFooter() string {
	if m.quitting {
		return ""
	}

	var footer strings.Builder
	footer.WriteRune('\n')
	footer.WriteString(m.question())
	footer.WriteRune('\n')
	footer.WriteString(m.userinput.View())
	footer.WriteString("\n\n")

	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
	}

	footer.WriteString(faintStyle.Render(m.hint()))
	footer.WriteRune('\n')
	return footer.String()
}

func (m model) question() string {
	switch m.scr {
	case screenLoginMenu:
		return "Select an option (1-3):"
	case screenLogin, screenRegister:
		switch {
		case m.scr == screenRegister && m.step == 1:
			return "Enter your student ID:"
		case m.step == 0:
			return "Enter your email:"
		default:
			return "Enter your password:"
		}
	case screenDashboard:
		return "Select an option (1-6):"
	case screenSession:
		switch m.step {
		case 0:
			return "Enter course code to start or stop:"
		case 1:
			return "Task ID to work on (blank for none):"
		default:
			return "Session kind (blank for study):"
		}
	case screenRunning:
		return "Press Enter to STOP the study session..."
	case screenNewTask:
		switch m.step {
		case 0:
			return "Enter course code:"
		case 1:
			return "Enter task title:"
		case 2:
			return "Enter due date (YYYY-MM-DD) or leave blank for none:"
		default:
			return "Enter weight percent (blank for 0):"
		}
	case screenTaskStatus:
		switch m.step {
		case 0:
			return "Enter course code:"
		case 1:
			return "Enter the Task ID to update:"
		default:
			return "Select new status (1-3):"
		}
	case screenNewCourse:
		if m.step == 0 {
			return "Enter course code:"
		}
		return "Enter course name (optional):"
	case screenReport:
		return "Press Enter to continue..."
	}
	return ""
}

func (m model) hint() string {
	switch m.scr {
	case screenLoginMenu:
		return "(ctrl+c to quit)"
	case screenRunning:
		return "(esc keeps the timer running in the background)"
	default:
		return "(esc to go back, ctrl+c to save and quit)"
	}
}
