package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cinemadrums/spap"
	"github.com/cinemadrums/spap/analytics"
	"github.com/cinemadrums/spap/charmlog"
	"github.com/cinemadrums/spap/storage"
	"github.com/cinemadrums/spap/timer"
)

func main() {
	// conf
	conf := spap.LoadConfig()
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		panic(err)
	}
	defer f.Close() //nolint:errcheck
	logger := charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  conf.LogLevel,
	})
	logger.Info("loaded config", "config", conf)

	// store
	store, err := storage.Open(conf.DataPath, logger)
	if err != nil {
		logger.Error("failed store open", "error", err)
		fmt.Println("Could not open the data file:", err)
		os.Exit(1)
	}
	defer store.Close() //nolint:errcheck

	// svcs
	weights := analytics.LoadWeights(conf.WeightsPath)
	ctrl := timer.NewController(logger)
	svc := NewStudentSvc(store, ctrl, weights, conf.Autosave, logger)

	// start program
	fmt.Println(colorize(colorYellow, logo))

	userinput := textinput.New()
	userinput.Focus()
	userinput.CharLimit = 280
	userinput.PromptStyle = promptStyle
	userinput.EchoCharacter = '•'

	m := model{
		l:          logger,
		timeFormat: conf.TimeFormat,
		svc:        svc,
		userinput:  userinput,
		vp:         viewport.New(0, 0),
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}
