// Package charmlog provides an implementation of spap.Logger using charmbracelet/log
package charmlog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cinemadrums/spap"
)

type Options struct {
	Writer io.Writer
	Level  string
	Prefix string
}

func NewLogger(opts Options) spap.Logger {
	var w io.Writer = os.Stdout
	if opts.Writer != nil {
		w = opts.Writer
	}

	lvl, err := log.ParseLevel(opts.Level)
	if err != nil {
		lvl = log.InfoLevel
	}

	return logger{log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: opts.Prefix,
	})}
}

// logger wraps *log.Logger so With returns the spap interface.
type logger struct {
	*log.Logger
}

func (l logger) With(keyvals ...interface{}) spap.Logger {
	return logger{l.Logger.With(keyvals...)}
}
