package app

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// LogrusLogger tags every entry with a component field.
type LogrusLogger struct{ log *logrus.Logger }

// NewLogrusLogger writes to w in "text" or "json" format. Debug lowers the
// level so per-redraw messages are kept.
func NewLogrusLogger(w io.Writer, format string, debug bool) (*LogrusLogger, error) {
	log := logrus.New()
	log.SetOutput(w)
	switch format {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return &LogrusLogger{log: log}, nil
}

func (l *LogrusLogger) Infof(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Infof(format, args...)
}

func (l *LogrusLogger) Errorf(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Errorf(format, args...)
}

// Debugf is only emitted with debug enabled.
func (l *LogrusLogger) Debugf(component string, format string, args ...interface{}) {
	l.log.WithField("component", component).Debugf(format, args...)
}
