// internal/infra/logging/logger.go
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var base = newLogger(os.Stdout, "info")

// Init configures the process logger. Call once from main.
func Init(level string) *logrus.Logger {
	base = newLogger(os.Stdout, level)
	return base
}

// L returns the process logger.
func L() *logrus.Logger {
	return base
}

// Component returns an entry tagged with component=name.
func Component(name string) *logrus.Entry {
	return base.WithField("component", name)
}

// NewForTest writes JSON logs to w (tests usually pass io.Discard).
func NewForTest(w io.Writer) *logrus.Logger {
	return newLogger(w, "debug")
}

func newLogger(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.Out = w
	l.Level = parseLevel(level)
	l.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	return l
}

func parseLevel(s string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
