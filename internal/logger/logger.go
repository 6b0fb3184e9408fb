package logger

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Entry

	file *os.File
}

// New builds a console-only logger. Local env = pretty console; others =
// JSON.
func New() *Logger {
	base := newBase()
	base.SetOutput(os.Stdout)
	return &Logger{Entry: logrus.NewEntry(base)}
}

// NewWithFile builds the process-wide logger for a batch run: output goes
// to stdout and is appended to the given log file, and every entry
// carries a fresh run_id. The caller owns the file handle and must Close
// the logger at exit.
func NewWithFile(path string) (*Logger, error) {
	base := newBase()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	base.SetOutput(io.MultiWriter(os.Stdout, f))

	entry := logrus.NewEntry(base).WithField("run_id", uuid.New().String())
	return &Logger{Entry: entry, file: f}, nil
}

// Close flushes and closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func newBase() *logrus.Logger {
	base := logrus.New()

	env := os.Getenv("ENVIRONMENT")
	if env == "" || env == "local" {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "warn":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}

	return base
}

// WithVideo attaches the video name being processed.
func (l *Logger) WithVideo(name string) *logrus.Entry {
	return l.WithField("video", name)
}

// WithError standardizes error logging
func (l *Logger) WithError(err error) *logrus.Entry {
	if err == nil {
		return l.Entry
	}
	return l.Entry.WithField("error", err.Error())
}
