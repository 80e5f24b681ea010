package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a printf-style facade over logrus. Each level keeps its own entry
// so that fields attached with With travel with every line.
type Logger struct {
	base  *logrus.Logger
	info  *logrus.Entry
	error *logrus.Entry
	warn  *logrus.Entry
	debug *logrus.Entry
}

type Options struct {
	Level string
	// File enables a rotating log file next to stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	JSON       bool
}

func New() *Logger {
	return NewWithOptions(Options{Level: os.Getenv("LOG_LEVEL"), File: os.Getenv("LOG_FILE")})
}

func NewWithOptions(opts Options) *Logger {
	base := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	if opts.JSON {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var out io.Writer = os.Stdout
	if opts.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 100),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
	}
	base.SetOutput(out)

	return fromEntry(base, logrus.NewEntry(base))
}

func fromEntry(base *logrus.Logger, entry *logrus.Entry) *Logger {
	return &Logger{
		base:  base,
		info:  entry,
		error: entry,
		warn:  entry,
		debug: entry,
	}
}

// With returns a child logger that tags every line with key=value.
func (l *Logger) With(key string, value interface{}) *Logger {
	return fromEntry(l.base, l.info.WithField(key, value))
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.info.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.error.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.warn.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.debug.Debug(fmt.Sprintf(format, args...))
}

// SetOutput redirects all levels, mainly for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
