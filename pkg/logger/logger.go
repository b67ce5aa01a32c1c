// Package logger provides the logging sink used by the file and cache
// management packages. Configuration is explicit: every Logger is built from
// Options and there is no package-level logger state.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields carries structured key/value pairs alongside a message.
type Fields = logrus.Fields

// Sink receives informational and error messages. Implementations must never
// block the caller for long and must never panic back into it.
type Sink interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(msg string, fields ...Fields)
}

// Options configures a Logger.
type Options struct {
	Level   string
	NoColor bool
	Output  io.Writer
}

// Logger is a Sink backed by logrus.
type Logger struct {
	entry *logrus.Logger
}

// New creates a Logger from options. Unknown levels fall back to info.
func New(opts Options) *Logger {
	l := logrus.New()

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	l.SetOutput(output)

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if opts.NoColor {
		l.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: false,
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			ForceColors:   true,
			FullTimestamp: false,
		})
	}

	return &Logger{entry: l}
}

// Nop returns a Sink that discards everything.
func Nop() Sink {
	return nopSink{}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(logrus.DebugLevel, msg, fields)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(logrus.InfoLevel, msg, fields)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(logrus.WarnLevel, msg, fields)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...Fields) {
	l.log(logrus.ErrorLevel, msg, fields)
}

// Success logs an info message tagged with status=success.
func (l *Logger) Success(msg string, fields ...Fields) {
	merged := mergeFields(fields...)
	merged["status"] = "success"
	l.log(logrus.InfoLevel, msg, []Fields{merged})
}

func (l *Logger) log(level logrus.Level, msg string, fields []Fields) {
	if l == nil || l.entry == nil {
		return
	}
	// A broken writer or formatter must not take the caller down with it.
	defer func() { _ = recover() }()
	l.entry.WithFields(mergeFields(fields...)).Log(level, msg)
}

// mergeFields merges multiple Fields into one.
func mergeFields(fields ...Fields) Fields {
	result := make(Fields)
	for _, field := range fields {
		for k, v := range field {
			result[k] = v
		}
	}
	return result
}

type nopSink struct{}

func (nopSink) Debug(string, ...Fields) {}
func (nopSink) Info(string, ...Fields)  {}
func (nopSink) Warn(string, ...Fields)  {}
func (nopSink) Error(string, ...Fields) {}

// OrNop returns s, or a discarding sink when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return nopSink{}
	}
	return s
}
