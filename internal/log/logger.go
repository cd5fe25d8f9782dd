// Package log wraps logrus behind package-level functions so callers do
// not have to thread a logger handle through the application.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = NewLogger()

// Field is one structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field. It keeps call sites short: log.WithFields(log.F("path", p)).
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger is a thin wrapper that owns the underlying logrus instance and,
// when logging to a file, the open file handle.
type Logger struct {
	rus  *logrus.Logger
	file *os.File
}

// Option configures a Logger at construction time.
type Option func(*Logger)

// WithOutput sends log output to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.rus.SetOutput(w)
	}
}

// WithJSON switches the output format to one JSON object per line.
func WithJSON() Option {
	return func(l *Logger) {
		l.rus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})
	}
}

// WithFile redirects all output to the named file, appending to it. The
// terminal is left alone, which matters once the screen belongs to the
// interactive view. A file that cannot be opened leaves the previous
// output in place.
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.rus.Warnf("cannot open log file %s: %v", path, err)
			return
		}
		l.file = f
		l.rus.SetOutput(f)
	}
}

// WithDiscard drops all output. Used when no log destination is wanted.
func WithDiscard() Option {
	return func(l *Logger) {
		l.rus.SetOutput(io.Discard)
	}
}

const timestampFormat = "2006-01-02 15:04:05"

// NewLogger builds a Logger writing text lines to stderr at info level,
// then applies the given options in order.
func NewLogger(opts ...Option) *Logger {
	rus := logrus.New()
	rus.SetOutput(os.Stderr)
	rus.SetLevel(logrus.InfoLevel)
	rus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})
	l := &Logger{rus: rus}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package logger. Call it once at startup before
// anything logs.
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	if old != nil {
		old.Close()
	}
}

// SetDebug toggles debug-level output on the package logger.
func SetDebug(debug bool) {
	if debug {
		logger.rus.SetLevel(logrus.DebugLevel)
	} else {
		logger.rus.SetLevel(logrus.InfoLevel)
	}
}

// Close releases the log file if one was opened.
func Close() error { return logger.Close() }

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) Debug(args ...interface{}) { l.rus.Debug(args...) }
func (l *Logger) Info(args ...interface{})  { l.rus.Info(args...) }
func (l *Logger) Warn(args ...interface{})  { l.rus.Warn(args...) }
func (l *Logger) Error(args ...interface{}) { l.rus.Error(args...) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.rus.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.rus.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.rus.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.rus.Errorf(format, args...) }

// With attaches structured fields and returns the entry to log on.
func (l *Logger) With(fields ...Field) *logrus.Entry {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return l.rus.WithFields(lf)
}

// Debug logs a message at debug level.
func Debug(args ...interface{}) { logger.Debug(args...) }

// Info logs a message at info level.
func Info(args ...interface{}) { logger.Info(args...) }

// Warn logs a message at warning level.
func Warn(args ...interface{}) { logger.Warn(args...) }

// Error logs a message at error level.
func Error(args ...interface{}) { logger.Error(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

// Warnf logs a formatted message at warning level.
func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// WithFields attaches structured fields to the package logger.
func WithFields(fields ...Field) *logrus.Entry { return logger.With(fields...) }
