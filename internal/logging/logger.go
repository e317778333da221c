// Package logging provides structured logging for the tray app.
//
// Logs go to a rotating file in the log directory and, when the process was
// started from a terminal, to stderr as well. A tray app launched from a
// desktop session has no console, so the file is the primary sink.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/twenty20twenty/twenty20twenty/internal/constants"
)

const timeFormat = "15:04:05"

// Options selects the logger outputs.
type Options struct {
	// Console receives human-readable output. Nil disables console output.
	Console io.Writer

	// Dir enables the rotating log file constants.LogFileName in Dir.
	// Empty disables file output.
	Dir string
}

// Logger wraps zerolog with the app's output configuration.
type Logger struct {
	zlog   zerolog.Logger
	output io.Writer
	file   *lumberjack.Logger
}

// NewLogger creates a logger writing to the outputs selected by opts.
// With no outputs configured the logger discards everything.
func NewLogger(opts Options) *Logger {
	var writers []io.Writer

	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: timeFormat,
		})
	}

	var file *lumberjack.Logger
	if opts.Dir != "" {
		file = &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, constants.LogFileName),
			MaxSize:    constants.LogMaxSizeMB,
			MaxBackups: constants.LogMaxBackups,
			MaxAge:     constants.LogMaxAgeDays,
			Compress:   true,
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: "2006-01-02 15:04:05.000",
			NoColor:    true,
		})
	}

	var output io.Writer
	switch len(writers) {
	case 0:
		output = io.Discard
	case 1:
		output = writers[0]
	default:
		output = zerolog.MultiLevelWriter(writers...)
	}

	return &Logger{
		zlog:   zerolog.New(output).With().Timestamp().Logger(),
		output: output,
		file:   file,
	}
}

// NewDefaultLogger creates the logger used by the tray binary: console output
// only when stderr is a terminal, plus the rotating file in logDir (if non-empty).
func NewDefaultLogger(logDir string) *Logger {
	opts := Options{Dir: logDir}
	if StderrIsTerminal() {
		opts.Console = os.Stderr
	}
	return NewLogger(opts)
}

// NewNopLogger returns a logger that discards all output.
func NewNopLogger() *Logger {
	return NewLogger(Options{})
}

// StderrIsTerminal reports whether stderr is attached to a terminal.
func StderrIsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) *Logger {
	return &Logger{
		zlog:   l.zlog.With().Str("component", name).Logger(),
		output: l.output,
		file:   l.file,
	}
}

// FilePath returns the rotating log file path, or "" when file output is off.
func (l *Logger) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Filename
}

// Close flushes and closes the log file. Safe to call on a logger without one.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// DefaultLevel is debug when the process was started from a terminal and
// info otherwise.
func DefaultLevel() zerolog.Level {
	return levelFor(StderrIsTerminal())
}

func levelFor(terminal bool) zerolog.Level {
	if terminal {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
