/*
NAME
  logging.go

DESCRIPTION
  logging.go provides vvascore's logging sink, resolved once from the
  environment, with messages formatted as "[FILE FUNC:LINE] LEVEL: message".

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>, The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package logging provides vvascore's Logger, matching the levelled
// Debug/Info/Warning/Error interface used throughout the teacher codebase's
// revid/config package, but resolving its destination once from the
// environment instead of being wired up by a calling binary.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/coreos/go-systemd/journal"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a logging verbosity level. Levels are ordered
// Error < Warning < Info < Debug.
type Level int8

const (
	Error Level = iota
	Warning
	Info
	Debug
)

func (l Level) String() string {
	switch l {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	case Debug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// EnvVar is the environment variable consulted to resolve the log
// destination, per §6. Unset or empty routes to the system log; the literal
// "CONSOLE" routes to stdout; any other value is treated as a file path.
const EnvVar = "VVAS_LOG_FILE"

const fileMaxSizeMB = 50

// Logger is a levelled logger that writes formatted lines to a resolved
// destination. The zero value is not usable; construct with New or Default.
type Logger struct {
	mu    sync.Mutex
	level Level
	out   io.Writer
}

// New returns a Logger at the given level writing to out.
func New(level Level, out io.Writer) *Logger {
	return &Logger{level: level, out: out}
}

var (
	defaultOnce sync.Once
	defaultLog  *Logger
)

// Default returns the process-wide default Logger, resolving its
// destination from EnvVar exactly once, the first time it's called. This is
// the only package-level mutable state logging carries, per §5.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLog = New(Warning, resolveDestination())
	})
	return defaultLog
}

// resolveDestination implements the destination rules of §6.
func resolveDestination() io.Writer {
	path := os.Getenv(EnvVar)
	switch path {
	case "":
		return systemLogWriter{}
	case "CONSOLE":
		return os.Stdout
	default:
		f := &lumberjack.Logger{
			Filename: path,
			MaxSize:  fileMaxSizeMB,
		}
		// lumberjack opens lazily on first Write; probe it so we can fall
		// back to the system log if the path isn't writable.
		if _, err := f.Write(nil); err != nil {
			fmt.Fprintf(os.Stderr, "logging: cannot open %q for append, falling back to system log: %v\n", path, err)
			return systemLogWriter{}
		}
		return f
	}
}

// systemLogWriter adapts the systemd journal to io.Writer, falling back to
// stderr when no journal socket is reachable (e.g. not running under
// systemd).
type systemLogWriter struct{}

func (systemLogWriter) Write(p []byte) (int, error) {
	if journal.Enabled() {
		if err := journal.Send(string(p), journal.PriInfo, nil); err == nil {
			return len(p), nil
		}
	}
	return os.Stderr.Write(p)
}

// SetLevel changes the logger's verbosity.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Log writes a formatted message at level if level is at or below the
// logger's configured verbosity. skip is the number of additional stack
// frames to skip when identifying the call site (0 = Log's caller).
func (l *Logger) Log(level Level, skip int, format string, args ...interface{}) {
	l.mu.Lock()
	cur := l.level
	out := l.out
	l.mu.Unlock()

	if level > cur {
		return
	}

	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		file, line = "???", 0
	} else {
		file = filepath.Base(file)
	}
	fn := callerFuncName(skip + 1)

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "[%s %s:%d] %s: %s\n", file, fn, line, level, msg)
}

func callerFuncName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "???"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "???"
	}
	name := fn.Name()
	return filepath.Ext(name)[1:]
}

// Debug logs at Debug level.
func (l *Logger) Debug(format string, args ...interface{}) { l.Log(Debug, 1, format, args...) }

// Info logs at Info level.
func (l *Logger) Info(format string, args ...interface{}) { l.Log(Info, 1, format, args...) }

// Warning logs at Warning level.
func (l *Logger) Warning(format string, args ...interface{}) { l.Log(Warning, 1, format, args...) }

// Error logs at Error level.
func (l *Logger) Error(format string, args ...interface{}) { l.Log(Error, 1, format, args...) }
