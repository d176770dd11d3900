// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/framestrip/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// ConsoleLogger logs messages to the console with color support.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	color     bool
	out       io.Writer
	errOut    io.Writer
	eol       *lineEnding
}

// lineEnding is shared between a logger and its component loggers so a
// terminal switching to raw mode affects all of them.
type lineEnding struct {
	mu sync.RWMutex
	s  string
}

// NewConsole creates a new console logger with the specified level.
// Color output is automatically enabled when stdout is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return NewConsoleWriter(os.Stdout, os.Stderr, level, color)
}

// NewConsoleWriter creates a console logger writing info and debug to out,
// warnings and errors to errOut.
func NewConsoleWriter(out, errOut io.Writer, level ports.LogLevel, color bool) *ConsoleLogger {
	return &ConsoleLogger{
		level:  level,
		color:  color,
		out:    out,
		errOut: errOut,
		eol:    &lineEnding{s: "\n"},
	}
}

// SetRawTerminal switches line endings to CRLF while the terminal is in raw mode.
func (l *ConsoleLogger) SetRawTerminal(raw bool) {
	l.eol.mu.Lock()
	defer l.eol.mu.Unlock()
	if raw {
		l.eol.s = "\r\n"
	} else {
		l.eol.s = "\n"
	}
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.level > ports.LevelDebug {
		return
	}
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.level > ports.LevelInfo {
		return
	}
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	if l.level > ports.LevelWarn {
		return
	}
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.level > ports.LevelError {
		return
	}
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a new logger with the specified component name.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	return &ConsoleLogger{
		level:     l.level,
		component: component,
		color:     l.color,
		out:       l.out,
		errOut:    l.errOut,
		eol:       l.eol,
	}
}

// log outputs a log message with appropriate formatting.
func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	translated := l10n.F(msg, args...)

	var output string
	if l.component != "" {
		if l.color {
			output = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, translated)
		} else {
			output = fmt.Sprintf("[%s] %s", l.component, translated)
		}
	} else {
		output = translated
	}

	if l.color {
		switch level {
		case ports.LevelDebug:
			output = colorGray + output + colorReset
		case ports.LevelWarn:
			output = colorYellow + output + colorReset
		case ports.LevelError:
			output = colorRed + output + colorReset
		}
	}

	l.eol.mu.RLock()
	eol := l.eol.s
	l.eol.mu.RUnlock()

	if level >= ports.LevelWarn {
		fmt.Fprint(l.errOut, output+eol)
	} else {
		fmt.Fprint(l.out, output+eol)
	}
}

var _ ports.Logger = (*ConsoleLogger)(nil)
