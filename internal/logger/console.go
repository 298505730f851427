package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Console writes debug and info messages to out, warnings and errors to
// errOut.
type Console struct {
	level     Level
	component string
	color     bool
	out       io.Writer
	errOut    io.Writer
}

// NewConsole creates a console logger. Color is enabled when out is a
// terminal.
func NewConsole(level Level, out, errOut io.Writer) *Console {
	return &Console{
		level:  level,
		color:  isTerminal(out),
		out:    out,
		errOut: errOut,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Debug logs a debug message.
func (l *Console) Debug(msg string, args ...interface{}) {
	if l.level > LevelDebug {
		return
	}
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *Console) Info(msg string, args ...interface{}) {
	if l.level > LevelInfo {
		return
	}
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Console) Warn(msg string, args ...interface{}) {
	if l.level > LevelWarn {
		return
	}
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Console) Error(msg string, args ...interface{}) {
	if l.level > LevelError {
		return
	}
	l.log(LevelError, msg, args...)
}

// WithComponent returns a new logger with the specified component name.
func (l *Console) WithComponent(component string) Logger {
	c := *l
	c.component = component
	return &c
}

func (l *Console) log(level Level, msg string, args ...interface{}) {
	translated := l10n.F(msg, args...)

	output := translated
	if l.component != "" {
		if l.color {
			output = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, translated)
		} else {
			output = fmt.Sprintf("[%s] %s", l.component, translated)
		}
	}

	if l.color {
		switch level {
		case LevelDebug:
			output = colorGray + output + colorReset
		case LevelWarn:
			output = colorYellow + output + colorReset
		case LevelError:
			output = colorRed + output + colorReset
		}
	}

	if level >= LevelWarn {
		fmt.Fprintln(l.errOut, output)
	} else {
		fmt.Fprintln(l.out, output)
	}
}
