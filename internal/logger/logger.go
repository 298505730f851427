// Package logger provides the leveled logger used by the command line and
// the batch runner. The safewebp boundary itself never logs.
package logger

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for per-file details inside a component.
	LevelDebug Level = iota
	// LevelInfo is for progress of a whole run.
	LevelInfo
	// LevelWarn is for failures that do not stop the run, such as one bad
	// file in a batch.
	LevelWarn
	// LevelError is for failures that stop the run.
	LevelError
	// LevelQuiet suppresses all output.
	LevelQuiet
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger is implemented by Console and Noop. Messages are lexicon keys
// passed through go-l10n, so msg must be a constant format string.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with component.
	WithComponent(component string) Logger
}
