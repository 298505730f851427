package logger

// Noop discards all messages.
type Noop struct{}

// NewNoop creates a logger for quiet mode.
func NewNoop() *Noop {
	return &Noop{}
}

func (l *Noop) Debug(msg string, args ...interface{}) {}
func (l *Noop) Info(msg string, args ...interface{})  {}
func (l *Noop) Warn(msg string, args ...interface{})  {}
func (l *Noop) Error(msg string, args ...interface{}) {}

// WithComponent returns l.
func (l *Noop) WithComponent(component string) Logger {
	return l
}
