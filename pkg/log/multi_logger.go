package log

// MultiLogger fans each event out to several destinations, typically
// a console adapter plus a session file.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines the given loggers. Nil entries are dropped,
// so optional destinations can be passed unconditionally.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{loggers: make([]Logger, 0, len(loggers))}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Log sends the event to every destination in order.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Compile-time interface satisfaction check.
var _ Logger = (*MultiLogger)(nil)
