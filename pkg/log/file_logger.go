package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends events to a session file as a CBOR stream. Log
// never returns an error: transaction payloads are bounded by the
// block cap, so a failed encode means the file itself has gone bad,
// and device I/O must not stall on that. The first failure sticks and
// comes back from Err and Close.
type FileLogger struct {
	mu     sync.Mutex
	file   *os.File
	enc    *cbor.Encoder
	err    error
	closed bool
}

// NewFileLogger opens path for appending, creating it with mode 0644
// if it does not exist yet.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f, enc: NewEncoder(f)}, nil
}

// Log appends event to the file. Safe for concurrent use; a no-op
// after Close or once a write has failed.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.err != nil {
		return
	}
	l.err = l.enc.Encode(event)
}

// Err reports the first write failure, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close closes the file and surfaces any pending write failure.
// Repeated calls return nil; Log calls after Close are ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	closeErr := l.file.Close()
	if l.err != nil {
		return l.err
	}
	return closeErr
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
