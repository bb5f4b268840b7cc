package transport

import (
	"sync"
	"time"
)

// ScriptedCommander answers command frames with pre-queued responses,
// in order. When the queue is empty it reports ErrTimeout. Sent frames
// are journaled for inspection.
type ScriptedCommander struct {
	mu        sync.Mutex
	responses [][]byte
	errs      []error
	frames    [][]byte
}

// NewScriptedCommander builds an empty commander.
func NewScriptedCommander() *ScriptedCommander {
	return &ScriptedCommander{}
}

// QueueResponse appends a response frame to the script.
func (c *ScriptedCommander) QueueResponse(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, append([]byte(nil), frame...))
	c.errs = append(c.errs, nil)
}

// QueueError appends a failure to the script.
func (c *ScriptedCommander) QueueError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, nil)
	c.errs = append(c.errs, err)
}

// Status implements Commander.
func (c *ScriptedCommander) Status(frame []byte, _ time.Duration) ([]byte, error) {
	return c.next(frame)
}

// Control implements Commander.
func (c *ScriptedCommander) Control(frame []byte, _ time.Duration) ([]byte, error) {
	return c.next(frame)
}

func (c *ScriptedCommander) next(frame []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frames = append(c.frames, append([]byte(nil), frame...))

	if len(c.responses) == 0 {
		return nil, ErrTimeout
	}
	resp, err := c.responses[0], c.errs[0]
	c.responses = c.responses[1:]
	c.errs = c.errs[1:]
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Frames returns all frames sent so far.
func (c *ScriptedCommander) Frames() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	for i, f := range c.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// Compile-time interface satisfaction check.
var _ Commander = (*ScriptedCommander)(nil)
