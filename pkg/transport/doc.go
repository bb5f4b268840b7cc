// Package transport defines the two device I/O surfaces the framework
// runs on and provides in-memory implementations for tests.
//
// Bus is the asynchronous-transaction side: block reads and writes
// against absolute register offsets. Commander is the command side:
// request/response frames addressed to the device's function unit.
// Production implementations wrap the platform's FireWire stack; the
// rest of the module depends only on these interfaces.
package transport
