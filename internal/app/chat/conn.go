/*
Package chat contains the core logic for the chat relay: session lifecycle,
the shared username registry, command parsing, and message routing.

This file defines the transport abstraction consumed by the engine. The
listener packages hand the engine one already-framed line at a time and accept
one formatted line to write back; everything below that boundary (TCP framing,
WebSocket frames) lives in the transport adapters.
*/
package chat

import "time"

// Conn is one bi-directional line transport for a single client.
type Conn interface {
	// ReadLine blocks until the next complete inbound line is available and
	// returns it without the trailing newline (a trailing \r is stripped too).
	ReadLine() (string, error)

	// WriteLine delivers one line to the client, appending the line terminator.
	WriteLine(line string) error

	// SetReadDeadline bounds the next ReadLine call. The zero time removes the deadline.
	SetReadDeadline(t time.Time) error

	// RemoteAddr describes the peer for logging.
	RemoteAddr() string

	// Close tears the transport down, waking any blocked ReadLine.
	Close() error
}
