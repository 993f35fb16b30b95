/*
Package errs provides the protocol error types and error code constants for the chat server.

This file defines the ProtocolError struct, which implements the standard Go error
interface and carries both an internal error code and the reason token sent to
clients on the wire as an "ERR <reason>" line.
*/
package errs

import (
	"fmt"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
)

// ProtocolError describes a recoverable protocol-level failure. It is reported
// to the offending connection as a single ERR line; the connection stays open.
type ProtocolError struct {
	// Code is the internal error code (see constants definition).
	Code int

	// Reason is the machine-readable token sent to the client after "ERR ".
	Reason string

	// Message is the human-readable description used in logs.
	Message string
}

// Error implements the standard Go error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %d (%s): %s", e.Code, e.Reason, e.Message)
}

// WireLine returns the response line delivered to the client.
func (e *ProtocolError) WireLine() string {
	return "ERR " + e.Reason
}

// New constructs a *ProtocolError from a predefined error code. Unknown codes
// fall back to ErrInternal so a malformed call site never crashes a session.
func New(code int) *ProtocolError {
	template, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("unknown protocol error code %d", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		template = errorMap[ErrInternal]
	}

	err := template
	return &err
}
