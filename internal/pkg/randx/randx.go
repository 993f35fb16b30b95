/*
Package randx provides generators for unique identifiers used by the chat server.

Session IDs are UUID v4 strings used purely for log correlation; they never
appear on the wire.
*/
package randx

import "github.com/google/uuid"

// SessionID generates a UUID v4 string identifying one connection for logging.
func SessionID() string {
	return uuid.New().String()
}
