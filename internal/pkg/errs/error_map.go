/*
Package errs provides the protocol error types and error code constants for the chat server.

This file defines the map from error codes to ProtocolError templates, pairing
each code with its wire reason token and log description.
*/
package errs

// errorMap stores the ProtocolError template for every error code. The Reason
// values are part of the wire protocol and must stay stable.
var errorMap = map[int]ProtocolError{
	// 1xxx: Command parsing errors
	ErrMalformedCommand: {Code: ErrMalformedCommand, Reason: "malformed-command", Message: "Command is missing a required argument."},
	ErrUnknownCommand:   {Code: ErrUnknownCommand, Reason: "unknown-command", Message: "Keyword is not part of the protocol."},
	ErrEmptyMessage:     {Code: ErrEmptyMessage, Reason: "empty-message", Message: "Message text cannot be empty."},

	// 2xxx: Login and session state errors
	ErrNotLoggedIn:     {Code: ErrNotLoggedIn, Reason: "not-logged-in", Message: "Command requires a successful LOGIN first."},
	ErrAlreadyLoggedIn: {Code: ErrAlreadyLoggedIn, Reason: "already-logged-in", Message: "Session already holds a username."},
	ErrInvalidUsername: {Code: ErrInvalidUsername, Reason: "invalid-username", Message: "Usernames are 1-32 characters of letters, digits and underscore."},
	ErrUsernameTaken:   {Code: ErrUsernameTaken, Reason: "username-taken", Message: "Username is held by another live session."},

	// 3xxx: Message routing errors
	ErrNoSuchUser: {Code: ErrNoSuchUser, Reason: "no-such-user", Message: "Direct message target is not online."},

	// 4xxx: Connection policy errors
	ErrRateLimited: {Code: ErrRateLimited, Reason: "rate-limited", Message: "Too many connection attempts from this address."},

	// 5xxx: Internal errors
	ErrInternal: {Code: ErrInternal, Reason: "internal-error", Message: "Something went wrong on the server."},
}
