/*
Package errs provides the protocol error types and error code constants for the chat server.

These codes identify the specific protocol failure both in server logs and in
the reason token reported back to clients.
*/
package errs

// 1xxx: Command parsing errors
const (
	// ErrMalformedCommand indicates an empty line or a command missing a required argument.
	ErrMalformedCommand = 1001

	// ErrUnknownCommand indicates a keyword that is not part of the protocol.
	ErrUnknownCommand = 1002

	// ErrEmptyMessage indicates a MSG or DM whose text argument is empty.
	ErrEmptyMessage = 1003
)

// 2xxx: Login and session state errors
const (
	// ErrNotLoggedIn indicates a command that requires authentication was sent pre-login.
	ErrNotLoggedIn = 2001

	// ErrAlreadyLoggedIn indicates a LOGIN on a session that already holds a username.
	ErrAlreadyLoggedIn = 2002

	// ErrInvalidUsername indicates a requested username outside the allowed character set or length.
	ErrInvalidUsername = 2003

	// ErrUsernameTaken indicates the requested username is held by another live session.
	ErrUsernameTaken = 2004
)

// 3xxx: Message routing errors
const (
	// ErrNoSuchUser indicates a DM target that is not currently registered.
	ErrNoSuchUser = 3001
)

// 4xxx: Connection policy errors
const (
	// ErrRateLimited indicates the client IP exceeded the connection rate limit.
	ErrRateLimited = 4001
)

// 5xxx: Internal errors
const (
	// ErrInternal represents an unclassified server-side failure.
	ErrInternal = 5000
)
