/*
Package chat contains the core logic for the chat relay: session lifecycle,
the shared username registry, command parsing, and message routing.

This file holds the wire-level response formats and username validation rules.
*/
package chat

const (
	lineOK   = "OK"
	linePong = "PONG"

	// WelcomeBanner is pushed to every connection before its first command.
	WelcomeBanner = "INFO Welcome to the chat server! Please login with: LOGIN <username>"
)

// MaxUsernameLen bounds accepted usernames.
const MaxUsernameLen = 32

// formatMsg renders a chat message line as delivered to recipients. Both
// broadcasts and direct messages use the same MSG form.
func formatMsg(sender, text string) string {
	return "MSG " + sender + " " + text
}

// formatInfo renders a server notice line.
func formatInfo(text string) string {
	return "INFO " + text
}

// formatUser renders one WHO roster entry.
func formatUser(name string) string {
	return "USER " + name
}

// ValidUsername reports whether name is an acceptable username: 1 to
// MaxUsernameLen characters, each a letter, digit or underscore. Comparison
// elsewhere is case-sensitive, so Alice and alice are distinct users.
func ValidUsername(name string) bool {
	if len(name) == 0 || len(name) > MaxUsernameLen {
		return false
	}

	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}

	return true
}
