/*
Package chat contains the core logic for the chat relay: session lifecycle,
the shared username registry, command parsing, and message routing.

This file implements the stateless command parser translating one raw text
line into a typed Command or a protocol error.
*/
package chat

import (
	"strings"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/errs"
)

// Kind identifies which protocol command a line carries.
type Kind int

const (
	KindLogin Kind = iota
	KindMsg
	KindWho
	KindDm
	KindPing
)

// Command is one parsed protocol command.
type Command struct {
	Kind Kind

	// Name is the requested username for LOGIN.
	Name string

	// Target is the recipient username for DM.
	Target string

	// Text is the message body for MSG and DM. It may contain whitespace and
	// is never re-split.
	Text string
}

// Parse translates a raw line into a Command. Keywords are case-sensitive.
// Malformed lines (missing a required argument), empty message bodies and
// unknown keywords each yield a distinct protocol error; all of them leave
// the connection open.
func Parse(line string) (Command, *errs.ProtocolError) {
	keyword, rest := splitWord(line)
	if keyword == "" {
		return Command{}, errs.New(errs.ErrMalformedCommand)
	}

	switch keyword {
	case "LOGIN":
		if rest == "" {
			return Command{}, errs.New(errs.ErrMalformedCommand)
		}
		return Command{Kind: KindLogin, Name: rest}, nil

	case "MSG":
		if rest == "" {
			return Command{}, errs.New(errs.ErrEmptyMessage)
		}
		return Command{Kind: KindMsg, Text: rest}, nil

	case "WHO":
		if rest != "" {
			return Command{}, errs.New(errs.ErrMalformedCommand)
		}
		return Command{Kind: KindWho}, nil

	case "DM":
		target, text := splitWord(rest)
		if target == "" {
			return Command{}, errs.New(errs.ErrMalformedCommand)
		}
		if text == "" {
			return Command{}, errs.New(errs.ErrEmptyMessage)
		}
		return Command{Kind: KindDm, Target: target, Text: text}, nil

	case "PING":
		if rest != "" {
			return Command{}, errs.New(errs.ErrMalformedCommand)
		}
		return Command{Kind: KindPing}, nil

	default:
		return Command{}, errs.New(errs.ErrUnknownCommand)
	}
}

// splitWord splits s on the first whitespace run into a word and the trimmed
// remainder. The remainder keeps its internal whitespace intact.
func splitWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t")

	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}

	return s[:i], strings.TrimLeft(s[i:], " \t")
}
