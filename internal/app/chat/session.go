/*
Package chat contains the core logic for the chat relay: session lifecycle,
the shared username registry, command parsing, and message routing.

This file defines the Session struct, the per-connection state: the assigned
username, the outbound delivery queue, and the read and write loops that
drive one client's lifecycle.
*/
package chat

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/randx"
)

// Session is the server-side state for one connected, possibly
// pre-login client.
type Session struct {
	id     string
	conn   Conn
	router *Router

	// outbox queues lines awaiting delivery by this session's write loop.
	// Any goroutine routing a message to this user may enqueue; only the
	// session's own write loop dequeues. The channel is never closed: the
	// write loop exits via done, so a late Deliver can never panic.
	outbox chan string

	// done is closed exactly once when the session shuts down.
	done      chan struct{}
	closeOnce sync.Once

	// idleTimeout bounds the gap between inbound lines. Zero disables it.
	idleTimeout time.Duration

	// name is the registered username, empty pre-login. It is written only
	// by the session's own read loop; other goroutines reach this session
	// strictly through the registry, never through this field.
	name string

	logger zerolog.Logger
}

// NewSession wraps a transport connection into an unauthenticated session.
func NewSession(conn Conn, router *Router, idleTimeout time.Duration, outboxSize int) *Session {
	id := randx.SessionID()

	logger := logx.Logger().With().
		Str("session_id", id).
		Str("remote_addr", conn.RemoteAddr()).
		Logger()

	return &Session{
		id:          id,
		conn:        conn,
		router:      router,
		outbox:      make(chan string, outboxSize),
		done:        make(chan struct{}),
		idleTimeout: idleTimeout,
		logger:      logger,
	}
}

// ID returns the session's log-correlation identifier.
func (s *Session) ID() string {
	return s.id
}

// Deliver enqueues one line for this session's write loop and reports whether
// the line was accepted. It never blocks: a full outbox means the client has
// stalled past its buffer allowance, and the session is closed rather than
// letting the queue grow without bound (disconnect-on-overflow backpressure).
// A failed enqueue must not affect delivery to other recipients, so callers
// only use the return value for accounting.
func (s *Session) Deliver(line string) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.outbox <- line:
		return true
	case <-s.done:
		return false
	default:
		s.logger.Warn().
			Int("outbox_len", len(s.outbox)).
			Msg("Outbox full, disconnecting stalled session")
		s.Close()
		return false
	}
}

// WriteLoop drains the outbox into the transport. It runs as the session's
// dedicated writer goroutine so a slow reader on one client never blocks
// message enqueueing for it, and exits when the session closes or a write
// fails.
func (s *Session) WriteLoop() {
	defer s.Close()

	for {
		select {
		case line := <-s.outbox:
			if err := s.conn.WriteLine(line); err != nil {
				s.logger.Debug().Err(err).Msg("Write failed, stopping writer")
				return
			}

		case <-s.done:
			return
		}
	}
}

// ReadLoop reads commands from the transport and dispatches them until the
// connection ends, then runs the disconnect path: close, unregister, and
// notify the remaining users. It blocks and is intended to run as the
// connection's reader goroutine.
func (s *Session) ReadLoop() {
	defer s.disconnect()

	for {
		if s.idleTimeout > 0 {
			if err := s.conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
				s.logger.Debug().Err(err).Msg("Failed to set read deadline")
				return
			}
		}

		line, err := s.conn.ReadLine()
		if err != nil {
			s.logReadEnd(err)
			return
		}

		if line == "" {
			continue
		}

		s.router.Dispatch(s, line)
	}
}

// logReadEnd records why the read loop stopped, distinguishing clean closure
// from idle timeouts and transport failures.
func (s *Session) logReadEnd(err error) {
	var netErr net.Error

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		s.logger.Debug().Msg("Connection closed")
	case errors.As(err, &netErr) && netErr.Timeout():
		s.logger.Info().Dur("idle_timeout", s.idleTimeout).Msg("Disconnecting idle session")
	default:
		s.logger.Warn().Err(err).Msg("Read failed")
	}
}

// disconnect finishes the session lifecycle. Unregistration happens before
// the notice broadcast, so the departing user's name is free for a new LOGIN
// by the time anyone observes the notice, and the notice itself only reaches
// the sessions still registered.
func (s *Session) disconnect() {
	s.Close()
	s.router.HandleDisconnect(s)
	s.logger.Info().Msg("Session finished")
}

// Close shuts the session down: it wakes the blocked reader by closing the
// transport and signals the write loop to exit. Safe to call from any
// goroutine, any number of times.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Transport close error")
		}
	})
}

// Closed reports whether the session has shut down.
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
