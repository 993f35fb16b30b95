/*
Package chat contains the core logic for the chat relay: session lifecycle,
the shared username registry, command parsing, and message routing.

This file defines the Router, the stateless fan-out logic that, given a parsed
command and the issuing session, decides which sessions receive which lines.
*/
package chat

import (
	"github.com/rs/zerolog"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/errs"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
)

// Router dispatches parsed commands against the registry. It holds no
// per-client state of its own; a session is either pre-login (no username)
// or authenticated, and every rule below keys off that.
type Router struct {
	registry *Registry
	stats    *Stats

	logger zerolog.Logger
}

// NewRouter constructs a Router over the given registry.
func NewRouter(registry *Registry, stats *Stats) *Router {
	return &Router{
		registry: registry,
		stats:    stats,
		logger:   logx.With("router"),
	}
}

// Registry exposes the underlying registry for the ops endpoints.
func (rt *Router) Registry() *Registry {
	return rt.registry
}

// Dispatch handles one raw line from s. Protocol failures of any kind are
// answered with a single ERR line and leave the connection open.
func (rt *Router) Dispatch(s *Session, line string) {
	cmd, perr := Parse(line)
	if perr != nil {
		rt.logger.Debug().
			Str("session_id", s.ID()).
			Str("reason", perr.Reason).
			Msg("Rejected line")
		s.Deliver(perr.WireLine())
		return
	}

	// Pre-login, only LOGIN is meaningful.
	if s.name == "" && cmd.Kind != KindLogin {
		s.Deliver(errs.New(errs.ErrNotLoggedIn).WireLine())
		return
	}

	switch cmd.Kind {
	case KindLogin:
		rt.handleLogin(s, cmd.Name)
	case KindMsg:
		rt.handleBroadcast(s, cmd.Text)
	case KindWho:
		rt.handleWho(s)
	case KindDm:
		rt.handleDirect(s, cmd.Target, cmd.Text)
	case KindPing:
		s.Deliver(linePong)
	}
}

// handleLogin registers the requested username. Acquiring the name and
// inserting the session into the registry is a single atomic step inside
// TryRegister, so two concurrent LOGINs on the same name can never both
// succeed. A username is immutable once set.
func (rt *Router) handleLogin(s *Session, name string) {
	if s.name != "" {
		s.Deliver(errs.New(errs.ErrAlreadyLoggedIn).WireLine())
		return
	}

	if !ValidUsername(name) {
		s.Deliver(errs.New(errs.ErrInvalidUsername).WireLine())
		return
	}

	if !rt.registry.TryRegister(name, s) {
		s.Deliver(errs.New(errs.ErrUsernameTaken).WireLine())
		return
	}

	s.name = name
	s.Deliver(lineOK)
	rt.stats.Logins.Add(1)

	// Everyone already online learns about the newcomer; the OK above is the
	// newcomer's own confirmation.
	rt.fanOut(formatInfo(name+" joined the chat"), s)
}

// handleBroadcast delivers MSG to every registered session. The sender is
// registered too, so the message echoes back to them; each recipient sees
// its own arrival order, FIFO per outbox.
func (rt *Router) handleBroadcast(s *Session, text string) {
	rt.stats.Broadcasts.Add(1)
	rt.fanOut(formatMsg(s.name, text), nil)
}

// handleWho replies to the caller only, one USER line per registered name in
// snapshot (sorted) order.
func (rt *Router) handleWho(s *Session) {
	for _, name := range rt.registry.Names() {
		s.Deliver(formatUser(name))
	}
}

// handleDirect delivers a MSG line to the target's outbox only. There is no
// echo or confirmation to the sender; an unknown target yields an error to
// the sender and no delivery anywhere.
func (rt *Router) handleDirect(s *Session, target, text string) {
	peer, ok := rt.registry.Lookup(target)
	if !ok {
		s.Deliver(errs.New(errs.ErrNoSuchUser).WireLine())
		return
	}

	rt.stats.Directs.Add(1)
	if !peer.Deliver(formatMsg(s.name, text)) {
		rt.stats.Dropped.Add(1)
	}
}

// HandleDisconnect runs the visible part of a session's teardown. Sessions
// that never logged in were never visible, so nothing is broadcast for them.
// The name is released before the notice goes out, making it immediately
// available to a new LOGIN.
func (rt *Router) HandleDisconnect(s *Session) {
	if s.name == "" {
		return
	}

	if rt.registry.Unregister(s.name, s) {
		rt.fanOut(formatInfo(s.name+" disconnected"), nil)
	}
}

// fanOut enqueues line onto every registered session's outbox except skip.
// Each enqueue is independent: one full or closed outbox never prevents
// delivery to the rest.
func (rt *Router) fanOut(line string, skip *Session) {
	for _, peer := range rt.registry.Sessions() {
		if peer == skip {
			continue
		}
		if !peer.Deliver(line) {
			rt.stats.Dropped.Add(1)
		}
	}
}
