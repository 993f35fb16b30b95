/*
Package server provides the network listeners for the chat relay.

This file defines the TCP server: the accept loop producing new sessions, the
per-IP connect rate limit, and graceful shutdown of every live session.
*/
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sabihanjum/Socket-Chat-Server/internal/app/chat"
	"github.com/sabihanjum/Socket-Chat-Server/internal/configs"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/errs"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/limiter"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
)

// Server accepts TCP connections and runs one session per connection: a
// reader goroutine driving the command loop and a writer goroutine draining
// the session's outbox.
type Server struct {
	cfg     *configs.AppConfig
	router  *chat.Router
	stats   *chat.Stats
	limiter *limiter.IPRateLimiter

	listener net.Listener

	// live tracks every open session, including pre-login ones the registry
	// does not know about, so shutdown can close them all.
	mu   sync.Mutex
	live map[*chat.Session]struct{}

	wg     sync.WaitGroup
	logger zerolog.Logger
}

// New constructs a Server. Call Listen before Serve, or use ListenAndServe.
func New(cfg *configs.AppConfig, router *chat.Router, stats *chat.Stats, lim *limiter.IPRateLimiter) *Server {
	return &Server{
		cfg:     cfg,
		router:  router,
		stats:   stats,
		limiter: lim,
		live:    make(map[*chat.Session]struct{}),
		logger:  logx.With("server"),
	}
}

// Listen binds the configured chat port.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}

	s.listener = ln
	s.logger.Info().Str("addr", ln.Addr().String()).Msg("Chat server listening")
	return nil
}

// Addr returns the bound listener address. Valid only after Listen.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve runs the accept loop until ctx is canceled, then closes every live
// session and waits for their goroutines to finish.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Warn().Err(err).Msg("Accept failed")
			continue
		}

		if !s.limiter.Allow(conn.RemoteAddr().String()) {
			s.logger.Warn().
				Str("remote_addr", conn.RemoteAddr().String()).
				Msg("Connection rejected by rate limit")
			s.rejectConn(conn)
			continue
		}

		s.wg.Add(1)
		go s.handleConn(conn)
	}

	s.logger.Info().Msg("Accept loop stopped, closing live sessions")
	s.closeAll()
	s.wg.Wait()

	return nil
}

// ListenAndServe binds the chat port and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	return s.Serve(ctx)
}

// handleConn owns one connection end to end: welcome banner, writer
// goroutine, blocking command loop, teardown.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()

	s.stats.Connections.Add(1)

	sess := chat.NewSession(NewTCPConn(conn), s.router, s.cfg.IdleTimeout, s.cfg.OutboxSize)
	s.track(sess)
	defer s.untrack(sess)

	go sess.WriteLoop()

	sess.Deliver(chat.WelcomeBanner)
	sess.ReadLoop()
}

// rejectConn answers an over-limit connection with a single ERR line and
// closes it without creating a session.
func (s *Server) rejectConn(conn net.Conn) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	fmt.Fprintf(conn, "%s\n", errs.New(errs.ErrRateLimited).WireLine())
	conn.Close()
}

func (s *Server) track(sess *chat.Session) {
	s.mu.Lock()
	s.live[sess] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(sess *chat.Session) {
	s.mu.Lock()
	delete(s.live, sess)
	s.mu.Unlock()
}

// closeAll closes every live session. Each session's own reader goroutine
// still runs its normal disconnect path, so registrations are released in
// order even during shutdown.
func (s *Server) closeAll() {
	s.mu.Lock()
	sessions := make([]*chat.Session, 0, len(s.live))
	for sess := range s.live {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
