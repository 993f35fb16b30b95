/*
Package handler provides the optional ops HTTP surface for the chat server.

This file contains the WebSocket handler: it upgrades the request and runs a
standard chat session over the upgraded connection, one text frame per
protocol line, with the same registry, router and backpressure rules as the
TCP transport.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sabihanjum/Socket-Chat-Server/internal/app/chat"
	"github.com/sabihanjum/Socket-Chat-Server/internal/app/server"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/resp"
)

// HandleWebSocket creates the handler for GET /ws.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !deps.Limiter.Allow(r.RemoteAddr) {
			logx.Warn("WebSocket connection rejected: rate limit exceeded", "remote_addr", r.RemoteAddr)
			resp.RespondError(w, http.StatusTooManyRequests, "too many connection attempts")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		deps.Stats.Connections.Add(1)

		sess := chat.NewSession(server.NewWSConn(conn), deps.Chat, deps.Config.IdleTimeout, deps.Config.OutboxSize)

		go sess.WriteLoop()

		sess.Deliver(chat.WelcomeBanner)
		sess.ReadLoop()
	}
}
