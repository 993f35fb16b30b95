/*
Package handler provides the optional ops HTTP surface for the chat server.

This file defines the chi router: /health and /stats for operators, and /ws
exposing the same line protocol over WebSocket for browser clients. The chat
wire protocol itself stays on the TCP port; this listener is disabled unless
ADMIN_PORT is set.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/resp"
)

// Router builds the ops routing table with CORS, request logging and panic
// recovery applied globally.
func Router(deps *AppDeps) http.Handler {
	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: origin not allowed", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := deps.Config.AllowedOrigins
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, map[string]string{
			"status":  "ok",
			"service": "Socket Chat Server",
		})
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		registry := deps.Chat.Registry()
		resp.RespondSuccess(w, deps.Stats.Snapshot(registry.Names()))
	})

	r.Get("/ws", HandleWebSocket(upgrader, deps))

	return r
}
