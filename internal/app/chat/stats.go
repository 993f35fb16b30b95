/*
Package chat contains the core logic for the chat relay: session lifecycle,
the shared username registry, command parsing, and message routing.

This file defines the process counters surfaced by the ops /stats endpoint.
*/
package chat

import (
	"sync/atomic"
	"time"
)

// Stats aggregates lifetime counters for the server. All fields are safe for
// concurrent use; everything here is in-memory and lost on restart.
type Stats struct {
	started time.Time

	Connections atomic.Int64
	Logins      atomic.Int64
	Broadcasts  atomic.Int64
	Directs     atomic.Int64

	// Dropped counts deliveries refused because the recipient's session was
	// closed or its outbox overflowed.
	Dropped atomic.Int64
}

// NewStats constructs a Stats anchored at the current time.
func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

// StatsSnapshot is the JSON shape served by the ops endpoint.
type StatsSnapshot struct {
	UptimeSeconds int64    `json:"uptimeSeconds"`
	OnlineUsers   []string `json:"onlineUsers"`
	Connections   int64    `json:"connections"`
	Logins        int64    `json:"logins"`
	Broadcasts    int64    `json:"broadcasts"`
	Directs       int64    `json:"directs"`
	Dropped       int64    `json:"dropped"`
}

// Snapshot captures the counters together with the current roster.
func (st *Stats) Snapshot(online []string) StatsSnapshot {
	return StatsSnapshot{
		UptimeSeconds: int64(time.Since(st.started).Seconds()),
		OnlineUsers:   online,
		Connections:   st.Connections.Load(),
		Logins:        st.Logins.Load(),
		Broadcasts:    st.Broadcasts.Load(),
		Directs:       st.Directs.Load(),
		Dropped:       st.Dropped.Load(),
	}
}
