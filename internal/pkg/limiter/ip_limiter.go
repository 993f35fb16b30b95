/*
Package limiter provides per-IP connection rate limiting for the chat server.

It uses the token bucket algorithm (rate.Limiter) to bound how often a single
address may open new connections, on both the TCP accept path and the
WebSocket endpoint, and periodically removes limiters for idle addresses.
*/
package limiter

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/sabihanjum/Socket-Chat-Server/internal/pkg/logx"
)

// cleanupInterval is how often idle per-IP limiters are swept out.
const cleanupInterval = 3 * time.Minute

// IPRateLimiter tracks one token bucket per client IP address.
type IPRateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter

	// r is the sustained rate of allowed events per second.
	r rate.Limit

	// b is the burst capacity of each bucket.
	b int
}

// NewIPRateLimiter creates an IPRateLimiter with the given rate and burst and
// starts a background goroutine that reclaims buckets for idle addresses.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	l := &IPRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go l.cleanupLoop()

	return l
}

// Allow reports whether a new connection from addr is within the rate limit.
// addr may be a bare IP or a host:port pair as returned by net.Conn.RemoteAddr.
func (l *IPRateLimiter) Allow(addr string) bool {
	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		ip = addr
	}
	if ip == "" {
		ip = "unknown"
	}

	return l.limiterFor(ip).Allow()
}

// limiterFor returns the bucket for ip, creating it if needed. Creation uses
// double-checked locking so concurrent accepts never race on the map.
func (l *IPRateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limits[ip]
	l.mu.RUnlock()

	if !ok {
		l.mu.Lock()
		lim, ok = l.limits[ip]
		if !ok {
			lim = rate.NewLimiter(l.r, l.b)
			l.limits[ip] = lim
		}
		l.mu.Unlock()
	}

	return lim
}

// cleanupLoop periodically removes buckets that have refilled completely,
// which means the address has been idle long enough to forget.
func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		removed := 0
		for ip, lim := range l.limits {
			if lim.TokensAt(time.Now()) >= float64(lim.Burst()) {
				delete(l.limits, ip)
				removed++
			}
		}
		remaining := len(l.limits)
		l.mu.Unlock()

		if removed > 0 {
			logx.Info("Rate limiter cleanup finished",
				"removed", removed,
				"remaining", remaining,
			)
		}
	}
}
