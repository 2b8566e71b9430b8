package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter hands out one token bucket per client address and forgets
// clients idle for longer than clientIdleTTL.
type clientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
}

func newClientLimiter(ctx context.Context, rps float64, burst int) *clientLimiter {
	l := &clientLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
	go l.sweep(ctx, clientIdleTTL)
	return l
}

func (l *clientLimiter) allow(addr string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[addr]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[addr] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep evicts idle clients every interval until ctx is done.
func (l *clientLimiter) sweep(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			l.evictIdle(now)
		}
	}
}

func (l *clientLimiter) evictIdle(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for addr, c := range l.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(l.clients, addr)
		}
	}
}

// clientAddr is the request's remote host without the port. Forwarding
// headers are not read here; chi's RealIP middleware rewrites RemoteAddr
// when the deployment trusts its proxy.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit returns middleware that allows each client rps requests per
// second with bursts of up to burst. Requests over the limit are handed to
// rejected, which should answer with a 429. Idle clients are swept until
// ctx is done.
func RateLimit(ctx context.Context, rps float64, burst int, rejected http.HandlerFunc) func(http.Handler) http.Handler {
	limiter := newClientLimiter(ctx, rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := clientAddr(r)
			if !limiter.allow(addr, time.Now()) {
				zerolog.Ctx(r.Context()).Warn().Str("client", addr).Str("path", r.URL.Path).Msg("rate limited")
				rejected(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
