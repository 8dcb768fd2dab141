package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleClientTTL is how long a client's limiter is kept after its last request.
const idleClientTTL = 30 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
// Wire it after chimiddleware.RealIP so proxied clients are told apart.
type RateLimiter struct {
	every time.Duration
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter
	now     func() time.Time
}

// NewRateLimiter allows each client burst requests at once, refilled at one
// request per every.
func NewRateLimiter(every time.Duration, burst int) *RateLimiter {
	return &RateLimiter{
		every:   every,
		burst:   burst,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (l *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	l.now = now
	return l
}

// NewPerMinuteRateLimiter allows perMinute requests per client per minute.
func NewPerMinuteRateLimiter(perMinute int) *RateLimiter {
	perMinute = max(1, perMinute)
	return NewRateLimiter(time.Minute/time.Duration(perMinute), perMinute)
}

// Handler rejects over-limit requests with 429 Too Many Requests.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wait := l.reserve(clientIP(r)); wait > 0 {
			w.Header().Set("Retry-After", retryAfter(wait))
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Clients returns the number of tracked clients.
func (l *RateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// reserve takes a token for ip. It returns 0 when the request may go ahead,
// otherwise how long until the next token and nothing is consumed.
func (l *RateLimiter) reserve(ip string) time.Duration {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Every(l.every), l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	for k, other := range l.clients {
		if now.Sub(other.lastSeen) > idleClientTTL {
			delete(l.clients, k)
		}
	}

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return l.every
	}
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return wait
	}
	return 0
}

// retryAfter renders wait as whole seconds, rounded up, at least 1.
func retryAfter(wait time.Duration) string {
	secs := int64(math.Ceil(wait.Seconds()))
	return strconv.FormatInt(max(1, secs), 10)
}

// clientIP strips the port from RemoteAddr. RealIP may already have replaced
// it with a bare address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
