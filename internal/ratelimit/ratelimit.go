package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for per-host rate limiting.
type Limiter interface {
	Allow(host string) bool
}

// InMemoryLimiter keeps one token bucket per media host so prefetching
// never hammers a single CDN.
type InMemoryLimiter struct {
	hosts map[string]*rate.Limiter
	mu    sync.Mutex
	r     rate.Limit
	b     int
}

// NewInMemoryLimiter creates a new rate limiter.
// Example: NewInMemoryLimiter(4, time.Second, 8) -> allows 4 requests
// per second per host with a burst of 8.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) Limiter {
	return &InMemoryLimiter{
		hosts: make(map[string]*rate.Limiter),
		r:     rate.Every(per / time.Duration(requests)),
		b:     burst,
	}
}

// Allow checks if a request to host may proceed now.
func (l *InMemoryLimiter) Allow(host string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.hosts[host]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.hosts[host] = limiter
	}

	return limiter.Allow()
}
