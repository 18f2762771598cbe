package limiter

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Mihailob5017/codegames/internal/adapter/metrics"
	"github.com/Mihailob5017/codegames/internal/config"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a global token bucket and one bucket per client address
type RateLimiter struct {
	global *rate.Limiter

	mu          sync.Mutex
	clients     map[string]*clientLimiter
	clientRate  rate.Limit
	clientBurst int

	now func() time.Time
}

func NewRateLimiter(globalRPS, perClientRPS float64, perClientBurst int) *RateLimiter {
	globalBurst := int(globalRPS) * 2
	if globalBurst < 1 {
		globalBurst = 1
	}
	if perClientBurst < 1 {
		perClientBurst = 1
	}
	return &RateLimiter{
		global:      rate.NewLimiter(rate.Limit(globalRPS), globalBurst),
		clients:     make(map[string]*clientLimiter),
		clientRate:  rate.Limit(perClientRPS),
		clientBurst: perClientBurst,
		now:         time.Now,
	}
}

func NewRateLimiterFromConfig(cfg *config.LimiterConfig) *RateLimiter {
	return NewRateLimiter(cfg.GlobalRPS, cfg.PerClientRPS, cfg.PerClientBurst)
}

func (rl *RateLimiter) client(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.clientRate, rl.clientBurst)}
		rl.clients[key] = c
	}
	c.lastSeen = rl.now()
	return c.limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	if !rl.client(key).Allow() {
		metrics.RateLimitHits.Inc()
		return false
	}
	if !rl.global.Allow() {
		metrics.RateLimitHits.Inc()
		return false
	}
	return true
}

// Sweep drops client buckets idle for longer than maxIdle and returns how many were removed
func (rl *RateLimiter) Sweep(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-maxIdle)
	removed := 0
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			removed++
		}
	}
	return removed
}

// Clients returns the number of tracked client buckets
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(ClientKey(r)) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientKey identifies the caller by the first X-Forwarded-For hop, falling
// back to the remote host
func ClientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
