package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/abhinavsaxena2308/codegen/internal/errors"
)

// perIPLimiter hands out one token bucket per client IP. Buckets are never
// expired; the map stays small for a single-tenant deployment.
type perIPLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newPerIPLimiter(perMinute int) *perIPLimiter {
	return &perIPLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (l *perIPLimiter) allow(ip string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// rateLimit rejects requests over the per-IP budget with 429. perMinute <= 0
// disables limiting.
func rateLimit(perMinute int, next http.Handler) http.Handler {
	if perMinute <= 0 {
		return next
	}
	limiter := newPerIPLimiter(perMinute)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !limiter.allow(ip) {
			renderError(w, errors.NewRateLimited())
			return
		}
		next.ServeHTTP(w, r)
	})
}
