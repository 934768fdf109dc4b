package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/AlibekovAA/postboard/internal/common/constants"
	"github.com/AlibekovAA/postboard/internal/observability/metrics"
)

type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
	}

	go rl.cleanupLimiters()

	return rl
}

func (rl *RateLimiter) cleanupLimiters() {
	for range rl.cleanup.C {
		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			if limiter.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		limiter, exists = rl.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rl.rate, rl.burst)
			rl.limiters[key] = limiter
		}
		rl.mu.Unlock()
	}

	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

type StrictRateLimiter struct {
	loginLimiter  *RateLimiter
	signupLimiter *RateLimiter
	writeLimiter  *RateLimiter
	readLimiter   *RateLimiter
}

func NewStrictRateLimiter() *StrictRateLimiter {
	return &StrictRateLimiter{
		loginLimiter:  NewRateLimiter(constants.RateLimitLoginRequestsPerSecond, constants.RateLimitLoginBurst),
		signupLimiter: NewRateLimiter(constants.RateLimitSignupRequestsPerSecond, constants.RateLimitSignupBurst),
		writeLimiter:  NewRateLimiter(constants.RateLimitWriteRequestsPerSecond, constants.RateLimitWriteBurst),
		readLimiter:   NewRateLimiter(constants.RateLimitReadRequestsPerSecond, constants.RateLimitReadBurst),
	}
}

func (srl *StrictRateLimiter) MiddlewareForRequest(r *http.Request) func(http.Handler) http.Handler {
	var limiter *RateLimiter
	var limiterType string

	switch {
	case r.URL.Path == "/api/auth/login":
		limiter = srl.loginLimiter
		limiterType = "login"
	case r.URL.Path == "/api/auth/signup":
		limiter = srl.signupLimiter
		limiterType = "signup"
	case r.Method == http.MethodPost || r.Method == http.MethodDelete:
		limiter = srl.writeLimiter
		limiterType = "write"
	default:
		limiter = srl.readLimiter
		limiterType = "read"
	}

	path := r.URL.Path

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetClientIP(r)

			if !limiter.Allow(key) {
				metrics.RateLimitBlocked.WithLabelValues(path, limiterType).Inc()
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
