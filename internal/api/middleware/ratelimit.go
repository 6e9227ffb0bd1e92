package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"scamshield/internal/config"
)

// RateLimitStore counts requests per client and window
type RateLimitStore interface {
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error)
}

// RateLimiter returns middleware that enforces the per-minute and per-hour
// limits. Store errors let the request through.
func RateLimiter(store RateLimitStore, cfg config.RateLimitConfig) func(next http.Handler) http.Handler {
	type window struct {
		suffix string
		limit  int
		period time.Duration
	}
	windows := []window{
		{"m", cfg.RequestsPerMinute, time.Minute},
		{"h", cfg.RequestsPerHour, time.Hour},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip rate limiting for OPTIONS
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			clientID := getClientID(r)

			for i, win := range windows {
				if win.limit <= 0 {
					continue
				}
				allowed, remaining, resetTime, err := store.CheckRateLimit(
					r.Context(),
					clientID+":"+win.suffix,
					int64(win.limit),
					win.period,
				)
				if err != nil {
					break
				}

				// headers describe the tightest window
				if i == 0 {
					w.Header().Set("X-RateLimit-Limit", strconv.Itoa(win.limit))
					w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
					w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))
				}

				if !allowed {
					w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(resetTime).Seconds())+1, 10))
					writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientID returns a unique identifier for the client. RealIP runs first,
// so RemoteAddr already reflects forwarding headers.
func getClientID(r *http.Request) string {
	if apiKey := GetAPIKey(r.Context()); apiKey != "" {
		return fmt.Sprintf("key:%s", apiKey)
	}
	return fmt.Sprintf("ip:%s", ClientIP(r))
}

// ClientIP returns the client address without its port so that every
// connection from one host shares an identity
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MemoryRateLimitStore is a fixed-window counter for single-instance
// deployments without Redis
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

type memoryWindow struct {
	count int64
	reset time.Time
}

// NewMemoryRateLimitStore creates an in-process rate limit store
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

// CheckRateLimit implements RateLimitStore
func (s *MemoryRateLimitStore) CheckRateLimit(_ context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	win, ok := s.windows[key]
	if !ok || !now.Before(win.reset) {
		win = &memoryWindow{reset: now.Truncate(window).Add(window)}
		s.windows[key] = win
		s.evictExpired(now)
	}
	win.count++

	remaining := limit - win.count
	if remaining < 0 {
		remaining = 0
	}
	return win.count <= limit, remaining, win.reset, nil
}

func (s *MemoryRateLimitStore) evictExpired(now time.Time) {
	for k, w := range s.windows {
		if !now.Before(w.reset) {
			delete(s.windows, k)
		}
	}
}
