package middleware

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterStore counts hits for a key inside a fixed window.
type counterStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

type visitor struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// memoryStore keeps counters in-process. Used when no Redis is configured.
type memoryStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func newMemoryStore(window time.Duration) *memoryStore {
	s := &memoryStore{
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}

	// Cleanup goroutine
	go func() {
		for {
			time.Sleep(window)
			s.mu.Lock()
			for key, v := range s.visitors {
				if s.now().Sub(v.lastSeen) > window {
					delete(s.visitors, key)
				}
			}
			s.mu.Unlock()
		}
	}()

	return s
}

func (s *memoryStore) Hit(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, exists := s.visitors[key]
	if !exists || now.Sub(v.windowStart) >= window {
		s.visitors[key] = &visitor{count: 1, windowStart: now, lastSeen: now}
		return 1, nil
	}

	v.count++
	v.lastSeen = now
	return v.count, nil
}

// redisStore shares counters between server instances.
type redisStore struct {
	rdb *redis.Client
}

func (s *redisStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return int(n), err
		}
	}
	return int(n), nil
}

type RateLimiter struct {
	name   string
	store  counterStore
	limit  int
	window time.Duration
}

// NewRateLimiter limits each client IP to limit requests per window, counting
// in memory.
func NewRateLimiter(name string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		name:   name,
		store:  newMemoryStore(window),
		limit:  limit,
		window: window,
	}
}

// NewRedisRateLimiter is NewRateLimiter with counters kept in Redis.
func NewRedisRateLimiter(rdb *redis.Client, name string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		name:   name,
		store:  &redisStore{rdb: rdb},
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", rl.name, clientIP(r))
		count, err := rl.store.Hit(r.Context(), key, rl.window)
		if err != nil {
			// Fail open while the counter store is unavailable.
			log.Printf("rate limiter %s: %v", rl.name, err)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type peerAddrKey struct{}

// PeerAddr records the connection's remote address before RealIP rewrites it
// from client-supplied headers. Rate limits are keyed on this address.
func PeerAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerAddrKey{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if peer, ok := r.Context().Value(peerAddrKey{}).(string); ok && peer != "" {
		addr = peer
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
