package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"social-api/internal/shared/httpx"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window counter in Redis. A nil client disables
// limiting entirely.
type Limiter struct{ R *redis.Client }

func New(r *redis.Client) *Limiter { return &Limiter{R: r} }

func (l *Limiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	if l.R == nil {
		return true, nil
	}
	k := "rl:" + key
	pipe := l.R.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= limit, nil
}

// LimitHTTP gates a handler per key (typically the remote address or the
// authenticated user).
func (l *Limiter) LimitHTTP(limit int64, window time.Duration, keyFn func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := keyFn(r)
		if key == "" {
			key = r.RemoteAddr
		}
		ok, err := l.Allow(r.Context(), key, limit, window)
		if err != nil {
			httpx.WriteError(w, http.StatusTooManyRequests, errors.New("rate limiter error"), "rate_limiter_error")
			return
		}
		if !ok {
			httpx.WriteError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"), "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}
