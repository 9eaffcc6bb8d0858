// Package ratelimit は認証エンドポイントへのリクエスト頻度を制限します。
package ratelimit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter throttles requests per client IP using a Redis fixed window.
// A nil Redis client disables limiting entirely; credential endpoints must
// keep working when Redis is down.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewLimiter creates a limiter allowing limit requests per window.
// If limit is 0 or negative it defaults to 30, if window is 0 it defaults
// to one minute.
func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		prefix: "ratelimit",
	}
}

// Middleware returns a Gin middleware enforcing the limit.
// 固定ウィンドウ方式: キーごとにINCRし、初回のみ有効期限を設定します。
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Redisがない場合は制限しない
		if l.rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := l.prefix + ":" + c.ClientIP()

		count, err := l.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Best effort: a broken limiter must not take down login
			slog.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
				slog.Warn("rate limiter expire failed", "key", key, "error", err)
			}
		}

		if count > int64(l.limit) {
			slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "count", count)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
