package httpgin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	redisrepo "github.com/irynavol/seatmap-go/internal/repository/redis"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		c.Writer.Header().Set("X-Request-ID", reqID)
		c.Set("request_id", reqID)

		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"X-Role",
			"X-Event-Limit",
			"If-None-Match",
			"Idempotency-Key",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"ETag",
			"Cache-Control",
			"Idempotency-Key",
		},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	return cors.New(cfg)
}

func LoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		status := c.Writer.Status()
		reqID, _ := c.Get("request_id")

		attrs := []slog.Attr{
			slog.Int("status", status),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("ip", c.ClientIP()),
			slog.String("ua", c.Request.UserAgent()),
			slog.Any("request_id", reqID),
			slog.Duration("latency", latency),
			slog.Int("bytes_out", c.Writer.Size()),
		}

		// convert []slog.Attr to []any for slog.Group variadic parameter
		anyAttrs := make([]any, len(attrs))
		for i := range attrs {
			anyAttrs[i] = attrs[i]
		}

		if len(c.Errors) > 0 {
			logger.Error("http", slog.Group("http", anyAttrs...))
		} else {
			logger.Info("http", slog.Group("http", anyAttrs...))
		}
	}
}

const idemLockTTL = 60 * time.Second

// Idempotency is the slice of redisrepo.IdempotencyStore the seat
// mutation routes need.
type Idempotency interface {
	Begin(ctx context.Context, key string, lockTTL time.Duration) (bool, error)
	Commit(ctx context.Context, key string, status int) error
	Replay(ctx context.Context, key string) (int, bool, error)
	Release(ctx context.Context, key string) error
}

// IdempotencyMiddleware makes seat mutations safe to retry. A request
// carrying an Idempotency-Key header claims the key before running; a
// retry with the same key replays the stored status instead of mutating
// the plan again. A nil store or a missing header disables it.
func IdempotencyMiddleware(store Idempotency, op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idemKey := c.GetHeader("Idempotency-Key")
		if store == nil || idemKey == "" {
			c.Next()
			return
		}

		eventID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := redisrepo.KeyIdemSeatOp(eventID, op, idemKey)

		if status, ok, _ := store.Replay(ctx, key); ok {
			c.Header("Idempotency-Key", idemKey)
			c.AbortWithStatus(status)
			return
		}

		acquired, err := store.Begin(ctx, key, idemLockTTL)
		if err != nil {
			// Idempotency is best effort; never fail the request on
			// store trouble.
			c.Next()
			return
		}
		if !acquired {
			if status, ok, _ := store.Replay(ctx, key); ok {
				c.Header("Idempotency-Key", idemKey)
				c.AbortWithStatus(status)
				return
			}
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			_ = store.Release(ctx, key)
			return
		}
		_ = store.Commit(ctx, key, status)
	}
}

// RateLimitMiddleware throttles mutating requests per client IP. A nil
// limiter disables it.
func RateLimitMiddleware(limiter *redisrepo.SlidingWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		ok, _, retry, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
		if err != nil {
			// Rate limiting is best effort; never fail the request on
			// limiter trouble.
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", retry.Round(time.Second).String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
			return
		}

		c.Next()
	}
}
