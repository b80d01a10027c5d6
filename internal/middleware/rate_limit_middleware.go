// internal/middleware/rate_limit_middleware.go
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reviewspin-service/internal/pkg/response"
)

// PlayRateLimiter throttles draw attempts per (ip, email) pair. Fail-open:
// a Redis outage must not take the play page down with it.
type PlayRateLimiter struct {
	client *redis.Client
	logger *zap.Logger

	maxAttempts int64
	window      time.Duration
}

func NewPlayRateLimiter(client *redis.Client, logger *zap.Logger) *PlayRateLimiter {
	return &PlayRateLimiter{
		client:      client,
		logger:      logger,
		maxAttempts: 10,
		window:      time.Minute,
	}
}

// Allow checks and consumes one attempt for the pair.
func (r *PlayRateLimiter) Allow(ctx context.Context, ip, email string) (bool, error) {
	key := fmt.Sprintf("ratelimit:play:%s:%s", ip, email)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment play attempt: %w", err)
	}

	// Set expiration on first attempt
	if count == 1 {
		r.client.Expire(ctx, key, r.window)
	}

	return count <= r.maxAttempts, nil
}

// Middleware applies the limiter to play routes. The email comes from the
// query string or, for play POSTs, from the JSON body; the body is restored
// so the handler's binding still sees it.
func (r *PlayRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := emailFromRequest(c)

		allowed, err := r.Allow(c.Request.Context(), c.ClientIP(), email)
		if err != nil {
			r.logger.Warn("play rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.TooManyRequests(c, "too many play attempts, slow down")
			return
		}

		c.Next()
	}
}

// emailFromRequest extracts the email the limiter keys on. Reading the body
// consumes it, so it is rewound before the handler binds the same payload.
func emailFromRequest(c *gin.Context) string {
	if email := c.Query("email"); email != "" {
		return email
	}
	if c.Request.Body == nil {
		return ""
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Email
}
