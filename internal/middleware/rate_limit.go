package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mkarlsen/tenant-auth-api/internal/config"
	"github.com/mkarlsen/tenant-auth-api/pkg/logger"
)

type RateLimitMiddleware struct {
	redis  *redis.Client
	config *config.Config
	logger *logger.Logger
}

func NewRateLimitMiddleware(redis *redis.Client, config *config.Config, logger *logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redis:  redis,
		config: config,
		logger: logger,
	}
}

// LoginRateLimit bounds credential-guessing on the login endpoint per client
// IP. The window is one minute; the limit comes from configuration.
func (m *RateLimitMiddleware) LoginRateLimit() gin.HandlerFunc {
	return m.rateLimit("login", func(c *gin.Context) int { return m.config.LoginRateLimit })
}

// GlobalRateLimit bounds overall request volume per client IP.
func (m *RateLimitMiddleware) GlobalRateLimit(limit int) gin.HandlerFunc {
	return m.rateLimit("global", func(c *gin.Context) int { return limit })
}

func (m *RateLimitMiddleware) rateLimit(scope string, limitFor func(c *gin.Context) int) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := limitFor(c)
		key := fmt.Sprintf("rate_limit:%s:%s", scope, c.ClientIP())

		current, err := m.redis.Get(c.Request.Context(), key).Int()
		if err != nil && err != redis.Nil {
			m.logger.Error("Redis error in rate limiting", err)
			// Fail open: rate limiting must not take the service down with it.
			c.Next()
			return
		}

		if current >= limit {
			setRateLimitHeaders(c, limit, 0)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
				"limit": limit,
				"reset": time.Now().Add(time.Minute).Unix(),
			})
			return
		}

		pipe := m.redis.Pipeline()
		pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, time.Minute)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			m.logger.Error("Redis pipeline error in rate limiting", err)
		}

		remaining := limit - (current + 1)
		if remaining < 0 {
			remaining = 0
		}
		setRateLimitHeaders(c, limit, remaining)

		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, limit, remaining int) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
}
