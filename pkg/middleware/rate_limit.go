package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware counts requests per path and caller in fixed windows.
// A nil client disables limiting.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		userID, exists := c.Get("user_id")
		if !exists {
			userID = c.ClientIP()
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), userID)

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			c.Abort()
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter(c, redisClient, key, window)))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// retryAfter is the number of whole seconds left in the caller's window. A
// counter that lost its expiry is given a fresh one.
func retryAfter(c *gin.Context, redisClient *redis.Client, key string, window time.Duration) int {
	ctx := c.Request.Context()
	ttl, err := redisClient.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		if err == nil && ttl == -1 {
			redisClient.Expire(ctx, key, window)
		}
		ttl = window
	}
	return int(math.Ceil(ttl.Seconds()))
}
