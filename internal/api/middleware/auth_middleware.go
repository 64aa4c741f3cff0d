package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/pkg/logger"
	"github.com/crisprlt/HabitFlow-sub000/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var log = logger.NewLogger("info")

const bearerSchema = "Bearer "

// NewAuthMiddleware validates the Bearer token and stores the caller's
// identity in the request context.
func NewAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authorization header is required",
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		tokenString := authHeader[len(bearerSchema):]

		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			log.Error("token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("token", tokenString)

		c.Next()
	}
}

// GetUserID retrieves the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// RateLimitMiddleware throttles requests per client IP and path.
func RateLimitMiddleware(limiter auth.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.ClientIP(), c.Request.URL.Path)

		allowed, remaining, resetTime, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open: a broken limiter should not take the API down.
			log.Error("rate limiter error", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", resetTime.Format(time.RFC3339))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":  false,
				"message":  "rate limit exceeded",
				"reset_in": time.Until(resetTime).String(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
