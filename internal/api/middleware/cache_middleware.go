package middleware

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CacheMiddleware caches GET responses in Redis. It is applied to habit and
// lookup reads only; dashboard and tracking reads must always hit the
// database so streaks and stats are fresh.
type CacheMiddleware struct {
	cache *cache.RedisClient
	ttl   time.Duration
}

func NewCacheMiddleware(cache *cache.RedisClient, ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{cache: cache, ttl: ttl}
}

type responseBuffer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func newResponseBuffer(original gin.ResponseWriter) *responseBuffer {
	return &responseBuffer{ResponseWriter: original, body: &bytes.Buffer{}}
}

func (r *responseBuffer) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseBuffer) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// CacheResponse serves a stored copy of the response when one exists, and
// stores the fresh response otherwise. group is the invalidation namespace
// ("habits", "lookups"); services and CacheInvalidate drop entries by
// matching "<group>:*".
func (m *CacheMiddleware) CacheResponse(group string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := m.cacheKey(group, c)
		if cached, err := m.cache.Get(c.Request.Context(), key); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		writer := c.Writer
		buff := newResponseBuffer(writer)
		c.Writer = buff

		c.Next()

		c.Writer = writer
		if buff.Status() == http.StatusOK {
			if err := m.cache.Set(c.Request.Context(), key, buff.body.Bytes(), m.ttl); err != nil {
				log.Error("failed to cache response", zap.Error(err), zap.String("key", key))
			}
		}
	}
}

// CacheInvalidate drops matching keys after a successful mutation.
func (m *CacheMiddleware) CacheInvalidate(patterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if m.cache == nil {
			return
		}
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			for _, pattern := range patterns {
				if err := m.cache.DeletePattern(c.Request.Context(), pattern); err != nil {
					log.Error("failed to invalidate cache",
						zap.Error(err), zap.String("pattern", pattern))
				}
			}
		}
	}
}

// cacheKey scopes entries by group, path, query and caller so users never
// see each other's cached data.
func (m *CacheMiddleware) cacheKey(group string, c *gin.Context) string {
	userID, _ := GetUserID(c)
	parts := []string{group, c.Request.URL.Path}
	if c.Request.URL.RawQuery != "" {
		parts = append(parts, c.Request.URL.RawQuery)
	}
	parts = append(parts, "u", strconv.FormatUint(uint64(userID), 10))
	return strings.Join(parts, ":")
}
