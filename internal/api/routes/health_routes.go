package routes

import (
	"net/http"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/cache"
	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthRoutes struct {
	db    *connection.Database
	redis *cache.RedisClient
}

func NewHealthRoutes(db *connection.Database, redis *cache.RedisClient) *HealthRoutes {
	return &HealthRoutes{db: db, redis: redis}
}

// RegisterRoutes wires the liveness probe and the Prometheus scrape target.
func (r *HealthRoutes) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", r.health)
	router.GET("/health/ready", r.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *HealthRoutes) health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{"database": "up", "redis": "up"}

	if err := r.db.HealthCheck(); err != nil {
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	}

	if r.redis != nil {
		if err := r.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}
	} else {
		checks["redis"] = "disabled"
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"data": gin.H{
			"status": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		},
	})
}
