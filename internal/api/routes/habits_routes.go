package routes

import (
	"github.com/crisprlt/HabitFlow-sub000/internal/api/handlers"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type HabitsRoutes struct {
	handler   *handlers.HabitsHandler
	jwtSecret string
}

func NewHabitsRoutes(handler *handlers.HabitsHandler, jwtSecret string) *HabitsRoutes {
	return &HabitsRoutes{handler: handler, jwtSecret: jwtSecret}
}

// RegisterRoutes wires habit CRUD and lookup maintenance. Reads are cached;
// every mutation drops the habit cache (and the lookup cache for lookup
// mutations) so the next read is fresh.
func (r *HabitsRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	habit := router.Group("/api/habit")
	habit.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	habit.GET("", cache.CacheResponse("habits"), gzip.Gzip(gzip.DefaultCompression), r.handler.ListHabits)
	habit.POST("", cache.CacheInvalidate("habits:*"), r.handler.CreateHabit)

	habit.GET("/lookups", cache.CacheResponse("lookups"), r.handler.ListLookups)
	habit.PUT("/categories/:id", cache.CacheInvalidate("lookups:*", "habits:*"), r.handler.RenameCategory)
	habit.DELETE("/categories/:id", cache.CacheInvalidate("lookups:*"), r.handler.DeleteCategory)
	habit.PUT("/frequencies/:id", cache.CacheInvalidate("lookups:*", "habits:*"), r.handler.RenameFrequency)
	habit.DELETE("/frequencies/:id", cache.CacheInvalidate("lookups:*"), r.handler.DeleteFrequency)
	habit.PUT("/units/:id", cache.CacheInvalidate("lookups:*", "habits:*"), r.handler.RenameUnit)
	habit.DELETE("/units/:id", cache.CacheInvalidate("lookups:*"), r.handler.DeleteUnit)

	habit.GET("/:id", cache.CacheResponse("habits"), r.handler.GetHabit)
	habit.PUT("/:id", cache.CacheInvalidate("habits:*"), r.handler.UpdateHabit)
	habit.DELETE("/:id", cache.CacheInvalidate("habits:*"), r.handler.DeleteHabit)
}
