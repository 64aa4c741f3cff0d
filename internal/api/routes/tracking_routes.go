package routes

import (
	"github.com/crisprlt/HabitFlow-sub000/internal/api/handlers"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type TrackingRoutes struct {
	handler *handlers.TrackingHandler
	notes   *handlers.NotesHandler
	jwtSecret string
}

func NewTrackingRoutes(handler *handlers.TrackingHandler, notes *handlers.NotesHandler, jwtSecret string) *TrackingRoutes {
	return &TrackingRoutes{handler: handler, notes: notes, jwtSecret: jwtSecret}
}

// RegisterRoutes wires the progress mutators, dashboard, notes and calendar
// reads. None of these responses are cached: streaks and stats must always
// be recomputed from records, and mutations invalidate the habit cache so
// list endpoints pick up fresh streak columns.
func (r *TrackingRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	tracking := router.Group("/api/tracking")
	tracking.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	tracking.GET("/dashboard/:userId", gzip.Gzip(gzip.DefaultCompression), r.handler.GetDashboard)
	tracking.POST("/habits/toggle", cache.CacheInvalidate("habits:*"), r.handler.ToggleHabit)
	tracking.POST("/habits/progress", cache.CacheInvalidate("habits:*"), r.handler.UpdateProgress)
	tracking.PUT("/habits/progress", cache.CacheInvalidate("habits:*"), r.handler.UpdateProgress)

	tracking.GET("/notes", r.notes.ListNotes)
	tracking.POST("/notes", r.notes.CreateNote)
	tracking.PUT("/notes/:noteId", r.notes.UpdateNote)
	tracking.DELETE("/notes/:noteId", r.notes.DeleteNote)

	calendar := router.Group("/api/calendar/habits")
	calendar.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	calendar.GET("/streak/:habitId", r.handler.GetStreak)
	calendar.GET("/stats/:habitId", gzip.Gzip(gzip.DefaultCompression), r.handler.GetRangeStats)
	calendar.GET("/:habitId", gzip.Gzip(gzip.DefaultCompression), r.handler.GetMonth)
}
