package routes

import (
	"github.com/crisprlt/HabitFlow-sub000/internal/api/handlers"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type TodoRoutes struct {
	handler   *handlers.TodoHandler
	jwtSecret string
}

func NewTodoRoutes(handler *handlers.TodoHandler, jwtSecret string) *TodoRoutes {
	return &TodoRoutes{handler: handler, jwtSecret: jwtSecret}
}

func (r *TodoRoutes) RegisterRoutes(router *gin.Engine) {
	todo := router.Group("/api/other/todo/:userId")
	todo.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	todo.GET("/areas", r.handler.ListAreas)
	todo.POST("/areas", r.handler.CreateArea)
	todo.PUT("/areas/:areaId", r.handler.UpdateArea)
	todo.DELETE("/areas/:areaId", r.handler.DeleteArea)

	todo.GET("/areas/:areaId/tasks", r.handler.ListTasks)
	todo.POST("/areas/:areaId/tasks", r.handler.CreateTask)

	todo.PATCH("/tasks/:taskId", r.handler.ToggleTask)
	todo.PUT("/tasks/:taskId", r.handler.UpdateTask)
	todo.DELETE("/tasks/:taskId", r.handler.DeleteTask)
}
