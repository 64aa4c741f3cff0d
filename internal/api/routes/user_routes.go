package routes

import (
	"github.com/crisprlt/HabitFlow-sub000/internal/api/handlers"
	"github.com/crisprlt/HabitFlow-sub000/internal/api/middleware"
	"github.com/crisprlt/HabitFlow-sub000/pkg/security/auth"
	"github.com/gin-gonic/gin"
)

type UserRoutes struct {
	handler   *handlers.UserHandler
	jwtSecret string
	limiter   auth.RateLimiter
}

func NewUserRoutes(handler *handlers.UserHandler, jwtSecret string, limiter auth.RateLimiter) *UserRoutes {
	return &UserRoutes{handler: handler, jwtSecret: jwtSecret, limiter: limiter}
}

// RegisterRoutes wires account endpoints. Credential endpoints are rate
// limited per IP to slow down guessing.
func (r *UserRoutes) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/api/users")

	public := users.Group("")
	if r.limiter != nil {
		public.Use(middleware.RateLimitMiddleware(r.limiter))
	}
	public.POST("/register", r.handler.Register)
	public.POST("/login", r.handler.Login)
	public.POST("/password-reset", r.handler.RequestPasswordReset)
	public.POST("/password-reset/confirm", r.handler.ConfirmPasswordReset)

	authed := users.Group("")
	authed.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	authed.GET("/me", r.handler.GetProfile)
	authed.PUT("/me", r.handler.UpdateProfile)
	authed.PUT("/password", r.handler.ChangePassword)
}
