package routes

import (
	"github.com/crisprlt/HabitFlow-sub000/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

type OAuthRoutes struct {
	handler *handlers.OAuthHandler
}

func NewOAuthRoutes(handler *handlers.OAuthHandler) *OAuthRoutes {
	return &OAuthRoutes{handler: handler}
}

func (r *OAuthRoutes) RegisterRoutes(router *gin.Engine) {
	oauth := router.Group("/api/auth/oauth")
	oauth.GET("/github", r.handler.GitHubLogin)
	oauth.GET("/github/callback", r.handler.GitHubCallback)
}
