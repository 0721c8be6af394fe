package auth

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, secret string, loginRate rate.Limit, loginBurst int) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(loginRate, loginBurst), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(secret), handler.Me)
	}
}
