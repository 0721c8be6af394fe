package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes expects r to be authenticated already.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/rbac")
	{
		group.GET("/permissions", handler.Permissions)
		group.POST("/check", handler.Check)
	}
}
