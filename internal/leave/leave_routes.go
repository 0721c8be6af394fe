package leave

import (
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be authenticated already.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	read := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionRead)
	write := middleware.RBACAuthorize(rbacService, domain.ResourceLeave, domain.ActionWrite)

	leaves := r.Group("/leave-requests")
	{
		leaves.GET("", read, handler.GetAll)
		leaves.GET("/:id", read, handler.GetByID)
		leaves.POST("", write, handler.Create)
		leaves.PUT("/:id", write, handler.UpdateStatus)
	}
	r.GET("/employees/:id/leave-balance", read, handler.Balance)

	selfRead := middleware.RBACAuthorize(rbacService, domain.ResourceSelf, domain.ActionRead)
	selfWrite := middleware.RBACAuthorize(rbacService, domain.ResourceSelf, domain.ActionWrite)
	me := r.Group("/me", middleware.ExtractEmployeeID())
	{
		me.GET("/leave-requests", selfRead, handler.GetAll)
		me.GET("/leave-requests/:id", selfRead, handler.GetByID)
		me.POST("/leave-requests", selfWrite, handler.Create)
		me.GET("/leave-balance", selfRead, handler.Balance)
	}
}
