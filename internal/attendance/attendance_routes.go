package attendance

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
	read := middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionRead)
	write := middleware.RBACAuthorize(rbacService, domain.ResourceAttendance, domain.ActionWrite)

	attendances := r.Group("/attendances")
	{
		attendances.GET("", read, handler.GetAll)
		attendances.GET("/statistics", read, handler.Statistics)
		attendances.GET("/report", read, handler.Report)
		attendances.POST("", write, handler.Record)
		attendances.POST("/bulk", write, handler.BulkRecord)
		attendances.PUT("/:id", write, handler.Update)
		attendances.DELETE("/:id", write, handler.Delete)
	}
	r.GET("/employees/:id/attendance/weekly", read, handler.Weekly)

	selfRead := middleware.RBACAuthorize(rbacService, domain.ResourceSelf, domain.ActionRead)
	me := r.Group("/me", middleware.ExtractEmployeeID())
	{
		me.GET("/attendance", selfRead, handler.GetAll)
		me.GET("/attendance/weekly", selfRead, handler.Weekly)
	}
}
