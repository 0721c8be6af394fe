package report

import (
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to be authenticated already.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	read := middleware.RBACAuthorize(rbacService, domain.ResourceReport, domain.ActionRead)

	reports := r.Group("/reports", read)
	{
		reports.GET("/dashboard", handler.Dashboard)
		reports.GET("/attendance", handler.Attendance)
		reports.GET("/salary", handler.Salary)
		reports.GET("/payroll", handler.Payroll)
	}
}
