package payroll

import (
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes expects r to be authenticated already. A nil rdb turns
// idempotency off.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	read := middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead)
	write := middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionWrite)

	payrolls := r.Group("/payrolls")
	{
		payrolls.GET("", read, handler.GetAll)
		payrolls.GET("/summary", read, handler.Summary)
		payrolls.GET("/eligibility", read, handler.Eligibility)
		payrolls.GET("/:id", read, handler.GetByID)
		payrolls.GET("/:id/payslip", read, handler.Payslip)
		payrolls.POST("", write, middleware.Idempotency(rdb), handler.Create)
		payrolls.POST("/generate", write, middleware.Idempotency(rdb), handler.Generate)
		payrolls.POST("/bulk-status", write, handler.BulkStatus)
		payrolls.PUT("/:id", write, handler.Update)
		payrolls.DELETE("/:id", write, handler.Delete)
	}

	self := middleware.RBACAuthorize(rbacService, domain.ResourceSelf, domain.ActionRead)
	me := r.Group("/me", middleware.ExtractEmployeeID())
	{
		me.GET("/payroll", self, handler.GetAll)
		me.GET("/payroll/:id", self, handler.GetByID)
		me.GET("/payroll/:id/payslip", self, handler.Payslip)
	}
}
