package employee

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
	read := middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead)
	write := middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionWrite)
	directory := middleware.RBACAuthorize(rbacService, domain.ResourceDirectory, domain.ActionRead)

	employees := r.Group("/employees")
	{
		employees.GET("", directory, handler.GetAll)
		employees.GET("/:id", read, handler.GetByID)
		employees.POST("", write, handler.Create)
		employees.PUT("/:id", write, handler.Update)
		employees.DELETE("/:id", write, handler.Delete)
		employees.GET("/:id/documents", read, handler.Documents)
		employees.GET("/:id/salary-details", read, handler.SalaryDetails)
	}

	selfRead := middleware.RBACAuthorize(rbacService, domain.ResourceSelf, domain.ActionRead)
	selfWrite := middleware.RBACAuthorize(rbacService, domain.ResourceSelf, domain.ActionWrite)
	me := r.Group("/me", middleware.ExtractEmployeeID())
	{
		me.GET("/profile", selfRead, handler.Profile)
		me.PUT("/profile", selfWrite, handler.UpdateProfile)
		me.POST("/documents", selfWrite, handler.UploadDocument)
		me.GET("/offer-letter", selfRead, handler.OfferLetter)
	}
}
