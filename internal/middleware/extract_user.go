package middleware

import (
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/domain"

	"github.com/gin-gonic/gin"
)

// ActorID is the authenticated user id, empty before AuthMiddleware runs.
func ActorID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// EmployeeScope limits reads to the caller's own records. Admins get an
// empty scope, which means every employee.
func EmployeeScope(c *gin.Context) string {
	if c.GetString(CtxRole) == domain.RoleAdmin {
		return ""
	}
	return c.GetString(CtxEmployeeID)
}

// ExtractEmployeeID guards the self-service routes: the caller must carry an
// employee identity.
func ExtractEmployeeID() gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString(CtxEmployeeID)
		if employeeID == "" {
			abortWith(c, autherrors.ErrForbidden)
			return
		}
		c.Set("employee_id_validated", employeeID)
		c.Next()
	}
}

// SelfID is the employee id checked by ExtractEmployeeID.
func SelfID(c *gin.Context) string {
	return c.GetString("employee_id_validated")
}
